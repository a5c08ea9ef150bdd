// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agora

import (
	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/event"
)

// ledgerEvent is an event held back until its operation's transaction
// commits. Subscribers only ever observe durable rows.
type ledgerEvent struct {
	payload   any
	eventType event.EventType
}

// publishEvents delivers the collected events asynchronously after a
// successful commit
func (l *Ledger) publishEvents(events []ledgerEvent) {
	for _, evt := range events {
		l.eventBus.PublishAsync(
			evt.eventType,
			event.NewEvent(evt.eventType, evt.payload),
		)
	}
}

func memberCreatedEvent(member *models.Member) ledgerEvent {
	return ledgerEvent{
		eventType: event.MemberCreatedEventType,
		payload: event.MemberCreatedEvent{
			MemberID:     member.ID,
			Rank:         member.Rank,
			ActivityDate: member.ActivityDate,
		},
	}
}

func projectCreatedEvent(project *models.Project) ledgerEvent {
	return ledgerEvent{
		eventType: event.ProjectCreatedEventType,
		payload: event.ProjectCreatedEvent{
			ProjectID:    project.ID,
			LeaderID:     project.LeaderID,
			CreationDate: project.CreationDate,
		},
	}
}

func actionRecordedEvent(action *models.Action) ledgerEvent {
	return ledgerEvent{
		eventType: event.ActionRecordedEventType,
		payload: event.ActionRecordedEvent{
			ActionID:     action.ID,
			ProjectID:    action.ProjectID,
			MemberID:     action.MemberID,
			Type:         action.Type,
			CreationDate: action.CreationDate,
		},
	}
}

func voteRecordedEvent(vote *models.Vote) ledgerEvent {
	return ledgerEvent{
		eventType: event.VoteRecordedEventType,
		payload: event.VoteRecordedEvent{
			MemberID:     vote.MemberID,
			ActionID:     vote.ActionID,
			Direction:    vote.Direction,
			CreationDate: vote.CreationDate,
		},
	}
}
