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

package event

import (
	"time"
)

// MemberCreatedEventType is the event type for when a member record is created
const MemberCreatedEventType = EventType("member.created")

// MemberCreatedEvent represents a member added to the ledger, either through
// leader registration or implicit creation by a support, protest, or vote
// request
type MemberCreatedEvent struct {
	// MemberID is the caller-assigned identifier of the new member
	MemberID int64
	// Rank is the rank the member was created with
	Rank string
	// ActivityDate is the creation timestamp recorded for the member
	ActivityDate time.Time
}

// ProjectCreatedEventType is the event type for when a project record is created
const ProjectCreatedEventType = EventType("project.created")

// ProjectCreatedEvent represents a project registered under a leader
type ProjectCreatedEvent struct {
	// ProjectID is the caller-assigned identifier of the new project
	ProjectID int64
	// LeaderID is the member id of the leader who owns the project
	LeaderID int64
	// CreationDate is the timestamp recorded for the project
	CreationDate time.Time
}

// ActionRecordedEventType is the event type for when an action is recorded
// against a project
const ActionRecordedEventType = EventType("action.recorded")

// ActionRecordedEvent represents a support or protest action recorded in the
// ledger
type ActionRecordedEvent struct {
	// ActionID is the caller-assigned identifier of the new action
	ActionID int64
	// ProjectID is the project the action targets
	ProjectID int64
	// MemberID is the member who proposed the action
	MemberID int64
	// Type is the action type, either support or protest
	Type string
	// CreationDate is the timestamp recorded for the action
	CreationDate time.Time
}

// VoteRecordedEventType is the event type for when a vote is recorded on an
// action
const VoteRecordedEventType = EventType("vote.recorded")

// VoteRecordedEvent represents a vote cast by a member on an action
type VoteRecordedEvent struct {
	// MemberID is the member who cast the vote
	MemberID int64
	// ActionID is the action the vote applies to
	ActionID int64
	// Direction is the vote direction, either up or down
	Direction string
	// CreationDate is the timestamp recorded for the vote
	CreationDate time.Time
}
