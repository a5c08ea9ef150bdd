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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/models"
)

// VoteRequest carries the arguments for the upvote and downvote operations
type VoteRequest struct {
	Password  string `json:"password"`
	Timestamp int64  `json:"timestamp"`
	Member    int64  `json:"member"`
	Action    int64  `json:"action"`
}

// Upvote records an up vote by the given member on the given action
func (l *Ledger) Upvote(ctx context.Context, req VoteRequest) error {
	return l.recordVote(ctx, OpUpvote, models.VoteDirectionUp, req)
}

// Downvote records a down vote by the given member on the given action
func (l *Ledger) Downvote(ctx context.Context, req VoteRequest) error {
	return l.recordVote(ctx, OpDownvote, models.VoteDirectionDown, req)
}

// recordVote provisions the voting member, checks that the action exists
// and that the member has not voted on it before, then inserts the vote.
// Each member gets at most one vote per action for life. The composite
// primary key on (member, action) backstops the existence check.
func (l *Ledger) recordVote(
	ctx context.Context,
	operation string,
	direction string,
	req VoteRequest,
) error {
	start := time.Now()
	at := time.Unix(req.Timestamp, 0).UTC()
	var events []ledgerEvent
	txn := l.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		member, created, err := l.provisionMember(
			txn,
			req.Member,
			req.Password,
			models.MemberRankRegular,
			at,
		)
		if err != nil {
			return err
		}
		if created {
			events = append(events, memberCreatedEvent(member))
		}
		if _, err := l.db.GetAction(req.Action, txn); err != nil {
			if errors.Is(err, models.ErrActionNotFound) {
				return fmt.Errorf(
					"action %d does not exist: %w",
					req.Action,
					ErrInvalidRowCount,
				)
			}
			return err
		}
		_, err = l.db.GetVote(req.Member, req.Action, txn)
		if err == nil {
			return fmt.Errorf(
				"member %d has already voted on action %d: %w",
				req.Member,
				req.Action,
				ErrInvalidRowCount,
			)
		}
		if !errors.Is(err, models.ErrVoteNotFound) {
			return err
		}
		vote := &models.Vote{
			MemberID:     req.Member,
			ActionID:     req.Action,
			Direction:    direction,
			CreationDate: at,
		}
		if err := l.db.CreateVote(vote, txn); err != nil {
			return fmt.Errorf(
				"create vote by member %d on action %d: %w",
				req.Member,
				req.Action,
				err,
			)
		}
		events = append(events, voteRecordedEvent(vote))
		return nil
	})
	if err == nil {
		l.publishEvents(events)
	}
	l.observeOperation(ctx, operation, req.Member, start, err)
	return err
}
