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

	"golang.org/x/crypto/bcrypt"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/models"
)

// LeaderRequest carries the arguments for the leader operation
type LeaderRequest struct {
	Password  string `json:"password"`
	Timestamp int64  `json:"timestamp"`
	Member    int64  `json:"member"`
}

// Leader registers a member with the leader rank, or re-validates an
// existing member's credentials. Repeating the request for an existing
// member with the correct password succeeds and alters nothing; rank and
// activity date are fixed at creation.
func (l *Ledger) Leader(ctx context.Context, req LeaderRequest) error {
	start := time.Now()
	at := time.Unix(req.Timestamp, 0).UTC()
	var events []ledgerEvent
	txn := l.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		member, created, err := l.provisionMember(
			txn,
			req.Member,
			req.Password,
			models.MemberRankLeader,
			at,
		)
		if err != nil {
			return err
		}
		if created {
			events = append(events, memberCreatedEvent(member))
		}
		return nil
	})
	if err == nil {
		l.publishEvents(events)
	}
	l.observeOperation(ctx, OpLeader, req.Member, start, err)
	return err
}

// provisionMember ensures a member row exists, creating one with the given
// rank when absent. An existing member is authenticated instead; its rank
// and activity date are left untouched. Returns the member row and whether
// it was created by this call.
func (l *Ledger) provisionMember(
	txn *database.Txn,
	memberID int64,
	password string,
	rank string,
	at time.Time,
) (*models.Member, bool, error) {
	member, err := l.db.GetMember(memberID, txn)
	if err == nil {
		// Validate path: an existing member that fails authentication is
		// rejected outright, never recreated
		if err := authenticateMember(member, password, at); err != nil {
			return nil, false, err
		}
		return member, false, nil
	}
	if !errors.Is(err, models.ErrMemberNotFound) {
		return nil, false, err
	}
	// Create path
	passwordHash, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}
	member = &models.Member{
		ID:           memberID,
		PasswordHash: string(passwordHash),
		Rank:         rank,
		ActivityDate: at,
	}
	if err := l.db.CreateMember(member, txn); err != nil {
		return nil, false, fmt.Errorf("create member %d: %w", memberID, err)
	}
	return member, true, nil
}

// authenticateMember checks the claimed password against the stored bcrypt
// hash and enforces the freshness rule: a member whose activity year
// differs from the request year is frozen. Both years are evaluated in UTC.
func authenticateMember(
	member *models.Member,
	password string,
	at time.Time,
) error {
	if err := bcrypt.CompareHashAndPassword(
		[]byte(member.PasswordHash),
		[]byte(password),
	); err != nil {
		return fmt.Errorf(
			"member %d: authentication failed: %w",
			member.ID,
			ErrInvalidMember,
		)
	}
	if member.ActivityDate.UTC().Year() != at.Year() {
		return fmt.Errorf(
			"member %d is frozen: %w",
			member.ID,
			ErrInvalidMember,
		)
	}
	return nil
}

// verifyLeader authenticates an existing member and requires the leader
// rank. An absent member fails the same way as bad credentials.
func (l *Ledger) verifyLeader(
	txn *database.Txn,
	memberID int64,
	password string,
	at time.Time,
) error {
	member, err := l.db.GetMember(memberID, txn)
	if err != nil {
		if errors.Is(err, models.ErrMemberNotFound) {
			return fmt.Errorf("unknown member %d: %w", memberID, ErrInvalidMember)
		}
		return err
	}
	if err := authenticateMember(member, password, at); err != nil {
		return err
	}
	if !member.IsLeader() {
		return fmt.Errorf(
			"member %d is not a leader: %w",
			memberID,
			ErrInvalidMember,
		)
	}
	return nil
}
