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
	"time"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/types"
)

// ActionsRequest carries the arguments for the actions listing. All filter
// fields are optional and combine conjunctively.
type ActionsRequest struct {
	Password   string  `json:"password"`
	ActionType *string `json:"action_type,omitempty"`
	Project    *int64  `json:"project,omitempty"`
	Authority  *int64  `json:"authority,omitempty"`
	Member     int64   `json:"member"`
}

// ProjectsRequest carries the arguments for the projects listing
type ProjectsRequest struct {
	Password  string `json:"password"`
	Authority *int64 `json:"authority,omitempty"`
	Member    int64  `json:"member"`
}

// VotesRequest carries the arguments for the votes listing
type VotesRequest struct {
	Password string `json:"password"`
	Action   *int64 `json:"action,omitempty"`
	Project  *int64 `json:"project,omitempty"`
	Member   int64  `json:"member"`
}

// TrollsRequest carries the arguments for the trolls listing. Trolls is the
// only listing that takes a timestamp and the only one open to anonymous
// callers.
type TrollsRequest struct {
	Timestamp int64 `json:"timestamp"`
}

// Troll describes a member whose authored actions drew more downvotes than
// upvotes. Active reports whether the member's last recorded activity falls
// in or after the year of the request timestamp.
type Troll struct {
	MemberID  int64
	Upvotes   int64
	Downvotes int64
	Active    bool
}

// Actions lists actions with their vote counts, ordered by action id.
// The caller must authenticate as a leader.
func (l *Ledger) Actions(
	ctx context.Context,
	req ActionsRequest,
) ([]models.ActionTally, error) {
	start := time.Now()
	var tallies []models.ActionTally
	txn := l.db.Transaction(false)
	defer txn.Release()
	err := l.verifyLeader(txn, req.Member, req.Password, time.Now().UTC())
	if err == nil {
		tallies, err = l.db.GetActionTallies(
			types.ActionFilter{
				Type:      req.ActionType,
				ProjectID: req.Project,
				LeaderID:  req.Authority,
			},
			txn,
		)
	}
	l.observeOperation(ctx, OpActions, req.Member, start, err)
	if err != nil {
		return nil, err
	}
	return tallies, nil
}

// Projects lists projects, ordered by project id. The caller must
// authenticate as a leader.
func (l *Ledger) Projects(
	ctx context.Context,
	req ProjectsRequest,
) ([]models.Project, error) {
	start := time.Now()
	var projects []models.Project
	txn := l.db.Transaction(false)
	defer txn.Release()
	err := l.verifyLeader(txn, req.Member, req.Password, time.Now().UTC())
	if err == nil {
		projects, err = l.db.GetProjects(
			types.ProjectFilter{
				LeaderID: req.Authority,
			},
			txn,
		)
	}
	l.observeOperation(ctx, OpProjects, req.Member, start, err)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Votes lists cast-vote counts for every known member, ordered by member
// id. Members with no matching votes appear with zero counts. The caller
// must authenticate as a leader.
func (l *Ledger) Votes(
	ctx context.Context,
	req VotesRequest,
) ([]models.MemberVoteTally, error) {
	start := time.Now()
	var tallies []models.MemberVoteTally
	txn := l.db.Transaction(false)
	defer txn.Release()
	err := l.verifyLeader(txn, req.Member, req.Password, time.Now().UTC())
	if err == nil {
		tallies, err = l.db.GetMemberVoteTallies(
			types.VoteFilter{
				ActionID:  req.Action,
				ProjectID: req.Project,
			},
			txn,
		)
	}
	l.observeOperation(ctx, OpVotes, req.Member, start, err)
	if err != nil {
		return nil, err
	}
	return tallies, nil
}

// Trolls lists members whose authored actions drew strictly more downvotes
// than upvotes, ordered by disapproval margin (descending) and member id.
// No authentication is required.
func (l *Ledger) Trolls(
	ctx context.Context,
	req TrollsRequest,
) ([]Troll, error) {
	start := time.Now()
	at := time.Unix(req.Timestamp, 0).UTC()
	txn := l.db.Transaction(false)
	defer txn.Release()
	tallies, err := l.db.GetTrollTallies(txn)
	l.observeOperation(ctx, OpTrolls, 0, start, err)
	if err != nil {
		return nil, err
	}
	trolls := make([]Troll, 0, len(tallies))
	for _, tally := range tallies {
		trolls = append(trolls, Troll{
			MemberID:  tally.MemberID,
			Upvotes:   tally.Upvotes,
			Downvotes: tally.Downvotes,
			Active:    tally.ActivityDate.UTC().Year() >= at.Year(),
		})
	}
	return trolls, nil
}
