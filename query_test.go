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

package agora_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/blinklabs-io/agora"
	"github.com/blinklabs-io/agora/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberPassword(member int64) string {
	return fmt.Sprintf("pw-%d", member)
}

func propose(
	t *testing.T,
	l *agora.Ledger,
	member int64,
	action int64,
	project int64,
	authority *int64,
	protest bool,
) {
	t.Helper()
	req := agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    member,
		Password:  memberPassword(member),
		Action:    action,
		Project:   project,
		Authority: authority,
	}
	var err error
	if protest {
		err = l.Protest(context.Background(), req)
	} else {
		err = l.Support(context.Background(), req)
	}
	require.NoError(t, err)
}

func castVote(
	t *testing.T,
	l *agora.Ledger,
	member int64,
	action int64,
	up bool,
) {
	t.Helper()
	req := agora.VoteRequest{
		Timestamp: nowTimestamp(),
		Member:    member,
		Password:  memberPassword(member),
		Action:    action,
	}
	var err error
	if up {
		err = l.Upvote(context.Background(), req)
	} else {
		err = l.Downvote(context.Background(), req)
	}
	require.NoError(t, err)
}

// seedListingFixture builds the shared listing state:
//
//	leaders 1 and 2, owning projects 100 and 200
//	action 1: protest on 200 by member 11, 1 up / 1 down
//	action 2: support on 100 by member 12, 2 up / 0 down
//	action 3: support on 100 by member 10, 0 up / 1 down
func seedListingFixture(t *testing.T, l *agora.Ledger) {
	t.Helper()
	seedLeader(t, l, 1, memberPassword(1))
	seedLeader(t, l, 2, memberPassword(2))
	propose(t, l, 11, 1, 200, int64Ptr(2), true)
	propose(t, l, 12, 2, 100, int64Ptr(1), false)
	propose(t, l, 10, 3, 100, nil, false)
	castVote(t, l, 10, 1, true)
	castVote(t, l, 12, 1, false)
	castVote(t, l, 10, 2, true)
	castVote(t, l, 11, 2, true)
	castVote(t, l, 11, 3, false)
}

func TestActionsListing(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	seedListingFixture(t, l)

	tallies, err := l.Actions(ctx, agora.ActionsRequest{
		Member:   1,
		Password: memberPassword(1),
	})
	require.NoError(t, err)
	assert.Equal(t, []models.ActionTally{
		{
			ID:        1,
			Type:      models.ActionTypeProtest,
			ProjectID: 200,
			LeaderID:  2,
			Upvotes:   1,
			Downvotes: 1,
		},
		{
			ID:        2,
			Type:      models.ActionTypeSupport,
			ProjectID: 100,
			LeaderID:  1,
			Upvotes:   2,
			Downvotes: 0,
		},
		{
			ID:        3,
			Type:      models.ActionTypeSupport,
			ProjectID: 100,
			LeaderID:  1,
			Upvotes:   0,
			Downvotes: 1,
		},
	}, tallies)
}

func TestActionsListingFilters(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	seedListingFixture(t, l)

	actionIDs := func(tallies []models.ActionTally) []int64 {
		ids := make([]int64, 0, len(tallies))
		for _, tally := range tallies {
			ids = append(ids, tally.ID)
		}
		return ids
	}

	tallies, err := l.Actions(ctx, agora.ActionsRequest{
		Member:     1,
		Password:   memberPassword(1),
		ActionType: stringPtr(models.ActionTypeSupport),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, actionIDs(tallies))

	tallies, err = l.Actions(ctx, agora.ActionsRequest{
		Member:   1,
		Password: memberPassword(1),
		Project:  int64Ptr(100),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, actionIDs(tallies))

	tallies, err = l.Actions(ctx, agora.ActionsRequest{
		Member:    1,
		Password:  memberPassword(1),
		Authority: int64Ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, actionIDs(tallies))

	// Filters combine conjunctively
	tallies, err = l.Actions(ctx, agora.ActionsRequest{
		Member:     1,
		Password:   memberPassword(1),
		ActionType: stringPtr(models.ActionTypeProtest),
		Project:    int64Ptr(100),
	})
	require.NoError(t, err)
	assert.Empty(t, tallies)

	// An unrecognized action type matches nothing rather than failing
	tallies, err = l.Actions(ctx, agora.ActionsRequest{
		Member:     1,
		Password:   memberPassword(1),
		ActionType: stringPtr("bogus"),
	})
	require.NoError(t, err)
	assert.Empty(t, tallies)
}

func TestProjectsListing(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	seedListingFixture(t, l)

	projects, err := l.Projects(ctx, agora.ProjectsRequest{
		Member:   2,
		Password: memberPassword(2),
	})
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, int64(100), projects[0].ID)
	assert.Equal(t, int64(1), projects[0].LeaderID)
	assert.Equal(t, int64(200), projects[1].ID)
	assert.Equal(t, int64(2), projects[1].LeaderID)

	projects, err = l.Projects(ctx, agora.ProjectsRequest{
		Member:    2,
		Password:  memberPassword(2),
		Authority: int64Ptr(1),
	})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, int64(100), projects[0].ID)
}

func TestVotesListing(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	seedListingFixture(t, l)

	// Every known member appears, voters and non-voters alike
	tallies, err := l.Votes(ctx, agora.VotesRequest{
		Member:   1,
		Password: memberPassword(1),
	})
	require.NoError(t, err)
	assert.Equal(t, []models.MemberVoteTally{
		{MemberID: 1, Upvotes: 0, Downvotes: 0},
		{MemberID: 2, Upvotes: 0, Downvotes: 0},
		{MemberID: 10, Upvotes: 2, Downvotes: 0},
		{MemberID: 11, Upvotes: 1, Downvotes: 1},
		{MemberID: 12, Upvotes: 0, Downvotes: 1},
	}, tallies)

	// Scoped to a single action
	tallies, err = l.Votes(ctx, agora.VotesRequest{
		Member:   1,
		Password: memberPassword(1),
		Action:   int64Ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, []models.MemberVoteTally{
		{MemberID: 1, Upvotes: 0, Downvotes: 0},
		{MemberID: 2, Upvotes: 0, Downvotes: 0},
		{MemberID: 10, Upvotes: 1, Downvotes: 0},
		{MemberID: 11, Upvotes: 1, Downvotes: 0},
		{MemberID: 12, Upvotes: 0, Downvotes: 0},
	}, tallies)

	// Scoped to a project's actions
	tallies, err = l.Votes(ctx, agora.VotesRequest{
		Member:   1,
		Password: memberPassword(1),
		Project:  int64Ptr(100),
	})
	require.NoError(t, err)
	assert.Equal(t, []models.MemberVoteTally{
		{MemberID: 1, Upvotes: 0, Downvotes: 0},
		{MemberID: 2, Upvotes: 0, Downvotes: 0},
		{MemberID: 10, Upvotes: 1, Downvotes: 0},
		{MemberID: 11, Upvotes: 1, Downvotes: 1},
		{MemberID: 12, Upvotes: 0, Downvotes: 0},
	}, tallies)
}

func TestListingsRequireLeader(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	seedListingFixture(t, l)

	// Regular member
	_, err := l.Actions(ctx, agora.ActionsRequest{
		Member:   10,
		Password: memberPassword(10),
	})
	assert.ErrorIs(t, err, agora.ErrInvalidMember)

	// Unknown member
	_, err = l.Projects(ctx, agora.ProjectsRequest{
		Member:   404,
		Password: "whatever",
	})
	assert.ErrorIs(t, err, agora.ErrInvalidMember)

	// Wrong password
	_, err = l.Votes(ctx, agora.VotesRequest{
		Member:   1,
		Password: "wrong",
	})
	assert.ErrorIs(t, err, agora.ErrInvalidMember)
}

func TestTrollsListing(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	seedLeader(t, l, 1, memberPassword(1))
	propose(t, l, 10, 1, 100, int64Ptr(1), false)
	propose(t, l, 11, 2, 100, nil, false)
	propose(t, l, 12, 3, 100, nil, false)
	propose(t, l, 14, 5, 100, nil, false)
	// Member 13's only activity falls in 2020
	err := l.Support(ctx, agora.ActionRequest{
		Timestamp: time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC).Unix(),
		Member:    13,
		Password:  memberPassword(13),
		Action:    4,
		Project:   100,
	})
	require.NoError(t, err)

	// action 1 (member 10): 1 up, 5 down
	castVote(t, l, 20, 1, true)
	castVote(t, l, 21, 1, false)
	castVote(t, l, 22, 1, false)
	castVote(t, l, 23, 1, false)
	castVote(t, l, 24, 1, false)
	castVote(t, l, 25, 1, false)
	// action 2 (member 11): 0 up, 3 down
	castVote(t, l, 20, 2, false)
	castVote(t, l, 21, 2, false)
	castVote(t, l, 22, 2, false)
	// action 3 (member 12): 2 up, 2 down, not a troll
	castVote(t, l, 20, 3, true)
	castVote(t, l, 21, 3, true)
	castVote(t, l, 22, 3, false)
	castVote(t, l, 23, 3, false)
	// action 5 (member 14): 0 up, 3 down, ties member 11's margin
	castVote(t, l, 23, 5, false)
	castVote(t, l, 24, 5, false)
	castVote(t, l, 25, 5, false)
	// action 4 (member 13): 0 up, 2 down
	castVote(t, l, 24, 4, false)
	castVote(t, l, 25, 4, false)

	// Ordered by disapproval margin, member id breaking the tie between
	// members 11 and 14. Member 13 ranks as inactive: last activity 2020.
	trolls, err := l.Trolls(ctx, agora.TrollsRequest{
		Timestamp: nowTimestamp(),
	})
	require.NoError(t, err)
	assert.Equal(t, []agora.Troll{
		{MemberID: 10, Upvotes: 1, Downvotes: 5, Active: true},
		{MemberID: 11, Upvotes: 0, Downvotes: 3, Active: true},
		{MemberID: 14, Upvotes: 0, Downvotes: 3, Active: true},
		{MemberID: 13, Upvotes: 0, Downvotes: 2, Active: false},
	}, trolls)
}

func TestTrollsEmptyLedger(t *testing.T) {
	l := newTestLedger(t)

	trolls, err := l.Trolls(context.Background(), agora.TrollsRequest{
		Timestamp: nowTimestamp(),
	})
	require.NoError(t, err)
	assert.Empty(t, trolls)
}
