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

package sqlite

import (
	"testing"
	"time"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/types"
)

// createTestMember creates a member row for tests
func createTestMember(
	store *LedgerStoreSqlite,
	id int64,
	rank string,
	activityDate time.Time,
) error {
	return store.CreateMember(
		&models.Member{
			ID:           id,
			PasswordHash: "test-hash",
			Rank:         rank,
			ActivityDate: activityDate,
		},
		nil,
	)
}

// createTestProject creates a project row for tests
func createTestProject(
	store *LedgerStoreSqlite,
	id int64,
	leaderId int64,
) error {
	return store.CreateProject(
		&models.Project{
			ID:           id,
			LeaderID:     leaderId,
			CreationDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		nil,
	)
}

// createTestAction creates an action row for tests
func createTestAction(
	store *LedgerStoreSqlite,
	id int64,
	projectId int64,
	memberId int64,
	actionType string,
) error {
	return store.CreateAction(
		&models.Action{
			ID:           id,
			ProjectID:    projectId,
			MemberID:     memberId,
			Type:         actionType,
			CreationDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		nil,
	)
}

// createTestVote creates a vote row for tests
func createTestVote(
	store *LedgerStoreSqlite,
	memberId int64,
	actionId int64,
	direction string,
) error {
	return store.CreateVote(
		&models.Vote{
			MemberID:     memberId,
			ActionID:     actionId,
			Direction:    direction,
			CreationDate: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
		},
		nil,
	)
}

// TestInMemoryConcurrentTransactions tests that our sqlite connection allows
// multiple concurrent transactions when using in-memory mode. This requires
// special URI flags, and this is mostly making sure that we don't lose them
func TestInMemoryConcurrentTransactions(t *testing.T) {
	sqliteStore, err := New("", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := sqliteStore.Start(); err != nil {
		t.Fatalf("unexpected error starting store: %s", err)
	}
	defer sqliteStore.Close() //nolint:errcheck

	activity := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := createTestMember(sqliteStore, 1, models.MemberRankRegular, activity); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	doQuery := func(sleep time.Duration) error {
		txn := sqliteStore.DB().Begin()
		defer txn.Rollback() //nolint:errcheck
		if result := txn.First(&models.Member{}); result.Error != nil {
			return result.Error
		}
		time.Sleep(sleep)
		if result := txn.Commit(); result.Error != nil {
			return result.Error
		}
		return nil
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- doQuery(2 * time.Second)
	}()
	time.Sleep(500 * time.Millisecond)
	if err := doQuery(0); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("goroutine error: %s", err)
	}
}

func TestMemberRoundTrip(t *testing.T) {
	sqliteStore, err := New("", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := sqliteStore.Start(); err != nil {
		t.Fatalf("unexpected error starting store: %s", err)
	}
	defer sqliteStore.Close() //nolint:errcheck

	activity := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	if err := createTestMember(sqliteStore, 7, models.MemberRankLeader, activity); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	member, err := sqliteStore.GetMember(7, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if member == nil {
		t.Fatal("expected member, got nil")
	}
	if member.Rank != models.MemberRankLeader {
		t.Errorf("expected rank %q, got %q", models.MemberRankLeader, member.Rank)
	}
	if member.PasswordHash != "test-hash" {
		t.Errorf("unexpected password hash: %q", member.PasswordHash)
	}
	if !member.ActivityDate.Equal(activity) {
		t.Errorf(
			"expected activity date %s, got %s",
			activity,
			member.ActivityDate,
		)
	}

	// Unknown member returns nil without error
	missing, err := sqliteStore.GetMember(404, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown member, got %#v", missing)
	}
}

func TestProjectListing(t *testing.T) {
	sqliteStore, err := New("", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := sqliteStore.Start(); err != nil {
		t.Fatalf("unexpected error starting store: %s", err)
	}
	defer sqliteStore.Close() //nolint:errcheck

	for _, p := range []struct {
		id       int64
		leaderId int64
	}{
		{12, 2},
		{10, 1},
		{11, 1},
	} {
		if err := createTestProject(sqliteStore, p.id, p.leaderId); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	t.Run("all projects ordered by id", func(t *testing.T) {
		projects, err := sqliteStore.GetProjects(types.ProjectFilter{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(projects) != 3 {
			t.Fatalf("expected 3 projects, got %d", len(projects))
		}
		for i, wantId := range []int64{10, 11, 12} {
			if projects[i].ID != wantId {
				t.Errorf(
					"expected project %d at position %d, got %d",
					wantId,
					i,
					projects[i].ID,
				)
			}
		}
	})

	t.Run("filter by leader", func(t *testing.T) {
		leaderId := int64(1)
		projects, err := sqliteStore.GetProjects(
			types.ProjectFilter{LeaderID: &leaderId},
			nil,
		)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(projects) != 2 {
			t.Fatalf("expected 2 projects, got %d", len(projects))
		}
		if projects[0].ID != 10 || projects[1].ID != 11 {
			t.Errorf(
				"expected projects [10 11], got [%d %d]",
				projects[0].ID,
				projects[1].ID,
			)
		}
	})

	t.Run("get single project", func(t *testing.T) {
		project, err := sqliteStore.GetProject(12, nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if project == nil {
			t.Fatal("expected project, got nil")
		}
		if project.LeaderID != 2 {
			t.Errorf("expected leader 2, got %d", project.LeaderID)
		}
		missing, err := sqliteStore.GetProject(404, nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if missing != nil {
			t.Errorf("expected nil for unknown project, got %#v", missing)
		}
	})
}

func TestActionTallies(t *testing.T) {
	sqliteStore, err := New("", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := sqliteStore.Start(); err != nil {
		t.Fatalf("unexpected error starting store: %s", err)
	}
	defer sqliteStore.Close() //nolint:errcheck

	activity := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, m := range []struct {
		id   int64
		rank string
	}{
		{1, models.MemberRankLeader},
		{4, models.MemberRankLeader},
		{2, models.MemberRankRegular},
		{3, models.MemberRankRegular},
	} {
		if err := createTestMember(sqliteStore, m.id, m.rank, activity); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	if err := createTestProject(sqliteStore, 10, 1); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := createTestProject(sqliteStore, 11, 4); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for _, a := range []struct {
		id         int64
		projectId  int64
		memberId   int64
		actionType string
	}{
		{100, 10, 2, models.ActionTypeSupport},
		{101, 10, 3, models.ActionTypeProtest},
		{102, 11, 2, models.ActionTypeSupport},
	} {
		if err := createTestAction(sqliteStore, a.id, a.projectId, a.memberId, a.actionType); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	for _, v := range []struct {
		memberId  int64
		actionId  int64
		direction string
	}{
		{2, 100, models.VoteDirectionUp},
		{3, 100, models.VoteDirectionUp},
		{4, 100, models.VoteDirectionDown},
		{2, 101, models.VoteDirectionDown},
	} {
		if err := createTestVote(sqliteStore, v.memberId, v.actionId, v.direction); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	t.Run("all actions with counts", func(t *testing.T) {
		tallies, err := sqliteStore.GetActionTallies(types.ActionFilter{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(tallies) != 3 {
			t.Fatalf("expected 3 tallies, got %d", len(tallies))
		}
		expected := []models.ActionTally{
			{ID: 100, Type: models.ActionTypeSupport, ProjectID: 10, LeaderID: 1, Upvotes: 2, Downvotes: 1},
			{ID: 101, Type: models.ActionTypeProtest, ProjectID: 10, LeaderID: 1, Upvotes: 0, Downvotes: 1},
			{ID: 102, Type: models.ActionTypeSupport, ProjectID: 11, LeaderID: 4, Upvotes: 0, Downvotes: 0},
		}
		for i, want := range expected {
			if tallies[i] != want {
				t.Errorf(
					"tally %d mismatch: expected %+v, got %+v",
					i,
					want,
					tallies[i],
				)
			}
		}
	})

	t.Run("filter by type", func(t *testing.T) {
		actionType := models.ActionTypeSupport
		tallies, err := sqliteStore.GetActionTallies(
			types.ActionFilter{Type: &actionType},
			nil,
		)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(tallies) != 2 {
			t.Fatalf("expected 2 tallies, got %d", len(tallies))
		}
		if tallies[0].ID != 100 || tallies[1].ID != 102 {
			t.Errorf(
				"expected actions [100 102], got [%d %d]",
				tallies[0].ID,
				tallies[1].ID,
			)
		}
	})

	t.Run("filter by project", func(t *testing.T) {
		projectId := int64(10)
		tallies, err := sqliteStore.GetActionTallies(
			types.ActionFilter{ProjectID: &projectId},
			nil,
		)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(tallies) != 2 {
			t.Fatalf("expected 2 tallies, got %d", len(tallies))
		}
	})

	t.Run("filter by leader", func(t *testing.T) {
		leaderId := int64(4)
		tallies, err := sqliteStore.GetActionTallies(
			types.ActionFilter{LeaderID: &leaderId},
			nil,
		)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(tallies) != 1 {
			t.Fatalf("expected 1 tally, got %d", len(tallies))
		}
		if tallies[0].ID != 102 {
			t.Errorf("expected action 102, got %d", tallies[0].ID)
		}
	})
}

func TestMemberVoteTallies(t *testing.T) {
	sqliteStore, err := New("", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := sqliteStore.Start(); err != nil {
		t.Fatalf("unexpected error starting store: %s", err)
	}
	defer sqliteStore.Close() //nolint:errcheck

	activity := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, m := range []struct {
		id   int64
		rank string
	}{
		{1, models.MemberRankLeader},
		{2, models.MemberRankRegular},
		{3, models.MemberRankRegular},
	} {
		if err := createTestMember(sqliteStore, m.id, m.rank, activity); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	if err := createTestProject(sqliteStore, 10, 1); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := createTestProject(sqliteStore, 11, 1); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for _, a := range []struct {
		id        int64
		projectId int64
		memberId  int64
	}{
		{100, 10, 2},
		{101, 10, 3},
		{102, 11, 3},
	} {
		if err := createTestAction(sqliteStore, a.id, a.projectId, a.memberId, models.ActionTypeSupport); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	for _, v := range []struct {
		memberId  int64
		actionId  int64
		direction string
	}{
		{2, 100, models.VoteDirectionUp},
		{2, 101, models.VoteDirectionDown},
		{3, 100, models.VoteDirectionUp},
		{3, 102, models.VoteDirectionDown},
	} {
		if err := createTestVote(sqliteStore, v.memberId, v.actionId, v.direction); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	t.Run("every member reported", func(t *testing.T) {
		tallies, err := sqliteStore.GetMemberVoteTallies(types.VoteFilter{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		expected := []models.MemberVoteTally{
			{MemberID: 1, Upvotes: 0, Downvotes: 0},
			{MemberID: 2, Upvotes: 1, Downvotes: 1},
			{MemberID: 3, Upvotes: 1, Downvotes: 1},
		}
		if len(tallies) != len(expected) {
			t.Fatalf("expected %d tallies, got %d", len(expected), len(tallies))
		}
		for i, want := range expected {
			if tallies[i] != want {
				t.Errorf(
					"tally %d mismatch: expected %+v, got %+v",
					i,
					want,
					tallies[i],
				)
			}
		}
	})

	t.Run("filter by action", func(t *testing.T) {
		actionId := int64(100)
		tallies, err := sqliteStore.GetMemberVoteTallies(
			types.VoteFilter{ActionID: &actionId},
			nil,
		)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		expected := []models.MemberVoteTally{
			{MemberID: 1, Upvotes: 0, Downvotes: 0},
			{MemberID: 2, Upvotes: 1, Downvotes: 0},
			{MemberID: 3, Upvotes: 1, Downvotes: 0},
		}
		if len(tallies) != len(expected) {
			t.Fatalf("expected %d tallies, got %d", len(expected), len(tallies))
		}
		for i, want := range expected {
			if tallies[i] != want {
				t.Errorf(
					"tally %d mismatch: expected %+v, got %+v",
					i,
					want,
					tallies[i],
				)
			}
		}
	})

	t.Run("filter by project", func(t *testing.T) {
		projectId := int64(11)
		tallies, err := sqliteStore.GetMemberVoteTallies(
			types.VoteFilter{ProjectID: &projectId},
			nil,
		)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		expected := []models.MemberVoteTally{
			{MemberID: 1, Upvotes: 0, Downvotes: 0},
			{MemberID: 2, Upvotes: 0, Downvotes: 0},
			{MemberID: 3, Upvotes: 0, Downvotes: 1},
		}
		if len(tallies) != len(expected) {
			t.Fatalf("expected %d tallies, got %d", len(expected), len(tallies))
		}
		for i, want := range expected {
			if tallies[i] != want {
				t.Errorf(
					"tally %d mismatch: expected %+v, got %+v",
					i,
					want,
					tallies[i],
				)
			}
		}
	})
}

func TestTrollTallies(t *testing.T) {
	sqliteStore, err := New("", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := sqliteStore.Start(); err != nil {
		t.Fatalf("unexpected error starting store: %s", err)
	}
	defer sqliteStore.Close() //nolint:errcheck

	// Member 1 collects up=1 down=5 across two actions, member 2 collects
	// up=0 down=3, member 3 collects up=2 down=2 and is not a troll.
	// Member 8 has an action with no votes at all. Members 4-7 only vote.
	for _, m := range []struct {
		id       int64
		activity time.Time
	}{
		{1, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{2, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{3, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{4, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{5, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{6, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{7, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{8, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{9, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
	} {
		if err := createTestMember(sqliteStore, m.id, models.MemberRankRegular, m.activity); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	if err := createTestProject(sqliteStore, 10, 9); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for _, a := range []struct {
		id       int64
		memberId int64
	}{
		{100, 1},
		{101, 1},
		{102, 2},
		{103, 3},
		{104, 8},
	} {
		if err := createTestAction(sqliteStore, a.id, 10, a.memberId, models.ActionTypeSupport); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	for _, v := range []struct {
		memberId  int64
		actionId  int64
		direction string
	}{
		{4, 100, models.VoteDirectionUp},
		{5, 100, models.VoteDirectionDown},
		{6, 100, models.VoteDirectionDown},
		{7, 100, models.VoteDirectionDown},
		{4, 101, models.VoteDirectionDown},
		{5, 101, models.VoteDirectionDown},
		{4, 102, models.VoteDirectionDown},
		{5, 102, models.VoteDirectionDown},
		{6, 102, models.VoteDirectionDown},
		{4, 103, models.VoteDirectionUp},
		{5, 103, models.VoteDirectionUp},
		{6, 103, models.VoteDirectionDown},
		{7, 103, models.VoteDirectionDown},
	} {
		if err := createTestVote(sqliteStore, v.memberId, v.actionId, v.direction); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	tallies, err := sqliteStore.GetTrollTallies(nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(tallies) != 2 {
		t.Fatalf("expected 2 tallies, got %d", len(tallies))
	}
	// Member 1 has the larger deficit and sorts first
	if tallies[0].MemberID != 1 || tallies[1].MemberID != 2 {
		t.Errorf(
			"expected members [1 2], got [%d %d]",
			tallies[0].MemberID,
			tallies[1].MemberID,
		)
	}
	if tallies[0].Upvotes != 1 || tallies[0].Downvotes != 5 {
		t.Errorf(
			"expected member 1 counts (1, 5), got (%d, %d)",
			tallies[0].Upvotes,
			tallies[0].Downvotes,
		)
	}
	if tallies[1].Upvotes != 0 || tallies[1].Downvotes != 3 {
		t.Errorf(
			"expected member 2 counts (0, 3), got (%d, %d)",
			tallies[1].Upvotes,
			tallies[1].Downvotes,
		)
	}
	// Activity dates ride along for the caller's account-age flag
	if tallies[0].ActivityDate.Year() != 2024 {
		t.Errorf(
			"expected member 1 activity year 2024, got %d",
			tallies[0].ActivityDate.Year(),
		)
	}
	if tallies[1].ActivityDate.Year() != 2025 {
		t.Errorf(
			"expected member 2 activity year 2025, got %d",
			tallies[1].ActivityDate.Year(),
		)
	}
}

func TestVoteUniqueness(t *testing.T) {
	sqliteStore, err := New("", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := sqliteStore.Start(); err != nil {
		t.Fatalf("unexpected error starting store: %s", err)
	}
	defer sqliteStore.Close() //nolint:errcheck

	activity := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := createTestMember(sqliteStore, 1, models.MemberRankRegular, activity); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := createTestProject(sqliteStore, 10, 2); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := createTestAction(sqliteStore, 100, 10, 1, models.ActionTypeSupport); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if err := createTestVote(sqliteStore, 1, 100, models.VoteDirectionUp); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	vote, err := sqliteStore.GetVote(1, 100, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if vote == nil {
		t.Fatal("expected vote, got nil")
	}
	if vote.Direction != models.VoteDirectionUp {
		t.Errorf("expected direction %q, got %q", models.VoteDirectionUp, vote.Direction)
	}

	// Second vote by the same member on the same action violates the
	// composite primary key
	if err := createTestVote(sqliteStore, 1, 100, models.VoteDirectionDown); err == nil {
		t.Error("expected error creating duplicate vote, got nil")
	}

	missing, err := sqliteStore.GetVote(1, 999, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown vote, got %#v", missing)
	}
}

func TestCommitTimestamp(t *testing.T) {
	sqliteStore, err := New("", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := sqliteStore.Start(); err != nil {
		t.Fatalf("unexpected error starting store: %s", err)
	}
	defer sqliteStore.Close() //nolint:errcheck

	// No record yet
	timestamp, err := sqliteStore.GetCommitTimestamp()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if timestamp != 0 {
		t.Errorf("expected 0 timestamp, got %d", timestamp)
	}

	if err := sqliteStore.SetCommitTimestamp(1234, nil); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	timestamp, err = sqliteStore.GetCommitTimestamp()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if timestamp != 1234 {
		t.Errorf("expected timestamp 1234, got %d", timestamp)
	}

	// Update existing record
	if err := sqliteStore.SetCommitTimestamp(5678, nil); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	timestamp, err = sqliteStore.GetCommitTimestamp()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if timestamp != 5678 {
		t.Errorf("expected timestamp 5678, got %d", timestamp)
	}
}

func TestTransactionRollback(t *testing.T) {
	sqliteStore, err := New("", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := sqliteStore.Start(); err != nil {
		t.Fatalf("unexpected error starting store: %s", err)
	}
	defer sqliteStore.Close() //nolint:errcheck

	activity := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	txn := sqliteStore.Transaction()
	if err := sqliteStore.CreateMember(
		&models.Member{
			ID:           1,
			PasswordHash: "test-hash",
			Rank:         models.MemberRankRegular,
			ActivityDate: activity,
		},
		txn,
	); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := txn.Rollback(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	member, err := sqliteStore.GetMember(1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if member != nil {
		t.Errorf("expected member rolled back, got %#v", member)
	}

	txn = sqliteStore.Transaction()
	if err := sqliteStore.CreateMember(
		&models.Member{
			ID:           1,
			PasswordHash: "test-hash",
			Rank:         models.MemberRankRegular,
			ActivityDate: activity,
		},
		txn,
	); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	member, err = sqliteStore.GetMember(1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if member == nil {
		t.Error("expected member after commit, got nil")
	}
}
