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
	"testing"

	"github.com/blinklabs-io/agora"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportCreatesProject(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	seedLeader(t, l, 1, "leader-pw")

	// A new project needs an authority naming a leader
	err := l.Support(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    2,
		Password:  "member-pw",
		Action:    10,
		Project:   100,
		Authority: int64Ptr(1),
	})
	require.NoError(t, err)

	projects, err := l.Projects(ctx, agora.ProjectsRequest{
		Member:   1,
		Password: "leader-pw",
	})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, int64(100), projects[0].ID)
	assert.Equal(t, int64(1), projects[0].LeaderID)

	// An existing project needs no authority
	err = l.Protest(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    3,
		Password:  "other-pw",
		Action:    11,
		Project:   100,
	})
	assert.NoError(t, err)
}

func TestProjectResolutionFailures(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	seedLeader(t, l, 1, "leader-pw")

	// Missing project without an authority
	err := l.Support(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    2,
		Password:  "member-pw",
		Action:    10,
		Project:   100,
	})
	assert.ErrorIs(t, err, agora.ErrInvalidMember)

	// Authority that does not exist
	err = l.Support(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    2,
		Password:  "member-pw",
		Action:    10,
		Project:   100,
		Authority: int64Ptr(404),
	})
	assert.ErrorIs(t, err, agora.ErrInvalidMember)

	// Commit member 2 as a regular member
	err = l.Support(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    2,
		Password:  "member-pw",
		Action:    10,
		Project:   100,
		Authority: int64Ptr(1),
	})
	require.NoError(t, err)

	// Authority naming a regular member cannot own a new project
	err = l.Support(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    3,
		Password:  "other-pw",
		Action:    11,
		Project:   200,
		Authority: int64Ptr(2),
	})
	assert.ErrorIs(t, err, agora.ErrInvalidMember)

	// The failed attempt rolled back cleanly, so action id 11 is still free
	err = l.Support(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    3,
		Password:  "other-pw",
		Action:    11,
		Project:   200,
		Authority: int64Ptr(1),
	})
	assert.NoError(t, err)
}

func TestFailedActionRollsBackProvisioning(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	// The proposer and the refused action roll back together: member 5 is
	// untouched afterwards and can still be provisioned as a leader
	err := l.Support(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    5,
		Password:  "member-pw",
		Action:    10,
		Project:   100,
	})
	require.ErrorIs(t, err, agora.ErrInvalidMember)

	err = l.Leader(ctx, agora.LeaderRequest{
		Timestamp: nowTimestamp(),
		Member:    5,
		Password:  "member-pw",
	})
	require.NoError(t, err)

	// Member 5 came back as a leader, so the earlier regular-member
	// provisioning did not survive the rollback
	_, err = l.Actions(ctx, agora.ActionsRequest{
		Member:   5,
		Password: "member-pw",
	})
	assert.NoError(t, err)
}

func TestDuplicateActionID(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	seedLeader(t, l, 1, "leader-pw")
	err := l.Support(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    2,
		Password:  "member-pw",
		Action:    5,
		Project:   100,
		Authority: int64Ptr(1),
	})
	require.NoError(t, err)

	// Action ids are global across projects and types
	err = l.Protest(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    3,
		Password:  "other-pw",
		Action:    5,
		Project:   100,
	})
	assert.Error(t, err)
}

func TestActionAuthenticationFailure(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	seedLeader(t, l, 1, "leader-pw")
	err := l.Support(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    2,
		Password:  "member-pw",
		Action:    5,
		Project:   100,
		Authority: int64Ptr(1),
	})
	require.NoError(t, err)

	// Existing proposer with a wrong password is rejected outright
	err = l.Support(ctx, agora.ActionRequest{
		Timestamp: nowTimestamp(),
		Member:    2,
		Password:  "wrong",
		Action:    6,
		Project:   100,
	})
	assert.ErrorIs(t, err, agora.ErrInvalidMember)
}
