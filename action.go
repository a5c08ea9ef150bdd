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

// ActionRequest carries the arguments for the support and protest
// operations. Authority is only consulted when the referenced project does
// not exist yet.
type ActionRequest struct {
	Password  string `json:"password"`
	Authority *int64 `json:"authority,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Member    int64  `json:"member"`
	Action    int64  `json:"action"`
	Project   int64  `json:"project"`
}

// Support records a support action for the given project
func (l *Ledger) Support(ctx context.Context, req ActionRequest) error {
	return l.recordAction(ctx, OpSupport, models.ActionTypeSupport, req)
}

// Protest records a protest action for the given project
func (l *Ledger) Protest(ctx context.Context, req ActionRequest) error {
	return l.recordAction(ctx, OpProtest, models.ActionTypeProtest, req)
}

// recordAction runs the full action pipeline in one transaction: provision
// the proposing member, resolve the project, insert the action. A duplicate
// action id surfaces from the store's primary key constraint and rolls the
// whole operation back.
func (l *Ledger) recordAction(
	ctx context.Context,
	operation string,
	actionType string,
	req ActionRequest,
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
		project, projectCreated, err := l.resolveProject(
			txn,
			req.Project,
			req.Authority,
			at,
		)
		if err != nil {
			return err
		}
		if projectCreated {
			events = append(events, projectCreatedEvent(project))
		}
		action := &models.Action{
			ID:           req.Action,
			ProjectID:    req.Project,
			MemberID:     req.Member,
			Type:         actionType,
			CreationDate: at,
		}
		if err := l.db.CreateAction(action, txn); err != nil {
			return fmt.Errorf("create action %d: %w", req.Action, err)
		}
		events = append(events, actionRecordedEvent(action))
		return nil
	})
	if err == nil {
		l.publishEvents(events)
	}
	l.observeOperation(ctx, operation, req.Member, start, err)
	return err
}

// resolveProject ensures the project exists, creating it under the supplied
// authority when absent. Creation requires the authority to name an
// existing leader; the authority's credentials are not checked, the
// operation rides on the proposer's authenticated request. Returns the
// project row and whether it was created by this call.
func (l *Ledger) resolveProject(
	txn *database.Txn,
	projectID int64,
	authority *int64,
	at time.Time,
) (*models.Project, bool, error) {
	project, err := l.db.GetProject(projectID, txn)
	if err == nil {
		return project, false, nil
	}
	if !errors.Is(err, models.ErrProjectNotFound) {
		return nil, false, err
	}
	// Create path
	if authority == nil {
		return nil, false, fmt.Errorf(
			"project %d does not exist and no authority was supplied: %w",
			projectID,
			ErrInvalidMember,
		)
	}
	leader, err := l.db.GetMember(*authority, txn)
	if err != nil {
		if errors.Is(err, models.ErrMemberNotFound) {
			return nil, false, fmt.Errorf(
				"authority %d does not exist: %w",
				*authority,
				ErrInvalidMember,
			)
		}
		return nil, false, err
	}
	if !leader.IsLeader() {
		return nil, false, fmt.Errorf(
			"authority %d is not a leader: %w",
			*authority,
			ErrInvalidMember,
		)
	}
	project = &models.Project{
		ID:           projectID,
		LeaderID:     *authority,
		CreationDate: at,
	}
	if err := l.db.CreateProject(project, txn); err != nil {
		return nil, false, fmt.Errorf("create project %d: %w", projectID, err)
	}
	return project, true, nil
}
