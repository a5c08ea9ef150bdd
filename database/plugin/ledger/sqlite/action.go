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
	"errors"
	"fmt"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/types"
	"gorm.io/gorm"
)

// GetAction returns an action by id, or nil when no such action exists
func (d *LedgerStoreSqlite) GetAction(
	actionId int64,
	txn types.Txn,
) (*models.Action, error) {
	ret := &models.Action{}
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	result := db.First(ret, "id = ?", actionId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// CreateAction adds a new action to the database
func (d *LedgerStoreSqlite) CreateAction(
	action *models.Action,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(action); result.Error != nil {
		return fmt.Errorf("create action: %w", result.Error)
	}
	return nil
}

// GetActionTallies returns each action matching the filter along with its
// owning leader and vote counts, ordered by action id
func (d *LedgerStoreSqlite) GetActionTallies(
	filter types.ActionFilter,
	txn types.Txn,
) ([]models.ActionTally, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	where, whereArgs := types.WhereClause(filter.Conditions())

	var results []models.ActionTally

	// Query explanation:
	// 1. Join each action to its project to expose the owning leader
	// 2. LEFT JOIN votes so actions without votes still produce a row
	// 3. SUM per-direction CASE expressions to count up and down votes
	// 4. Group per action and order by action id for stable output
	query := fmt.Sprintf(`
		SELECT action.id AS id,
			action.type AS type,
			project.id AS project_id,
			project.id_leader AS leader_id,
			COALESCE(SUM(CASE WHEN vote.direction = ? THEN 1 ELSE 0 END), 0) AS upvotes,
			COALESCE(SUM(CASE WHEN vote.direction = ? THEN 1 ELSE 0 END), 0) AS downvotes
		FROM action
		INNER JOIN project ON project.id = action.id_project
		LEFT JOIN vote ON vote.id_action = action.id
		%s
		GROUP BY action.id, action.type, project.id, project.id_leader
		ORDER BY action.id ASC`,
		where,
	)
	args := append(
		[]any{models.VoteDirectionUp, models.VoteDirectionDown},
		whereArgs...,
	)
	if err := db.Raw(query, args...).Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("get action tallies: %w", err)
	}
	return results, nil
}
