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

// GetVote returns a member's vote on an action, or nil when the member has
// not voted on that action
func (d *LedgerStoreSqlite) GetVote(
	memberId int64,
	actionId int64,
	txn types.Txn,
) (*models.Vote, error) {
	ret := &models.Vote{}
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	result := db.First(ret, "id_member = ? AND id_action = ?", memberId, actionId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// CreateVote adds a new vote to the database
func (d *LedgerStoreSqlite) CreateVote(
	vote *models.Vote,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(vote); result.Error != nil {
		return fmt.Errorf("create vote: %w", result.Error)
	}
	return nil
}

// GetMemberVoteTallies returns one row per member with the counts of votes
// that member has cast within the filter scope, ordered by member id.
// Members who cast no matching votes report zero counts.
func (d *LedgerStoreSqlite) GetMemberVoteTallies(
	filter types.VoteFilter,
	txn types.Txn,
) ([]models.MemberVoteTally, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	where, whereArgs := types.WhereClause(filter.Conditions())

	var results []models.MemberVoteTally

	// Query explanation:
	// 1. cast_votes: per-member counts of votes cast, joined through action
	//    and project so the filter can scope by action or project
	// 2. LEFT JOIN from member so every member produces a row
	// 3. COALESCE defaults the counts to 0 for members with no matches
	query := fmt.Sprintf(`
		SELECT member.id AS member_id,
			COALESCE(cast_votes.upvotes, 0) AS upvotes,
			COALESCE(cast_votes.downvotes, 0) AS downvotes
		FROM member
		LEFT JOIN (
			SELECT vote.id_member AS id_member,
				SUM(CASE WHEN vote.direction = ? THEN 1 ELSE 0 END) AS upvotes,
				SUM(CASE WHEN vote.direction = ? THEN 1 ELSE 0 END) AS downvotes
			FROM vote
			INNER JOIN action ON action.id = vote.id_action
			INNER JOIN project ON project.id = action.id_project
			%s
			GROUP BY vote.id_member
		) AS cast_votes ON cast_votes.id_member = member.id
		ORDER BY member.id ASC`,
		where,
	)
	args := append(
		[]any{models.VoteDirectionUp, models.VoteDirectionDown},
		whereArgs...,
	)
	if err := db.Raw(query, args...).Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("get member vote tallies: %w", err)
	}
	return results, nil
}

// GetTrollTallies returns vote totals received across authored actions for
// every member whose actions collected more downvotes than upvotes, ordered
// by vote deficit descending then member id ascending
func (d *LedgerStoreSqlite) GetTrollTallies(
	txn types.Txn,
) ([]models.TrollTally, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}

	var results []models.TrollTally

	// Query explanation:
	// 1. Per-member sums of votes received on actions they authored.
	//    INNER JOIN action restricts to members with at least one action;
	//    LEFT JOIN vote keeps actions that received no votes
	// 2. HAVING keeps only members with more downvotes than upvotes
	// 3. Order by vote deficit, largest first, with member id as tiebreak
	// The aggregate expressions are repeated in HAVING and ORDER BY rather
	// than referenced by alias, since postgres does not allow aliases there
	query := `
		SELECT member.id AS member_id,
			member.activity_date AS activity_date,
			COALESCE(SUM(CASE WHEN vote.direction = ? THEN 1 ELSE 0 END), 0) AS upvotes,
			COALESCE(SUM(CASE WHEN vote.direction = ? THEN 1 ELSE 0 END), 0) AS downvotes
		FROM member
		INNER JOIN action ON action.id_member = member.id
		LEFT JOIN vote ON vote.id_action = action.id
		GROUP BY member.id, member.activity_date
		HAVING COALESCE(SUM(CASE WHEN vote.direction = ? THEN 1 ELSE 0 END), 0) >
			COALESCE(SUM(CASE WHEN vote.direction = ? THEN 1 ELSE 0 END), 0)
		ORDER BY COALESCE(SUM(CASE WHEN vote.direction = ? THEN 1 ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN vote.direction = ? THEN 1 ELSE 0 END), 0) DESC,
			member.id ASC`
	if err := db.Raw(
		query,
		models.VoteDirectionUp,
		models.VoteDirectionDown,
		models.VoteDirectionDown,
		models.VoteDirectionUp,
		models.VoteDirectionDown,
		models.VoteDirectionUp,
	).Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("get troll tallies: %w", err)
	}
	return results, nil
}
