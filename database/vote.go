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

package database

import (
	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/types"
)

// GetVote retrieves a vote by its member and action ids
func (d *Database) GetVote(
	memberId int64,
	actionId int64,
	txn *Txn,
) (*models.Vote, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	ret, err := d.ledger.GetVote(memberId, actionId, txn.Ledger())
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, models.ErrVoteNotFound
	}
	return ret, nil
}

// CreateVote stores a new vote. The ledger enforces one vote per member
// per action through the composite primary key.
func (d *Database) CreateVote(
	vote *models.Vote,
	txn *Txn,
) error {
	if txn == nil {
		return d.ledger.CreateVote(vote, nil)
	}
	return d.ledger.CreateVote(vote, txn.Ledger())
}

// GetMemberVoteTallies returns cast-vote counts for every member, ordered
// by member id. Members that match none of the filtered votes are included
// with zero counts.
func (d *Database) GetMemberVoteTallies(
	filter types.VoteFilter,
	txn *Txn,
) ([]models.MemberVoteTally, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.ledger.GetMemberVoteTallies(filter, txn.Ledger())
}

// GetTrollTallies returns members whose authored actions drew more
// downvotes than upvotes, ordered by the disapproval margin
func (d *Database) GetTrollTallies(txn *Txn) ([]models.TrollTally, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.ledger.GetTrollTallies(txn.Ledger())
}
