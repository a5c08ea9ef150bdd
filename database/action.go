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

// GetAction retrieves an action by id
func (d *Database) GetAction(
	actionId int64,
	txn *Txn,
) (*models.Action, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	ret, err := d.ledger.GetAction(actionId, txn.Ledger())
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, models.ErrActionNotFound
	}
	return ret, nil
}

// CreateAction stores a new action
func (d *Database) CreateAction(
	action *models.Action,
	txn *Txn,
) error {
	if txn == nil {
		return d.ledger.CreateAction(action, nil)
	}
	return d.ledger.CreateAction(action, txn.Ledger())
}

// GetActionTallies returns actions matching the filter with their vote
// counts, ordered by action id
func (d *Database) GetActionTallies(
	filter types.ActionFilter,
	txn *Txn,
) ([]models.ActionTally, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.ledger.GetActionTallies(filter, txn.Ledger())
}
