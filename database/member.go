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
)

// GetMember retrieves a member by id
func (d *Database) GetMember(
	memberId int64,
	txn *Txn,
) (*models.Member, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	ret, err := d.ledger.GetMember(memberId, txn.Ledger())
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, models.ErrMemberNotFound
	}
	return ret, nil
}

// CreateMember stores a new member
func (d *Database) CreateMember(
	member *models.Member,
	txn *Txn,
) error {
	if txn == nil {
		return d.ledger.CreateMember(member, nil)
	}
	return d.ledger.CreateMember(member, txn.Ledger())
}
