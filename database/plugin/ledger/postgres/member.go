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

package postgres

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/types"
	"gorm.io/gorm"
)

// GetMember returns a member by id, or nil when no such member exists
func (d *LedgerStorePostgres) GetMember(
	memberId int64,
	txn types.Txn,
) (*models.Member, error) {
	ret := &models.Member{}
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	result := db.First(ret, "id = ?", memberId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// CreateMember adds a new member to the database
func (d *LedgerStorePostgres) CreateMember(
	member *models.Member,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(member); result.Error != nil {
		return fmt.Errorf("create member: %w", result.Error)
	}
	return nil
}
