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

// GetProject returns a project by id, or nil when no such project exists
func (d *LedgerStorePostgres) GetProject(
	projectId int64,
	txn types.Txn,
) (*models.Project, error) {
	ret := &models.Project{}
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	result := db.First(ret, "id = ?", projectId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// CreateProject adds a new project to the database
func (d *LedgerStorePostgres) CreateProject(
	project *models.Project,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(project); result.Error != nil {
		return fmt.Errorf("create project: %w", result.Error)
	}
	return nil
}

// GetProjects returns projects matching the filter, ordered by project id
func (d *LedgerStorePostgres) GetProjects(
	filter types.ProjectFilter,
	txn types.Txn,
) ([]models.Project, error) {
	var ret []models.Project
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	query := db.Order("id ASC")
	for _, cond := range filter.Conditions() {
		query = query.Where(cond.Column+" = ?", cond.Value)
	}
	result := query.Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf("get projects: %w", result.Error)
	}
	return ret, nil
}
