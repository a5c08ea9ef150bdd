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

// GetProject retrieves a project by id
func (d *Database) GetProject(
	projectId int64,
	txn *Txn,
) (*models.Project, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	ret, err := d.ledger.GetProject(projectId, txn.Ledger())
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, models.ErrProjectNotFound
	}
	return ret, nil
}

// CreateProject stores a new project
func (d *Database) CreateProject(
	project *models.Project,
	txn *Txn,
) error {
	if txn == nil {
		return d.ledger.CreateProject(project, nil)
	}
	return d.ledger.CreateProject(project, txn.Ledger())
}

// GetProjects returns projects matching the filter, ordered by project id
func (d *Database) GetProjects(
	filter types.ProjectFilter,
	txn *Txn,
) ([]models.Project, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.ledger.GetProjects(filter, txn.Ledger())
}
