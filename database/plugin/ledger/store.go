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

package ledger

import (
	"fmt"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/plugin"
	"github.com/blinklabs-io/agora/database/types"
	"gorm.io/gorm"
)

// LedgerStore is the relational storage surface for members, projects,
// actions, and votes. Every data operation takes a trailing types.Txn; a nil
// transaction runs the operation directly against the base connection. Get
// operations return (nil, nil) when no matching row exists.
type LedgerStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(int64, types.Txn) error
	Transaction() types.Txn

	// Members
	GetMember(int64, types.Txn) (*models.Member, error)
	CreateMember(*models.Member, types.Txn) error

	// Projects
	GetProject(int64, types.Txn) (*models.Project, error)
	CreateProject(*models.Project, types.Txn) error
	GetProjects(types.ProjectFilter, types.Txn) ([]models.Project, error)

	// Actions
	GetAction(int64, types.Txn) (*models.Action, error)
	CreateAction(*models.Action, types.Txn) error
	GetActionTallies(
		types.ActionFilter,
		types.Txn,
	) ([]models.ActionTally, error)

	// Votes
	GetVote(int64, int64, types.Txn) (*models.Vote, error)
	CreateVote(*models.Vote, types.Txn) error
	GetMemberVoteTallies(
		types.VoteFilter,
		types.Txn,
	) ([]models.MemberVoteTally, error)
	GetTrollTallies(types.Txn) ([]models.TrollTally, error)
}

// New returns the started ledger plugin selected by name
func New(pluginName string) (LedgerStore, error) {
	// Get and start the plugin
	p, err := plugin.StartPlugin(plugin.PluginTypeLedger, pluginName)
	if err != nil {
		return nil, err
	}

	// Type assert to LedgerStore interface
	ledgerStore, ok := p.(LedgerStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' does not implement LedgerStore interface",
			pluginName,
		)
	}

	return ledgerStore, nil
}
