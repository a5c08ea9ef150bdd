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

package models

import (
	"errors"
	"time"
)

var ErrActionNotFound = errors.New("action not found")

// Action types
const (
	ActionTypeSupport = "support"
	ActionTypeProtest = "protest"
)

// Action is a typed proposal attached to a project. The referenced project
// and proposing member must exist before insert. Immutable once created.
type Action struct {
	Type         string    `gorm:"column:type;not null"`
	CreationDate time.Time `gorm:"column:creation_date;not null"`
	ID           int64     `gorm:"column:id;primarykey;autoIncrement:false"`
	ProjectID    int64     `gorm:"column:id_project;not null;index"`
	MemberID     int64     `gorm:"column:id_member;not null;index"`
}

func (Action) TableName() string {
	return "action"
}

// ActionTally is one row of the actions listing: an action with its owning
// leader and the up/down vote counts it has received. Computed on demand
// from vote rows, never persisted.
type ActionTally struct {
	Type      string
	ID        int64
	ProjectID int64
	LeaderID  int64
	Upvotes   int64
	Downvotes int64
}
