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

var ErrProjectNotFound = errors.New("project not found")

// Project is owned by exactly one leader, set at creation and immutable.
// Projects are created lazily the first time an action references an
// unknown project id with a valid authority.
type Project struct {
	CreationDate time.Time `gorm:"column:creation_date;not null"`
	ID           int64     `gorm:"column:id;primarykey;autoIncrement:false"`
	LeaderID     int64     `gorm:"column:id_leader;not null;index"`
}

func (Project) TableName() string {
	return "project"
}
