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

var ErrMemberNotFound = errors.New("member not found")

// Member ranks. A member's rank is fixed at creation; there is no
// promotion path through normal request handling.
const (
	MemberRankRegular = "regular"
	MemberRankLeader  = "leader"
)

// Member is a participant identified by a caller-assigned id. The password
// is stored as a bcrypt hash and never in plaintext. ActivityDate is set
// once at creation and never updated by later operations.
type Member struct {
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Rank         string    `gorm:"column:rank;not null"`
	ActivityDate time.Time `gorm:"column:activity_date;not null"`
	ID           int64     `gorm:"column:id;primarykey;autoIncrement:false"`
}

func (Member) TableName() string {
	return "member"
}

// IsLeader returns true if the member holds the leader rank
func (m *Member) IsLeader() bool {
	return m.Rank == MemberRankLeader
}
