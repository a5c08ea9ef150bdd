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

var ErrVoteNotFound = errors.New("vote not found")

// Vote directions
const (
	VoteDirectionUp   = "up"
	VoteDirectionDown = "down"
)

// Vote is a single member's judgment on one action. The composite primary
// key enforces at most one vote per (member, action) pair; the recorder
// also checks explicitly before insert. Votes are never updated.
type Vote struct {
	Direction    string    `gorm:"column:direction;not null"`
	CreationDate time.Time `gorm:"column:creation_date;not null"`
	MemberID     int64     `gorm:"column:id_member;primarykey;autoIncrement:false"`
	ActionID     int64     `gorm:"column:id_action;primarykey;autoIncrement:false"`
}

func (Vote) TableName() string {
	return "vote"
}

// MemberVoteTally is one row of the votes listing: the up/down counts of
// votes cast by a member within the requested filter scope. Members who
// cast no votes report zero counts.
type MemberVoteTally struct {
	MemberID  int64
	Upvotes   int64
	Downvotes int64
}

// TrollTally is one row of the troll listing: the vote totals received
// across a member's authored actions. ActivityDate is carried so callers
// can evaluate the activity-year flag against a request timestamp.
type TrollTally struct {
	ActivityDate time.Time
	MemberID     int64
	Upvotes      int64
	Downvotes    int64
}
