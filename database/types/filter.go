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

package types

import (
	"strings"
)

// Condition is a single equality predicate on a named column. Column names
// come from the filter types below and are fixed at compile time; values are
// always bound as query parameters, never interpolated into query text.
type Condition struct {
	Value  any
	Column string
}

// ActionFilter narrows the actions listing. Nil fields are ignored.
type ActionFilter struct {
	Type      *string
	ProjectID *int64
	LeaderID  *int64
}

// Conditions returns the filter as column predicates in a stable order
func (f ActionFilter) Conditions() []Condition {
	var conds []Condition
	if f.Type != nil {
		conds = append(
			conds,
			Condition{Column: "action.type", Value: *f.Type},
		)
	}
	if f.ProjectID != nil {
		conds = append(
			conds,
			Condition{Column: "project.id", Value: *f.ProjectID},
		)
	}
	if f.LeaderID != nil {
		conds = append(
			conds,
			Condition{Column: "project.id_leader", Value: *f.LeaderID},
		)
	}
	return conds
}

// ProjectFilter narrows the projects listing. Nil fields are ignored.
type ProjectFilter struct {
	LeaderID *int64
}

// Conditions returns the filter as column predicates
func (f ProjectFilter) Conditions() []Condition {
	var conds []Condition
	if f.LeaderID != nil {
		conds = append(
			conds,
			Condition{Column: "project.id_leader", Value: *f.LeaderID},
		)
	}
	return conds
}

// VoteFilter narrows the votes listing. Nil fields are ignored.
type VoteFilter struct {
	ActionID  *int64
	ProjectID *int64
}

// Conditions returns the filter as column predicates in a stable order
func (f VoteFilter) Conditions() []Condition {
	var conds []Condition
	if f.ActionID != nil {
		conds = append(
			conds,
			Condition{Column: "vote.id_action", Value: *f.ActionID},
		)
	}
	if f.ProjectID != nil {
		conds = append(
			conds,
			Condition{Column: "project.id", Value: *f.ProjectID},
		)
	}
	return conds
}

// WhereClause renders conditions as a parameterized SQL fragment plus its
// bind arguments. Returns an empty fragment when there are no conditions.
func WhereClause(conds []Condition) (string, []any) {
	if len(conds) == 0 {
		return "", nil
	}
	var sb strings.Builder
	args := make([]any, 0, len(conds))
	for i, cond := range conds {
		if i == 0 {
			sb.WriteString("WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(cond.Column)
		sb.WriteString(" = ?")
		args = append(args, cond.Value)
	}
	return sb.String(), args
}
