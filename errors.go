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

package agora

import (
	"errors"
)

// ErrInvalidMember marks authentication and authorization failures: wrong
// credentials, a frozen (stale activity year) member, a non-leader invoking
// a privileged operation, or a missing or invalid project authority.
var ErrInvalidMember = errors.New("invalid member")

// ErrInvalidRowCount marks referential integrity failures: a required row
// is absent, or a row that must not exist already does.
var ErrInvalidRowCount = errors.New("invalid row count")

// errorClass buckets an operation error for the audit journal. Store and
// infrastructure errors fall through to a single class; the journal records
// outcomes, not diagnostics.
func errorClass(err error) string {
	switch {
	case errors.Is(err, ErrInvalidMember):
		return "invalid_member"
	case errors.Is(err, ErrInvalidRowCount):
		return "invalid_row_count"
	default:
		return "store_error"
	}
}
