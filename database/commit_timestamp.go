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
	"context"
	"fmt"
)

type CommitTimestampError struct {
	LedgerTimestamp int64
	AuditTimestamp  int64
}

func (e CommitTimestampError) Error() string {
	return fmt.Sprintf(
		"commit timestamp mismatch: %d (ledger) != %d (audit)",
		e.LedgerTimestamp,
		e.AuditTimestamp,
	)
}

func (d *Database) checkCommitTimestamp() error {
	// Get value from ledger
	ledgerTimestamp, ledgerErr := d.Ledger().GetCommitTimestamp()
	if ledgerErr != nil {
		return fmt.Errorf(
			"failed to get ledger timestamp from plugin: %w",
			ledgerErr,
		)
	}
	// No timestamp in the database
	if ledgerTimestamp <= 0 {
		return nil
	}
	// Get value from audit journal
	auditTimestamp, auditErr := d.Audit().GetCommitTimestamp(
		context.Background(),
	)
	if auditErr != nil {
		return fmt.Errorf(
			"failed to get audit timestamp from plugin: %w",
			auditErr,
		)
	}
	// Compare values
	if auditTimestamp != ledgerTimestamp {
		return CommitTimestampError{
			LedgerTimestamp: ledgerTimestamp,
			AuditTimestamp:  auditTimestamp,
		}
	}
	return nil
}
