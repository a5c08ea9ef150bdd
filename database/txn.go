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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blinklabs-io/agora/database/types"
)

// Txn is a wrapper around the ledger store transaction. The audit journal
// is not part of the transaction; records are appended after the ledger
// transaction settles.
type Txn struct {
	db        *Database
	ledgerTxn types.Txn
	lock      sync.Mutex
	finished  bool
	readWrite bool
}

func NewTxn(db *Database, readWrite bool) *Txn {
	t := &Txn{db: db, readWrite: readWrite}
	if ls := db.Ledger(); ls != nil {
		t.ledgerTxn = ls.Transaction()
		if t.ledgerTxn == nil {
			db.logger.Warn(
				"ledger transaction is nil; callers must nil-check txn.Ledger()",
			)
		}
	}
	return t
}

func (t *Txn) DB() *Database {
	return t.db
}

// Ledger returns the underlying ledger transaction handle
func (t *Txn) Ledger() types.Txn {
	return t.ledgerTxn
}

// Do executes the specified function in the context of the transaction. Any errors returned will result
// in the transaction being rolled back
func (t *Txn) Do(fn func(*Txn) error) error {
	if err := fn(t); err != nil {
		if err2 := t.Rollback(); err2 != nil {
			return fmt.Errorf(
				"rollback failed: %w: original error: %w",
				err2,
				err,
			)
		}
		return err
	}
	if err := t.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

func (t *Txn) Commit() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.finished {
		return nil
	}
	// Fail fast if the store is not available for a read-write transaction
	if t.readWrite && t.ledgerTxn == nil {
		t.finished = true
		return types.ErrNoStoreAvailable
	}
	// No need to commit for read-only, but we do want to free up resources
	if !t.readWrite {
		return t.rollback()
	}
	// Stamp the ledger with the commit timestamp inside the transaction
	commitTimestamp := time.Now().UnixMilli()
	if err := t.db.ledger.SetCommitTimestamp(commitTimestamp, t.ledgerTxn); err != nil {
		_ = t.ledgerTxn.Rollback()
		t.finished = true
		return fmt.Errorf("failed to update commit timestamp: %w", err)
	}
	if err := t.ledgerTxn.Commit(); err != nil {
		t.finished = true
		return fmt.Errorf("ledger commit failed: %w", err)
	}
	t.finished = true
	// Mirror the commit timestamp to the audit journal. A failure here is
	// reported as a commit timestamp mismatch at next startup.
	if as := t.db.Audit(); as != nil {
		if err := as.SetCommitTimestamp(
			context.Background(),
			commitTimestamp,
		); err != nil {
			t.db.logger.Warn(
				"failed to mirror commit timestamp to audit journal",
				"error", err,
			)
		}
	}
	return nil
}

func (t *Txn) Rollback() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.rollback()
}

func (t *Txn) rollback() error {
	if t.finished {
		return nil
	}
	var errs []error
	if t.ledgerTxn != nil {
		if err := t.ledgerTxn.Rollback(); err != nil {
			errs = append(errs, fmt.Errorf("ledger rollback: %w", err))
		}
	}
	t.finished = true
	return errors.Join(errs...)
}

// Release releases transaction resources. For read-only transactions, this
// releases locks and resources. For read-write transactions, this is equivalent
// to Rollback. Use this in defer statements for clean resource cleanup.
// Errors are logged but not returned, making this safe for deferred calls.
func (t *Txn) Release() {
	if err := t.Rollback(); err != nil {
		t.db.logger.Debug(
			"transaction release failed",
			"error", err,
			"read_write", t.readWrite,
		)
	}
}
