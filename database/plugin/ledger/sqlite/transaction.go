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
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language
// governing permissions and limitations under the License.

package sqlite

import (
	"github.com/blinklabs-io/agora/database/types"
	"gorm.io/gorm"
)

// sqliteTxn wraps a gorm transaction and implements types.Txn
type sqliteTxn struct {
	db       *gorm.DB
	finished bool
	beginErr error
}

func newSqliteTxn(db *gorm.DB) *sqliteTxn {
	return &sqliteTxn{db: db}
}

func newFailedSqliteTxn(err error) *sqliteTxn {
	return &sqliteTxn{beginErr: err}
}

func (t *sqliteTxn) Commit() error {
	if t.beginErr != nil {
		return t.beginErr
	}
	if t.finished {
		return nil
	}
	if t.db == nil {
		t.finished = true
		return nil
	}
	if result := t.db.Commit(); result.Error != nil {
		return result.Error
	}
	t.finished = true
	return nil
}

func (t *sqliteTxn) Rollback() error {
	if t.beginErr != nil {
		return t.beginErr
	}
	if t.finished {
		return nil
	}
	if t.db != nil {
		if result := t.db.Rollback(); result.Error != nil {
			return result.Error
		}
	}
	t.finished = true
	return nil
}

// dbFromTxn returns d.DB() only when txn is nil, unwraps known *sqliteTxn or provider.LedgerTxn() when available, and returns nil for unrecognized txn types so callers can detect errors
func (d *LedgerStoreSqlite) dbFromTxn(txn types.Txn) *gorm.DB {
	if txn == nil {
		return d.DB()
	}
	if stx, ok := txn.(*sqliteTxn); ok && stx != nil {
		return stx.db
	}
	if provider, ok := txn.(interface{ LedgerTxn() *gorm.DB }); ok {
		if db := provider.LedgerTxn(); db != nil {
			return db
		}
	}
	return nil // Return nil for unrecognized txn types to allow callers to detect errors
}

// resolveDB returns the *gorm.DB for the given transaction, or d.DB() if txn is nil.
// Returns nil, ErrTxnWrongType if txn is non-nil but not the expected type.
func (d *LedgerStoreSqlite) resolveDB(txn types.Txn) (*gorm.DB, error) {
	if stx, ok := txn.(*sqliteTxn); ok {
		if stx != nil && stx.beginErr != nil {
			return nil, stx.beginErr
		}
	}
	if txn == nil {
		return d.DB(), nil
	}
	db := d.dbFromTxn(txn)
	if db == nil {
		return nil, types.ErrTxnWrongType
	}
	return db, nil
}

// Transaction creates a gorm transaction
func (d *LedgerStoreSqlite) Transaction() types.Txn {
	db := d.DB().Begin()
	if db.Error != nil {
		d.logger.Error(
			"failed to begin transaction",
			"error", db.Error,
		)
		return newFailedSqliteTxn(db.Error)
	}
	return newSqliteTxn(db)
}

// BeginTxn starts a transaction and returns the handle with an error.
// Callers that prefer explicit error handling can use this instead of Transaction().
func (d *LedgerStoreSqlite) BeginTxn() (types.Txn, error) {
	db := d.DB().Begin()
	if db.Error != nil {
		d.logger.Error(
			"failed to begin transaction",
			"error", db.Error,
		)
		return nil, db.Error
	}
	return newSqliteTxn(db), nil
}
