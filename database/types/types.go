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
	"errors"
)

// ErrAuditKeyNotFound is returned by audit journal operations when a key is missing
var ErrAuditKeyNotFound = errors.New("audit key not found")

// ErrTxnWrongType is returned when a transaction has the wrong type
var ErrTxnWrongType = errors.New("invalid transaction type")

// ErrNilTxn is returned when a nil transaction is provided where a valid transaction is required
var ErrNilTxn = errors.New("nil transaction")

// ErrNoStoreAvailable is returned when no ledger or audit store is available
var ErrNoStoreAvailable = errors.New("no store available")

// ErrAuditStoreUnavailable is returned when the audit journal cannot be accessed
var ErrAuditStoreUnavailable = errors.New("audit store unavailable")

// AuditItem represents a value returned by an iterator
type AuditItem interface {
	Key() []byte
	ValueCopy(dst []byte) ([]byte, error)
}

// AuditIterator provides key iteration over the audit journal.
//
// Important lifecycle constraint: items returned by `Item()` must only be
// accessed while the underlying transaction used to create the iterator is
// still active. Implementations may validate transaction state at access
// time (for example `ValueCopy` may fail if the transaction has been committed
// or rolled back). Typical usage iterates and accesses item values within the
// same transaction scope.
type AuditIterator interface {
	Rewind()
	Seek(prefix []byte)
	Valid() bool
	ValidForPrefix(prefix []byte) bool
	Next()
	Item() AuditItem
	Close()
	Err() error
}

// AuditIteratorOptions configures audit iterator creation
type AuditIteratorOptions struct {
	Prefix  []byte
	Reverse bool
}

// Txn is a simple transaction handle for commit/rollback only.
// The database layer coordinates ledger and audit operations separately.
type Txn interface {
	Commit() error
	Rollback() error
}
