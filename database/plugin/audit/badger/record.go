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

package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/blinklabs-io/agora/database/plugin/audit"
	"github.com/blinklabs-io/agora/database/types"
)

const (
	// Record keys share the prefix used for scanning. The sequence counter
	// key sorts after the prefix ('_' > '/') and is never picked up by a
	// prefix scan
	recordKeyPrefix = "audit/"
	sequenceKey     = "audit_seq"
)

func recordKey(sequence uint64) []byte {
	return fmt.Appendf(nil, "%s%020d", recordKeyPrefix, sequence)
}

// nextSequence returns the next record sequence number within the given
// transaction. Sequences start at 1
func (d *AuditStoreBadger) nextSequence(txn types.Txn) (uint64, error) {
	val, err := d.Get(txn, []byte(sequenceKey))
	if err != nil {
		if errors.Is(err, types.ErrAuditKeyNotFound) {
			return 1, nil
		}
		return 0, err
	}
	return new(big.Int).SetBytes(val).Uint64() + 1, nil
}

// AppendRecord assigns the next sequence number to the given record and
// stores it
func (d *AuditStoreBadger) AppendRecord(
	ctx context.Context,
	record *audit.Record,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record == nil {
		return errors.New("nil audit record")
	}
	// Serialize appends so the sequence counter read-modify-write can't
	// conflict with itself
	d.appendMutex.Lock()
	defer d.appendMutex.Unlock()
	txn := d.NewTransaction(true)
	defer txn.Rollback() //nolint:errcheck
	seq, err := d.nextSequence(txn)
	if err != nil {
		return err
	}
	record.Sequence = seq
	recordBytes, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := d.Set(txn, recordKey(seq), recordBytes); err != nil {
		return err
	}
	tmpSeq := new(big.Int).SetUint64(seq)
	if err := d.Set(txn, []byte(sequenceKey), tmpSeq.Bytes()); err != nil {
		return err
	}
	if err := txn.Commit(); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	if d.metricRecords != nil {
		d.metricRecords.Inc()
	}
	return nil
}

// ScanRecords walks the journal in sequence order and calls fn for each
// record. Returning an error from fn stops the scan
func (d *AuditStoreBadger) ScanRecords(
	ctx context.Context,
	fn func(*audit.Record) error,
) error {
	txn := d.NewTransaction(false)
	defer txn.Rollback() //nolint:errcheck
	iter := d.NewIterator(
		txn,
		types.AuditIteratorOptions{Prefix: []byte(recordKeyPrefix)},
	)
	defer iter.Close()
	for iter.Rewind(); iter.ValidForPrefix([]byte(recordKeyPrefix)); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		val, err := iter.Item().ValueCopy(nil)
		if err != nil {
			return err
		}
		var record audit.Record
		if err := json.Unmarshal(val, &record); err != nil {
			return fmt.Errorf("decode audit record: %w", err)
		}
		if err := fn(&record); err != nil {
			return err
		}
	}
	return iter.Err()
}
