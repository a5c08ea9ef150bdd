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

package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"

	"cloud.google.com/go/storage"
	"github.com/blinklabs-io/agora/database/plugin/audit"
	"google.golang.org/api/iterator"
)

const (
	// Record objects share the prefix used for listing. The sequence
	// pointer object sorts after the prefix ('_' > '/') and is never
	// picked up by a prefix listing
	recordObjectPrefix = "audit/"
	sequenceObjectKey  = "audit_sequence"
)

func recordObjectName(sequence uint64) string {
	// Zero-padded sequence numbers make lexical listing order match
	// append order
	return fmt.Sprintf("%s%020d", recordObjectPrefix, sequence)
}

// nextSequence returns the next record sequence number. Sequences start
// at 1
func (d *AuditStoreGCS) nextSequence(ctx context.Context) (uint64, error) {
	r, err := d.bucket.Object(sequenceObjectKey).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return 1, nil
		}
		d.logger.Errorf("failed to read audit sequence: %v", err)
		return 0, err
	}
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		d.logger.Errorf("failed to read audit sequence object: %v", err)
		return 0, err
	}
	return new(big.Int).SetBytes(raw).Uint64() + 1, nil
}

func (d *AuditStoreGCS) setSequence(ctx context.Context, sequence uint64) error {
	raw := new(big.Int).SetUint64(sequence).Bytes()
	w := d.bucket.Object(sequenceObjectKey).NewWriter(ctx)
	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		d.logger.Errorf("failed to write audit sequence: %v", err)
		return err
	}
	if err := w.Close(); err != nil {
		d.logger.Errorf("failed to close writer: %v", err)
		return err
	}
	return nil
}

// AppendRecord assigns the next sequence number to the given record and
// stores it as a bucket object.
func (d *AuditStoreGCS) AppendRecord(
	ctx context.Context,
	record *audit.Record,
) error {
	if record == nil {
		return errors.New("nil audit record")
	}
	// Serialize appends so the sequence pointer read-modify-write stays
	// consistent within this process
	d.appendMutex.Lock()
	defer d.appendMutex.Unlock()
	seq, err := d.nextSequence(ctx)
	if err != nil {
		return err
	}
	record.Sequence = seq
	recordBytes, err := json.Marshal(record)
	if err != nil {
		return err
	}
	w := d.bucket.Object(recordObjectName(seq)).NewWriter(ctx)
	if _, err := w.Write(recordBytes); err != nil {
		_ = w.Close()
		d.logger.Errorf("failed to write audit record: %v", err)
		return err
	}
	if err := w.Close(); err != nil {
		d.logger.Errorf("failed to close writer: %v", err)
		return err
	}
	if err := d.setSequence(ctx, seq); err != nil {
		return err
	}
	if d.metricRecords != nil {
		d.metricRecords.Inc()
	}
	return nil
}

// ScanRecords walks the journal in sequence order and calls fn for each
// record. Returning an error from fn stops the scan.
func (d *AuditStoreGCS) ScanRecords(
	ctx context.Context,
	fn func(*audit.Record) error,
) error {
	it := d.bucket.Objects(ctx, &storage.Query{Prefix: recordObjectPrefix})
	for {
		attrs, err := it.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				return nil
			}
			d.logger.Errorf("failed to list audit records: %v", err)
			return err
		}
		r, err := d.bucket.Object(attrs.Name).NewReader(ctx)
		if err != nil {
			d.logger.Errorf(
				"failed to read audit record %s: %v",
				attrs.Name,
				err,
			)
			return err
		}
		raw, err := io.ReadAll(r)
		if closeErr := r.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			d.logger.Errorf(
				"failed to read audit record %s: %v",
				attrs.Name,
				err,
			)
			return err
		}
		var record audit.Record
		if err := json.Unmarshal(raw, &record); err != nil {
			return fmt.Errorf("decode audit record: %w", err)
		}
		if err := fn(&record); err != nil {
			return err
		}
	}
}
