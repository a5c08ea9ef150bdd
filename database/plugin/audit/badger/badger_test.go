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
	"errors"
	"testing"

	"github.com/blinklabs-io/agora/database/plugin/audit"
	"github.com/blinklabs-io/agora/database/types"
)

func newTestStore(t *testing.T) *AuditStoreBadger {
	t.Helper()
	store, err := New(WithGc(false))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return store
}

func TestAppendScanRoundTrip(t *testing.T) {
	store := newTestStore(t)
	defer store.Close() //nolint:errcheck
	ctx := context.Background()

	records := []*audit.Record{
		{
			Operation: "leader",
			Status:    "OK",
			Timestamp: 1700000000,
			MemberID:  1,
		},
		{
			Operation: "support",
			Status:    "OK",
			Timestamp: 1700000060,
			MemberID:  2,
		},
		{
			Operation: "upvote",
			Status:    "ERROR",
			Error:     "action not found",
			Timestamp: 1700000120,
			MemberID:  2,
		},
	}
	for _, record := range records {
		if err := store.AppendRecord(ctx, record); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	var scanned []*audit.Record
	err := store.ScanRecords(ctx, func(r *audit.Record) error {
		scanned = append(scanned, r)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(scanned) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(scanned))
	}
	for i, r := range scanned {
		// Sequences are assigned in append order starting at 1
		if r.Sequence != uint64(i+1) { //nolint:gosec
			t.Errorf(
				"record %d: expected sequence %d, got %d",
				i,
				i+1,
				r.Sequence,
			)
		}
		if r.Operation != records[i].Operation {
			t.Errorf(
				"record %d: expected operation %s, got %s",
				i,
				records[i].Operation,
				r.Operation,
			)
		}
		if r.Status != records[i].Status {
			t.Errorf(
				"record %d: expected status %s, got %s",
				i,
				records[i].Status,
				r.Status,
			)
		}
		if r.Error != records[i].Error {
			t.Errorf(
				"record %d: expected error %q, got %q",
				i,
				records[i].Error,
				r.Error,
			)
		}
		if r.Timestamp != records[i].Timestamp {
			t.Errorf(
				"record %d: expected timestamp %d, got %d",
				i,
				records[i].Timestamp,
				r.Timestamp,
			)
		}
		if r.MemberID != records[i].MemberID {
			t.Errorf(
				"record %d: expected member %d, got %d",
				i,
				records[i].MemberID,
				r.MemberID,
			)
		}
	}
}

func TestSequencePersistsAcrossReopen(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()

	store, err := New(WithDataDir(dataDir), WithGc(false))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for range 2 {
		if err := store.AppendRecord(ctx, &audit.Record{Operation: "leader", Status: "OK"}); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	store, err = New(WithDataDir(dataDir), WithGc(false))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	defer store.Close() //nolint:errcheck
	if err := store.AppendRecord(ctx, &audit.Record{Operation: "protest", Status: "OK"}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	var sequences []uint64
	err = store.ScanRecords(ctx, func(r *audit.Record) error {
		sequences = append(sequences, r.Sequence)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(sequences) != 3 {
		t.Fatalf("expected 3 records, got %d", len(sequences))
	}
	for i, seq := range sequences {
		if seq != uint64(i+1) { //nolint:gosec
			t.Errorf("expected sequence %d, got %d", i+1, seq)
		}
	}
}

func TestScanStopsOnCallbackError(t *testing.T) {
	store := newTestStore(t)
	defer store.Close() //nolint:errcheck
	ctx := context.Background()

	for range 3 {
		if err := store.AppendRecord(ctx, &audit.Record{Operation: "upvote", Status: "OK"}); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	stopErr := errors.New("stop")
	var count int
	err := store.ScanRecords(ctx, func(r *audit.Record) error {
		count++
		return stopErr
	})
	if !errors.Is(err, stopErr) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if count != 1 {
		t.Fatalf("expected scan to stop after 1 record, got %d", count)
	}
}

func TestCommitTimestamp(t *testing.T) {
	store := newTestStore(t)
	defer store.Close() //nolint:errcheck
	ctx := context.Background()

	ts, err := store.GetCommitTimestamp(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if ts != 0 {
		t.Fatalf("expected zero timestamp before first set, got %d", ts)
	}
	if err := store.SetCommitTimestamp(ctx, 1234); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	ts, err = store.GetCommitTimestamp(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if ts != 1234 {
		t.Fatalf("expected timestamp 1234, got %d", ts)
	}
	if err := store.SetCommitTimestamp(ctx, 5678); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	ts, err = store.GetCommitTimestamp(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if ts != 5678 {
		t.Fatalf("expected timestamp 5678, got %d", ts)
	}
}

func TestAppendWithCanceledContext(t *testing.T) {
	store := newTestStore(t)
	defer store.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := store.AppendRecord(ctx, &audit.Record{Operation: "leader", Status: "OK"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// Nothing should have been written
	var count int
	err = store.ScanRecords(context.Background(), func(r *audit.Record) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if count != 0 {
		t.Fatalf("expected no records, got %d", count)
	}
}

func TestTransactionValidation(t *testing.T) {
	store := newTestStore(t)
	defer store.Close() //nolint:errcheck

	t.Run("nil transaction", func(t *testing.T) {
		_, err := store.Get(nil, []byte("some-key"))
		if !errors.Is(err, types.ErrNilTxn) {
			t.Fatalf("expected ErrNilTxn, got %v", err)
		}
	})

	t.Run("transaction from different store", func(t *testing.T) {
		other := newTestStore(t)
		defer other.Close() //nolint:errcheck
		txn := other.NewTransaction(false)
		defer txn.Rollback() //nolint:errcheck
		_, err := store.Get(txn, []byte("some-key"))
		if err == nil {
			t.Fatal("expected error for foreign transaction")
		}
	})

	t.Run("finished transaction", func(t *testing.T) {
		txn := store.NewTransaction(true)
		if err := txn.Commit(); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		err := store.Set(txn, []byte("some-key"), []byte("some-value"))
		if err == nil {
			t.Fatal("expected error for finished transaction")
		}
	})

	t.Run("missing key", func(t *testing.T) {
		txn := store.NewTransaction(false)
		defer txn.Rollback() //nolint:errcheck
		_, err := store.Get(txn, []byte("no-such-key"))
		if !errors.Is(err, types.ErrAuditKeyNotFound) {
			t.Fatalf("expected ErrAuditKeyNotFound, got %v", err)
		}
	})
}

func TestIteratorOnInvalidTransaction(t *testing.T) {
	store := newTestStore(t)
	defer store.Close() //nolint:errcheck

	iter := store.NewIterator(nil, types.AuditIteratorOptions{})
	defer iter.Close()
	if iter.Valid() {
		t.Fatal("expected invalid iterator")
	}
	if iter.Err() == nil {
		t.Fatal("expected iterator error")
	}
}
