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
	"math/big"

	"github.com/blinklabs-io/agora/database/types"
)

const (
	commitTimestampAuditKey = "ledger_commit_timestamp"
)

func (d *AuditStoreBadger) GetCommitTimestamp(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	txn := d.NewTransaction(false)
	defer txn.Rollback() //nolint:errcheck

	val, err := d.Get(txn, []byte(commitTimestampAuditKey))
	if err != nil {
		if errors.Is(err, types.ErrAuditKeyNotFound) {
			// It's not an error if the timestamp hasn't been stored yet
			return 0, nil
		}
		return 0, err
	}
	return new(big.Int).SetBytes(val).Int64(), nil
}

func (d *AuditStoreBadger) SetCommitTimestamp(
	ctx context.Context,
	timestamp int64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txn := d.NewTransaction(true)
	defer txn.Rollback() //nolint:errcheck
	tmpTimestamp := new(big.Int).SetInt64(timestamp)
	if err := d.Set(txn, []byte(commitTimestampAuditKey), tmpTimestamp.Bytes()); err != nil {
		return err
	}
	return txn.Commit()
}
