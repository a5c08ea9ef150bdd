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
	"io"
	"math/big"

	"cloud.google.com/go/storage"
	agorasops "github.com/blinklabs-io/agora/database/sops"
)

const commitTimestampAuditKey = "ledger_commit_timestamp"

func (d *AuditStoreGCS) GetCommitTimestamp(ctx context.Context) (int64, error) {
	r, err := d.bucket.Object(commitTimestampAuditKey).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			// It's not an error if the timestamp hasn't been stored yet
			return 0, nil
		}
		d.logger.Errorf("failed to read commit timestamp: %v", err)
		return 0, err
	}
	defer r.Close()

	ciphertext, err := io.ReadAll(r)
	if err != nil {
		d.logger.Errorf("failed to read commit timestamp object: %v", err)
		return 0, err
	}

	plaintext, err := agorasops.Decrypt(ciphertext)
	if err != nil {
		if !json.Valid(ciphertext) && len(ciphertext) <= 8 {
			ts := new(big.Int).SetBytes(ciphertext).Int64()
			d.logger.Warningf(
				"commit timestamp stored plaintext in GCS, migrating to SOPS encryption: %v",
				err,
			)
			if migrateErr := d.SetCommitTimestamp(ctx, ts); migrateErr != nil {
				d.logger.Errorf(
					"failed to migrate plaintext commit timestamp: %v",
					migrateErr,
				)
			}
			return ts, nil
		}
		d.logger.Errorf("failed to decrypt commit timestamp: %v", err)
		return 0, err
	}

	return new(big.Int).SetBytes(plaintext).Int64(), nil
}

func (d *AuditStoreGCS) SetCommitTimestamp(
	ctx context.Context,
	timestamp int64,
) error {
	raw := new(big.Int).SetInt64(timestamp).Bytes()

	ciphertext, err := agorasops.Encrypt(raw)
	if err != nil {
		d.logger.Errorf("failed to encrypt commit timestamp: %v", err)
		return err
	}

	w := d.bucket.Object(commitTimestampAuditKey).NewWriter(ctx)
	if _, err := w.Write(ciphertext); err != nil {
		_ = w.Close()
		d.logger.Errorf("failed to write commit timestamp: %v", err)
		return err
	}
	if err := w.Close(); err != nil {
		d.logger.Errorf("failed to close writer: %v", err)
		return err
	}
	d.logger.Infof("commit timestamp %d written to GCS", timestamp)
	return nil
}
