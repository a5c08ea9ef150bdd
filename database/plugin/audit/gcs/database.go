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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/api/option"
)

// AuditStoreGCS stores the audit journal in a Google Cloud Storage bucket.
type AuditStoreGCS struct {
	promRegistry    prometheus.Registerer
	startupCtx      context.Context
	logger          *GcsLogger
	client          *storage.Client
	bucket          *storage.BucketHandle
	startupCancel   context.CancelFunc
	metricRecords   prometheus.Counter
	bucketName      string
	credentialsFile string
	appendMutex     sync.Mutex
}

// New creates a new GCS-backed audit store.
func New(
	dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (*AuditStoreGCS, error) {
	const prefix = "gcs://"
	var bucketName string
	if after, ok := strings.CutPrefix(dataDir, prefix); ok {
		bucketName = after
	}
	if bucketName == "" {
		return nil, errors.New(
			"gcs audit: bucket not set (expected dataDir='gcs://<bucket>')",
		)
	}

	return NewWithOptions(
		WithBucket(bucketName),
		WithLogger(logger),
		WithPromRegistry(promRegistry),
	)
}

// NewWithOptions creates a new GCS-backed audit store using options.
func NewWithOptions(opts ...AuditStoreGCSOptionFunc) (*AuditStoreGCS, error) {
	db := &AuditStoreGCS{}

	// Apply options
	for _, opt := range opts {
		opt(db)
	}

	// Set defaults
	if db.logger == nil {
		db.logger = NewGcsLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	}

	return db, nil
}

func (d *AuditStoreGCS) init() error {
	// Configure metrics
	if d.promRegistry != nil {
		d.registerAuditMetrics()
	}

	// Close the startup context so that initialization will succeed.
	if d.startupCancel != nil {
		d.startupCancel()
		d.startupCancel = nil
	}
	d.startupCtx = context.Background()
	return nil
}

// Close closes the GCS client.
func (d *AuditStoreGCS) Close() error {
	if d.client == nil {
		return nil
	}
	err := d.client.Close()
	d.client = nil
	return err
}

// Returns the GCS client.
func (d *AuditStoreGCS) Client() *storage.Client {
	return d.client
}

// Returns the bucket handle.
func (d *AuditStoreGCS) Bucket() *storage.BucketHandle {
	return d.bucket
}

// ValidateCredentials checks that the given credentials file exists. An
// empty path is allowed and defers to ambient credentials.
func ValidateCredentials(credentialsFile string) error {
	if credentialsFile == "" {
		return nil
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf(
				"GCS credentials file does not exist: %s",
				credentialsFile,
			)
		}
		return fmt.Errorf("failed to read GCS credentials file: %w", err)
	}
	return nil
}

// Start implements the plugin.Plugin interface.
func (d *AuditStoreGCS) Start() error {
	// Validate required fields
	if d.bucketName == "" {
		return errors.New("gcs audit: bucket not set")
	}

	// Validate credentials file if specified
	if d.credentialsFile != "" {
		if err := ValidateCredentials(d.credentialsFile); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	var clientOpts []option.ClientOption
	clientOpts = append(clientOpts, storage.WithDisabledClientMetrics())
	if d.credentialsFile != "" {
		clientOpts = append(
			clientOpts,
			option.WithCredentialsFile(d.credentialsFile),
		)
	}

	client, err := storage.NewGRPCClient(
		ctx,
		clientOpts...,
	)
	if err != nil {
		cancel()
		return fmt.Errorf(
			"gcs audit: failed in creating storage client: %w",
			err,
		)
	}

	d.client = client
	d.bucket = client.Bucket(d.bucketName)
	d.startupCtx = ctx
	d.startupCancel = cancel

	if err := d.init(); err != nil {
		// Clean up resources on init failure
		d.Close()
		return err
	}
	return nil
}

// Stop implements the plugin.Plugin interface.
func (d *AuditStoreGCS) Stop() error {
	return d.Close()
}
