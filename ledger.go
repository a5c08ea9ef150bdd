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

package agora

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/plugin/audit"
	"github.com/blinklabs-io/agora/event"
)

// Ledger is the policy layer over the persistent store: it provisions
// members, resolves projects, records actions and votes, and serves the
// aggregate listings. Operations are driven by the caller; the ledger holds
// no request state between calls.
type Ledger struct {
	db            *database.Database
	eventBus      *event.EventBus
	metrics       ledgerMetrics
	shutdownFuncs []func(context.Context) error
	config        Config
	shutdownOnce  sync.Once
}

// New creates a Ledger and performs the full startup sequence: tracing,
// database open, and commit timestamp recovery. The returned ledger is
// ready to serve operations; call Stop to shut it down.
func New(cfg Config) (*Ledger, error) {
	l := &Ledger{
		config:   cfg,
		eventBus: event.NewEventBus(cfg.promRegistry, cfg.logger),
	}
	l.metrics.init(cfg.promRegistry)
	// Configure tracing
	if cfg.tracing {
		if err := l.setupTracing(); err != nil {
			return nil, err
		}
	}
	// Load database
	dbConfig := &database.Config{
		DataDir:        cfg.dataDir,
		Logger:         cfg.logger,
		PromRegistry:   cfg.promRegistry,
		LedgerPlugin:   cfg.ledgerPlugin,
		AuditPlugin:    cfg.auditPlugin,
		MaxConnections: cfg.maxConnections,
	}
	db, err := database.New(dbConfig)
	if db == nil {
		l.config.logger.Error(
			"failed to create database",
			"error",
			"empty database returned",
		)
		return nil, errors.New("empty database returned")
	}
	l.db = db
	if err != nil {
		var dbErr database.CommitTimestampError
		if !errors.As(err, &dbErr) {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		l.config.logger.Warn(
			"database initialization error, needs recovery",
			"error",
			err,
		)
		if err := l.recoverCommitTimestamp(dbErr); err != nil {
			return nil, fmt.Errorf("failed to recover database: %w", err)
		}
	}
	return l, nil
}

// recoverCommitTimestamp resyncs the audit journal's commit timestamp with
// the ledger store's after a startup mismatch. The ledger store is
// authoritative; the journal only mirrors the timestamp so mismatches can
// be detected at the next startup.
func (l *Ledger) recoverCommitTimestamp(
	dbErr database.CommitTimestampError,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := l.db.Audit().SetCommitTimestamp(ctx, dbErr.LedgerTimestamp); err != nil {
		return err
	}
	l.config.logger.Info(
		"audit journal commit timestamp resynced",
		"ledger_timestamp",
		dbErr.LedgerTimestamp,
		"audit_timestamp",
		dbErr.AuditTimestamp,
	)
	return nil
}

// Database returns the underlying database facade
func (l *Ledger) Database() *database.Database {
	return l.db
}

// EventBus returns the ledger's event bus for subscribing to operation
// events
func (l *Ledger) EventBus() *event.EventBus {
	return l.eventBus
}

func (l *Ledger) Stop() error {
	var err error
	l.shutdownOnce.Do(func() {
		err = l.shutdown()
	})
	return err
}

func (l *Ledger) shutdown() error {
	// Create shutdown context with timeout (default 30s if not configured)
	shutdownTimeout := 30 * time.Second
	if l.config.shutdownTimeout > 0 {
		shutdownTimeout = l.config.shutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error

	l.config.logger.Debug("starting graceful shutdown")

	// Flush state and close the database
	if l.db != nil {
		if closeErr := l.db.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("database close: %w", closeErr))
		}
	}

	// Call registered shutdown functions
	for _, fn := range l.shutdownFuncs {
		if fnErr := fn(ctx); fnErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown function: %w", fnErr))
		}
	}
	l.shutdownFuncs = nil

	if l.eventBus != nil {
		l.eventBus.Close()
	}

	l.config.logger.Debug("graceful shutdown complete")
	return err
}

// observeOperation records one operation outcome in metrics, the audit
// journal, and the debug log. A memberID of 0 marks operations with no
// authenticated subject.
func (l *Ledger) observeOperation(
	ctx context.Context,
	operation string,
	memberID int64,
	start time.Time,
	err error,
) {
	status := StatusOK
	if err != nil {
		status = StatusError
		l.config.logger.Debug(
			"operation failed",
			"component", "ledger",
			"operation", operation,
			"error", err,
		)
	}
	l.metrics.operationsTotal.WithLabelValues(operation, status).Inc()
	l.metrics.operationDuration.WithLabelValues(operation).
		Observe(time.Since(start).Seconds())
	record := &audit.Record{
		Operation: operation,
		Status:    status,
		MemberID:  memberID,
	}
	if err != nil {
		record.Error = errorClass(err)
	}
	l.db.RecordAudit(ctx, record)
}
