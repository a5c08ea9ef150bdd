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
	"errors"
	"io"
	"log/slog"

	"github.com/blinklabs-io/agora/database/plugin"
	"github.com/blinklabs-io/agora/database/plugin/audit"
	"github.com/blinklabs-io/agora/database/plugin/ledger"
	"github.com/prometheus/client_golang/prometheus"

	// Register plugin implementations
	_ "github.com/blinklabs-io/agora/database/plugin/audit/badger"
	_ "github.com/blinklabs-io/agora/database/plugin/audit/gcs"
	_ "github.com/blinklabs-io/agora/database/plugin/ledger/postgres"
	_ "github.com/blinklabs-io/agora/database/plugin/ledger/sqlite"
)

// Config describes the database configuration
type Config struct {
	Logger         *slog.Logger
	PromRegistry   prometheus.Registerer
	DataDir        string
	LedgerPlugin   string
	AuditPlugin    string
	MaxConnections int
}

type Database struct {
	logger              *slog.Logger
	promRegistry        prometheus.Registerer
	ledger              ledger.LedgerStore
	audit               audit.AuditStore
	metricAuditFailures prometheus.Counter
	dataDir             string
}

// Ledger returns the underlying ledger store instance
func (d *Database) Ledger() ledger.LedgerStore {
	return d.ledger
}

// Audit returns the underlying audit store instance
func (d *Database) Audit() audit.AuditStore {
	return d.audit
}

// DataDir returns the path to the data directory used for storage
func (d *Database) DataDir() string {
	return d.dataDir
}

// Logger returns the logger instance
func (d *Database) Logger() *slog.Logger {
	return d.logger
}

// Transaction starts a new database transaction and returns a handle to it
func (d *Database) Transaction(readWrite bool) *Txn {
	return NewTxn(d, readWrite)
}

// Close cleans up the database connections
func (d *Database) Close() error {
	var err error
	// Close ledger
	if d.ledger != nil {
		ledgerErr := d.ledger.Close()
		err = errors.Join(err, ledgerErr)
	}
	// Close audit
	if d.audit != nil {
		auditErr := d.audit.Close()
		err = errors.Join(err, auditErr)
	}
	return err
}

func (d *Database) init() error {
	if d.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		d.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	// Configure metrics
	if d.promRegistry != nil {
		d.registerMetrics()
	}
	// Check commit timestamp
	if err := d.checkCommitTimestamp(); err != nil {
		return err
	}
	return nil
}

// New creates a new database instance from the given config. Plugin
// selection falls back to sqlite for the ledger and badger for the audit
// journal. The data directory is handed to any plugin that stores locally;
// an empty data directory selects in-memory storage for those plugins.
func New(cfg *Config) (*Database, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	ledgerPlugin := cfg.LedgerPlugin
	if ledgerPlugin == "" {
		ledgerPlugin = "sqlite"
	}
	auditPlugin := cfg.AuditPlugin
	if auditPlugin == "" {
		auditPlugin = "badger"
	}
	// Plugins without a data-dir option ignore this
	if err := plugin.SetPluginOption(
		plugin.PluginTypeLedger,
		ledgerPlugin,
		"data-dir",
		cfg.DataDir,
	); err != nil {
		return nil, err
	}
	if err := plugin.SetPluginOption(
		plugin.PluginTypeAudit,
		auditPlugin,
		"data-dir",
		cfg.DataDir,
	); err != nil {
		return nil, err
	}
	ledgerDb, err := ledger.New(ledgerPlugin)
	if err != nil {
		return nil, err
	}
	auditDb, err := audit.New(auditPlugin)
	if err != nil {
		_ = ledgerDb.Close()
		return nil, err
	}
	if cfg.MaxConnections > 0 {
		sqlDb, err := ledgerDb.DB().DB()
		if err == nil {
			sqlDb.SetMaxOpenConns(cfg.MaxConnections)
		}
	}
	db := &Database{
		logger:       cfg.Logger,
		promRegistry: cfg.PromRegistry,
		ledger:       ledgerDb,
		audit:        auditDb,
		dataDir:      cfg.DataDir,
	}
	if err := db.init(); err != nil {
		// Database is available for recovery, so return it with error
		return db, err
	}
	return db, nil
}
