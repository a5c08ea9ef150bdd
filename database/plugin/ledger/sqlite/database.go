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

package sqlite

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// LedgerStoreSqlite is a SQLite-based implementation of the ledger store.
// It provides persistent storage for members, projects, actions, and votes.
type LedgerStoreSqlite struct {
	promRegistry prometheus.Registerer
	db           *gorm.DB
	logger       *slog.Logger
	timerVacuum  *time.Timer
	timerMutex   sync.Mutex
	dataDir      string
	closed       bool
	vacuumWG     sync.WaitGroup
}

// New creates a SQLite ledger store and opens it immediately. Uses an
// in-memory database if dataDir is empty.
func New(
	dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (*LedgerStoreSqlite, error) {
	db := &LedgerStoreSqlite{
		dataDir:      dataDir,
		logger:       logger,
		promRegistry: promRegistry,
	}
	if err := db.open(); err != nil {
		// LedgerStoreSqlite is available for recovery, so return it with error
		return db, err
	}
	return db, nil
}

// NewWithOptions creates a SQLite ledger store with options. The database
// is not opened until Start()
func NewWithOptions(opts ...SqliteOptionFunc) (*LedgerStoreSqlite, error) {
	db := &LedgerStoreSqlite{}

	// Apply options
	for _, opt := range opts {
		opt(db)
	}

	return db, nil
}

func (d *LedgerStoreSqlite) open() error {
	var ledgerDb *gorm.DB
	var err error
	if d.dataDir == "" {
		// Use in-memory database when no data directory is specified, useful for testing
		// cache=shared allows multiple connections to share the same in-memory database
		ledgerDb, err = gorm.Open(
			sqlite.Open("file::memory:?cache=shared"),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return err
		}
	} else {
		// Make sure that we can read data dir, and create if it doesn't exist
		if _, err := os.Stat(d.dataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to read data dir: %w", err)
			}
			// Create data directory
			if err := os.MkdirAll(d.dataDir, fs.ModePerm); err != nil {
				return fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		// Open sqlite DB
		ledgerDbPath := filepath.Join(
			d.dataDir,
			"ledger.sqlite",
		)
		// WAL journal mode, disable sync on write, increase cache size to 50MB (from 2MB)
		ledgerConnOpts := "_pragma=journal_mode(WAL)&_pragma=sync(OFF)&_pragma=cache_size(-50000)"
		ledgerDb, err = gorm.Open(
			sqlite.Open(
				fmt.Sprintf("file:%s?%s", ledgerDbPath, ledgerConnOpts),
			),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return err
		}
	}
	d.db = ledgerDb
	if err := d.init(); err != nil {
		return err
	}
	// Create table schemas
	d.logger.Debug(fmt.Sprintf("creating table: %#v", &CommitTimestamp{}))
	if err := d.db.AutoMigrate(&CommitTimestamp{}); err != nil {
		return err
	}
	for _, model := range models.MigrateModels {
		d.logger.Debug(fmt.Sprintf("creating table: %#v", model))
		if err := d.db.AutoMigrate(model); err != nil {
			return err
		}
	}
	return nil
}

func (d *LedgerStoreSqlite) init() error {
	if d.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		d.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	// Configure tracing for GORM
	if err := d.db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return err
	}
	// Schedule daily database vacuum to free unused space
	d.scheduleDailyVacuum()
	return nil
}

// Start implements the plugin.Plugin interface
func (d *LedgerStoreSqlite) Start() error {
	if d.db != nil {
		// Already opened by New
		return nil
	}
	return d.open()
}

// Stop implements the plugin.Plugin interface
func (d *LedgerStoreSqlite) Stop() error {
	return d.Close()
}

func (d *LedgerStoreSqlite) runVacuum() error {
	d.timerMutex.Lock()
	if d.dataDir == "" || d.closed {
		d.timerMutex.Unlock()
		return nil
	}
	// Track this vacuum operation while we know the store is open
	d.vacuumWG.Add(1)
	d.timerMutex.Unlock()
	defer d.vacuumWG.Done()

	if result := d.DB().Raw("VACUUM"); result.Error != nil {
		return result.Error
	}
	return nil
}

// scheduleDailyVacuum schedules a daily vacuum operation
func (d *LedgerStoreSqlite) scheduleDailyVacuum() {
	d.timerMutex.Lock()
	defer d.timerMutex.Unlock()
	if d.closed {
		return
	}

	if d.timerVacuum != nil {
		d.timerVacuum.Stop()
	}
	daily := time.Duration(24) * time.Hour
	f := func() {
		d.logger.Debug(
			"running vacuum on sqlite ledger database",
		)
		// schedule next run
		defer d.scheduleDailyVacuum()
		if err := d.runVacuum(); err != nil {
			d.logger.Error(
				"failed to free unused space in ledger store",
				"component", "database",
			)
		}
	}
	d.timerVacuum = time.AfterFunc(daily, f)
}

// AutoMigrate creates or updates database schema for the given models.
func (d *LedgerStoreSqlite) AutoMigrate(dst ...any) error {
	return d.DB().AutoMigrate(dst...)
}

// Close shuts down the database connection and stops background processes.
func (d *LedgerStoreSqlite) Close() error {
	d.timerMutex.Lock()
	d.closed = true
	if d.timerVacuum != nil {
		d.timerVacuum.Stop()
		d.timerVacuum = nil
	}
	d.timerMutex.Unlock()

	// Wait for any in-flight vacuum operations to complete
	d.vacuumWG.Wait()

	// Guard against nil DB handle (e.g., if Start() failed or was never called)
	if d.db == nil {
		return nil
	}
	// get DB handle from gorm.DB
	db, err := d.DB().DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	return db.Close()
}

// Create inserts a new record into the database.
func (d *LedgerStoreSqlite) Create(value any) *gorm.DB {
	return d.DB().Create(value)
}

// DB returns the underlying GORM database handle.
func (d *LedgerStoreSqlite) DB() *gorm.DB {
	return d.db
}

// First retrieves the first record that matches the query.
func (d *LedgerStoreSqlite) First(args any) *gorm.DB {
	return d.DB().First(args)
}

// Order adds ORDER BY clause to the database query.
func (d *LedgerStoreSqlite) Order(args any) *gorm.DB {
	return d.DB().Order(args)
}

// Where adds WHERE conditions to the database query.
func (d *LedgerStoreSqlite) Where(
	query any,
	args ...any,
) *gorm.DB {
	return d.DB().Where(query, args...)
}
