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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/plugin/audit"
	"github.com/blinklabs-io/agora/internal/config"
	"github.com/spf13/cobra"
)

func auditRun(ctx context.Context, cfg *config.Config) {
	logger := commonRun()

	if err := dumpAuditJournal(ctx, cfg, logger); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// dumpAuditJournal walks the audit journal and writes each record to
// stdout as a JSON line
func dumpAuditJournal(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) error {
	db, err := database.New(&database.Config{
		DataDir:        cfg.DatabasePath,
		Logger:         logger,
		LedgerPlugin:   cfg.LedgerPlugin,
		AuditPlugin:    cfg.AuditPlugin,
		MaxConnections: 1,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	enc := json.NewEncoder(os.Stdout)
	if err := db.ScanAuditRecords(
		ctx,
		func(record *audit.Record) error {
			return enc.Encode(record)
		},
	); err != nil {
		return fmt.Errorf("scanning audit journal: %w", err)
	}
	return nil
}

func auditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Dump the audit journal as JSON lines",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			auditRun(cmd.Context(), cfg)
		},
	}
	return cmd
}
