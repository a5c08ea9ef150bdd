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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/blinklabs-io/agora/database/plugin"
	"github.com/blinklabs-io/agora/internal/config"
	"github.com/blinklabs-io/agora/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

const (
	programName = "agora"
)

func slogPrintf(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...),
		"component", programName,
	)
}

var (
	globalFlags = struct {
		debug bool
	}{}
	configFile string
)

func commonRun() *slog.Logger {
	// Configure logger. Reply envelopes own stdout, so logs go to stderr.
	logLevel := slog.LevelInfo
	addSource := false
	if globalFlags.debug {
		logLevel = slog.LevelDebug
		addSource = true
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: addSource,
			Level:     logLevel,
		}),
	)
	slog.SetDefault(logger)
	// Configure max processes with our logger wrapper, toss undo func
	_, err := maxprocs.Set(maxprocs.Logger(slogPrintf))
	if err != nil {
		// If we hit this, something really wrong happened
		slog.Error(err.Error())
		os.Exit(1)
	}
	logger.Info(
		"version: "+version.GetVersionString(),
		"component", programName,
	)
	return logger
}

func listPlugins(
	ledgerPlugin, auditPlugin string,
) (shouldExit bool, output string) {
	var buf strings.Builder
	listed := false

	if ledgerPlugin == "list" {
		buf.WriteString("Available ledger plugins:\n")
		ledgerPlugins := plugin.GetPlugins(plugin.PluginTypeLedger)
		for _, p := range ledgerPlugins {
			buf.WriteString(fmt.Sprintf("  %s: %s\n", p.Name, p.Description))
		}
		listed = true
	}

	if auditPlugin == "list" {
		if listed {
			buf.WriteString("\n")
		}
		buf.WriteString("Available audit plugins:\n")
		auditPlugins := plugin.GetPlugins(plugin.PluginTypeAudit)
		for _, p := range auditPlugins {
			buf.WriteString(fmt.Sprintf("  %s: %s\n", p.Name, p.Description))
		}
		listed = true
	}

	if listed {
		return true, buf.String()
	}
	return false, ""
}

func listAllPlugins() string {
	var buf strings.Builder
	buf.WriteString("Available plugins:\n\n")

	buf.WriteString("Ledger Storage Plugins:\n")
	ledgerPlugins := plugin.GetPlugins(plugin.PluginTypeLedger)
	for _, p := range ledgerPlugins {
		buf.WriteString(fmt.Sprintf("  %s: %s\n", p.Name, p.Description))
	}

	buf.WriteString("\nAudit Journal Plugins:\n")
	auditPlugins := plugin.GetPlugins(plugin.PluginTypeAudit)
	for _, p := range auditPlugins {
		buf.WriteString(fmt.Sprintf("  %s: %s\n", p.Name, p.Description))
	}

	return buf.String()
}

func listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all available plugins",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(listAllPlugins())
		},
	}
	return cmd
}

func main() {
	rootCmd := &cobra.Command{
		Use: programName,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			runRun(cmd, args, cfg)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().
		StringP("ledger", "l", config.DefaultLedgerPlugin, "ledger store plugin to use, 'list' to show available")
	rootCmd.PersistentFlags().
		StringP("audit", "a", config.DefaultAuditPlugin, "audit journal plugin to use, 'list' to show available")

	// Add plugin-specific flags
	if err := plugin.PopulateCmdlineOptions(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding plugin flags: %v\n", err)
		os.Exit(1)
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Handle plugin listing before config loading
		ledgerPlugin, _ := cmd.Root().PersistentFlags().GetString("ledger")
		auditPlugin, _ := cmd.Root().PersistentFlags().GetString("audit")

		shouldExit, output := listPlugins(ledgerPlugin, auditPlugin)
		if shouldExit {
			fmt.Print(output)
			os.Exit(0)
		}

		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with command line flags
		if ledgerPlugin != config.DefaultLedgerPlugin {
			cfg.LedgerPlugin = ledgerPlugin
		}
		if auditPlugin != config.DefaultAuditPlugin {
			cfg.AuditPlugin = auditPlugin
		}

		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	}

	// Subcommands
	rootCmd.AddCommand(runCommand())
	rootCmd.AddCommand(auditCommand())
	rootCmd.AddCommand(encryptCommand())
	rootCmd.AddCommand(listCommand())
	rootCmd.AddCommand(versionCommand())

	// Execute cobra command
	if err := rootCmd.Execute(); err != nil {
		// NOTE: we purposely don't display the error, since cobra will have already displayed it
		os.Exit(1)
	}
}
