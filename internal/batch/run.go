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

package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blinklabs-io/agora"
	"github.com/blinklabs-io/agora/event"
	"github.com/blinklabs-io/agora/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run opens the ledger, processes the configured request stream to
// completion or interruption, and shuts everything down. Reply envelopes
// go to stdout, which is why callers log to stderr.
func Run(cfg *config.Config, logger *slog.Logger) error {
	logger.Debug(fmt.Sprintf("config: %+v", cfg), "component", "batch")

	// Parse shutdown timeout
	shutdownTimeout := 30 * time.Second // Default timeout
	if cfg.ShutdownTimeout != "" {
		var err error
		shutdownTimeout, err = time.ParseDuration(cfg.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown timeout: %w", err)
		}
	}

	l, err := agora.New(
		agora.NewConfig(
			agora.WithLogger(logger),
			agora.WithDatabasePath(cfg.DatabasePath),
			agora.WithLedgerPlugin(cfg.LedgerPlugin),
			agora.WithAuditPlugin(cfg.AuditPlugin),
			agora.WithMaxConnections(cfg.MaxConnections),
			agora.WithShutdownTimeout(shutdownTimeout),
			agora.WithTracing(cfg.Tracing),
			agora.WithTracingStdout(cfg.TracingStdout),
			// Enable metrics with default prometheus registry
			agora.WithPrometheusRegistry(prometheus.DefaultRegisterer),
		),
	)
	if err != nil {
		return err
	}
	subscribeEventLogging(l.EventBus(), logger)

	// Metrics and debug listener
	var metricsServer *http.Server
	if cfg.MetricsPort > 0 {
		http.Handle("/metrics", promhttp.Handler())
		logger.Info(
			"serving prometheus metrics on "+fmt.Sprintf(
				"%s:%d",
				cfg.BindAddr,
				cfg.MetricsPort,
			),
			"component",
			"batch",
		)
		metricsServer = &http.Server{
			Addr: fmt.Sprintf(
				"%s:%d",
				cfg.BindAddr,
				cfg.MetricsPort,
			),
			ReadHeaderTimeout: 60 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil &&
				!errors.Is(err, http.ErrServerClosed) {
				logger.Error(
					fmt.Sprintf("failed to start metrics listener: %s", err),
					"component", "batch",
				)
				os.Exit(1)
			}
		}()
	}

	// Request stream source
	var in *os.File
	switch cfg.InputFile {
	case "", "-":
		in = os.Stdin
	default:
		in, err = os.Open(cfg.InputFile)
		if err != nil {
			stopErr := l.Stop()
			return errors.Join(
				fmt.Errorf("opening input file: %w", err),
				stopErr,
			)
		}
		defer in.Close() //nolint:errcheck
	}

	runner := NewRunner(l, os.Stdout, logger)

	// Wait for interrupt/termination signal
	signalCtx, signalCtxStop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer signalCtxStop()

	// Process the request stream in a goroutine
	errChan := make(chan error, 1)
	go func() {
		err := runner.Process(signalCtx, in)
		select {
		case errChan <- err:
		case <-signalCtx.Done():
		}
	}()

	// Wait for signal or completion
	select {
	case <-signalCtx.Done():
		logger.Info("signal received, initiating graceful shutdown")
		if err := shutdownMetrics(metricsServer, shutdownTimeout, logger); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}
		if err := l.Stop(); err != nil {
			logger.Error("shutdown errors occurred", "error", err)
			return err
		}
		logger.Info("shutdown complete")
		return nil

	case err := <-errChan:
		if err != nil {
			logger.Error("request stream error", "error", err)
		}
		signalCtxStop()
		if shutdownErr := shutdownMetrics(metricsServer, shutdownTimeout, logger); shutdownErr != nil {
			logger.Error("metrics server shutdown error", "error", shutdownErr)
		}
		if stopErr := l.Stop(); stopErr != nil {
			logger.Error("shutdown errors occurred", "error", stopErr)
			if err == nil {
				return stopErr
			}
		}
		return err
	}
}

func shutdownMetrics(
	server *http.Server,
	timeout time.Duration,
	logger *slog.Logger,
) error {
	if server == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		timeout,
	)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Debug("metrics server stopped", "component", "batch")
	return nil
}

// subscribeEventLogging attaches a debug log handler to every ledger event
// type
func subscribeEventLogging(bus *event.EventBus, logger *slog.Logger) {
	for _, eventType := range []event.EventType{
		event.MemberCreatedEventType,
		event.ProjectCreatedEventType,
		event.ActionRecordedEventType,
		event.VoteRecordedEventType,
	} {
		bus.SubscribeFunc(eventType, func(evt event.Event) {
			logger.Debug(
				"ledger event",
				"component", "batch",
				"type", string(evt.Type),
				"data", evt.Data,
			)
		})
	}
}
