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

// Package service wires together the database, explorer, and API server
// and runs them until a termination signal.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof" // #nosec G108
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hyperware-ai/hypermap-explorer/api"
	"github.com/hyperware-ai/hypermap-explorer/database"
	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/postgres"
	"github.com/hyperware-ai/hypermap-explorer/explorer"
	"github.com/hyperware-ai/hypermap-explorer/internal/config"
)

func Run(cfg *config.Config, logger *slog.Logger) error {
	logger.Debug(
		fmt.Sprintf("config: %+v", cfg),
		"component", "service",
	)

	// Parse shutdown timeout
	shutdownTimeout := 30 * time.Second
	if cfg.ShutdownTimeout != "" {
		var err error
		shutdownTimeout, err = time.ParseDuration(cfg.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown timeout: %w", err)
		}
	}

	// Configure tracing
	var tracingShutdown func(context.Context) error
	if cfg.Tracing {
		var err error
		tracingShutdown, err = setupTracing(
			context.Background(),
			cfg.TracingStdout,
		)
		if err != nil {
			return fmt.Errorf("failed to setup tracing: %w", err)
		}
	}

	var pgOpts []postgres.PostgresOptionFunc
	if cfg.MetadataPlugin == "postgres" {
		if cfg.DatabaseUrl != "" {
			pgOpts = append(
				pgOpts,
				postgres.WithDSN(cfg.DatabaseUrl),
			)
		} else {
			pgOpts = append(
				pgOpts,
				postgres.WithHost(cfg.PostgresHost),
				postgres.WithPort(cfg.PostgresPort),
				postgres.WithUser(cfg.PostgresUser),
				postgres.WithPassword(cfg.PostgresPassword),
				postgres.WithDatabase(cfg.PostgresDatabase),
				postgres.WithSSLMode(cfg.PostgresSSLMode),
				postgres.WithTimeZone(cfg.PostgresTimeZone),
			)
		}
	}

	db, err := database.New(&database.Config{
		Logger:         logger,
		PromRegistry:   prometheus.DefaultRegisterer,
		DataDir:        cfg.DatabasePath,
		MetadataPlugin: cfg.MetadataPlugin,
		PostgresOpts:   pgOpts,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	exp := explorer.New(
		db.Metadata(),
		logger,
		explorer.Config{
			SearchLimit:       cfg.SearchLimit,
			PageSize:          cfg.ProviderPageSize,
			ProviderNamespace: cfg.ProviderNamespace,
			ProviderNoteLabel: cfg.ProviderNoteLabel,
		},
	)

	apiServer := api.New(
		api.ApiConfig{
			ListenAddress: fmt.Sprintf(
				"%s:%d",
				cfg.BindAddr,
				cfg.ApiPort,
			),
		},
		exp,
		logger,
	)

	// Metrics and debug listener
	http.Handle("/metrics", promhttp.Handler())
	logger.Info(
		"serving prometheus metrics on "+fmt.Sprintf(
			"%s:%d",
			cfg.BindAddr,
			cfg.MetricsPort,
		),
		"component", "service",
	)
	metricsServer := &http.Server{
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
			err != http.ErrServerClosed {
			logger.Error(
				fmt.Sprintf(
					"failed to start metrics listener: %s",
					err,
				),
				"component", "service",
			)
			os.Exit(1)
		}
	}()

	// Wait for interrupt/termination signal
	signalCtx, signalCtxStop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer signalCtxStop()

	if err := apiServer.Start(signalCtx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}

	<-signalCtx.Done()
	logger.Info("signal received, initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		shutdownTimeout,
	)
	defer cancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("API server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}
	if tracingShutdown != nil {
		if err := tracingShutdown(shutdownCtx); err != nil {
			logger.Error("tracing shutdown error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return nil
}
