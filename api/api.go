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
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package api implements the read-only Hypermap explorer REST API.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// ApiConfig holds the API server configuration.
type ApiConfig struct {
	ListenAddress string
}

// Api is the Hypermap explorer REST API server.
type Api struct {
	config     ApiConfig
	logger     *slog.Logger
	store      ExplorerStore
	httpServer *http.Server
	mu         sync.Mutex
}

// New creates a new explorer API server instance.
func New(
	cfg ApiConfig,
	store ExplorerStore,
	logger *slog.Logger,
) *Api {
	if logger == nil {
		logger = slog.New(
			slog.NewJSONHandler(io.Discard, nil),
		)
	}
	logger = logger.With("component", "api")
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":3000"
	}
	return &Api{
		config: cfg,
		logger: logger,
		store:  store,
	}
}

// Start starts the HTTP server in a background goroutine.
func (a *Api) Start(
	ctx context.Context,
) error {
	a.mu.Lock()
	if a.httpServer != nil {
		a.mu.Unlock()
		return errors.New("server already started")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", a.handleRoot)
	mux.HandleFunc("/health", a.handleHealth)
	mux.HandleFunc(
		"/api/entry/by-name",
		a.handleEntryByName,
	)
	mux.HandleFunc(
		"/api/entry/by-name/{segments...}",
		a.handleEntryByName,
	)
	mux.HandleFunc(
		"/api/search",
		a.handleSearch,
	)
	mux.HandleFunc(
		"/api/search/{segments...}",
		a.handleSearch,
	)
	mux.HandleFunc(
		"/api/providers/list",
		a.handleProvidersList,
	)
	mux.HandleFunc(
		"/api/providers/stats",
		a.handleProviderStats,
	)

	server := &http.Server{
		Addr:              a.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 60 * time.Second,
	}
	a.httpServer = server
	a.mu.Unlock()

	// Start the server with deterministic error detection
	if err := a.startServer(server); err != nil {
		a.mu.Lock()
		a.httpServer = nil
		a.mu.Unlock()
		return err
	}

	a.logger.Info(
		"explorer API listener started on " +
			a.config.ListenAddress,
	)

	// Monitor context for cancellation
	go func() {
		<-ctx.Done()
		a.mu.Lock()
		srv := a.httpServer
		a.httpServer = nil
		a.mu.Unlock()

		if srv != nil {
			a.logger.Debug(
				"context cancelled, shutting down " +
					"explorer API server",
			)
			//nolint:contextcheck
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				30*time.Second,
			)
			defer cancel()
			//nolint:contextcheck
			if err := srv.Shutdown(
				shutdownCtx,
			); err != nil {
				a.logger.Error(
					"failed to shutdown explorer "+
						"API server on context "+
						"cancellation",
					"error", err,
				)
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (a *Api) Stop(
	ctx context.Context,
) error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.mu.Unlock()

	if srv != nil {
		a.logger.Debug(
			"shutting down explorer API server",
		)
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf(
				"failed to shutdown explorer API "+
					"server: %w",
				err,
			)
		}
	}
	return nil
}

// startServer starts the HTTP server with deterministic
// error detection. It binds the listening socket first so
// port conflicts are detected immediately, then serves in
// a background goroutine.
func (a *Api) startServer(
	server *http.Server,
) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf(
			"failed to listen for explorer API "+
				"server: %w",
			err,
		)
	}
	go func() {
		if err := server.Serve(ln); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(
				"explorer API server error",
				"error", err,
			)
		}
	}()
	return nil
}
