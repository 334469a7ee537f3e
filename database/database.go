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

// Package database wraps the metadata store plugins behind an explicitly
// constructed, injected handle. The handle is created once at process start
// and closed at shutdown; nothing in this package holds implicit global
// state.
package database

import (
	"io"
	"log/slog"

	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata"
	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/postgres"
	"github.com/prometheus/client_golang/prometheus"
)

type Database struct {
	logger   *slog.Logger
	metadata metadata.MetadataStore
	dataDir  string
}

// Config describes how to open the database.
type Config struct {
	Logger         *slog.Logger
	PromRegistry   prometheus.Registerer
	DataDir        string
	MetadataPlugin string
	// PostgresOpts apply when MetadataPlugin is "postgres".
	PostgresOpts []postgres.PostgresOptionFunc
}

// New creates a new database instance from the given config.
func New(cfg *Config) (*Database, error) {
	logger := cfg.Logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	metadataDb, err := metadata.New(
		cfg.MetadataPlugin,
		cfg.DataDir,
		cfg.PostgresOpts,
		logger,
		cfg.PromRegistry,
	)
	if err != nil {
		return nil, err
	}
	return &Database{
		logger:   logger,
		metadata: metadataDb,
		dataDir:  cfg.DataDir,
	}, nil
}

// DataDir returns the path to the data directory used for storage
func (d *Database) DataDir() string {
	return d.dataDir
}

// Logger returns the logger instance
func (d *Database) Logger() *slog.Logger {
	return d.logger
}

// Metadata returns the underlying metadata store instance
func (d *Database) Metadata() metadata.MetadataStore {
	return d.metadata
}

// Close cleans up the database connections
func (d *Database) Close() error {
	return d.metadata.Close()
}
