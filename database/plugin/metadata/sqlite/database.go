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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/hyperware-ai/hypermap-explorer/database/models"
	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/types"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// MetadataStoreSqlite is a SQLite-backed metadata store. It is used for
// development and tests; it owns its schema (AutoMigrate), unlike the
// Postgres backend where the external indexer owns the schema.
type MetadataStoreSqlite struct {
	promRegistry prometheus.Registerer
	db           *gorm.DB
	logger       *slog.Logger
	metrics      *types.QueryMetrics
	dataDir      string
}

// New creates a SQLite metadata store. Uses an in-memory database if
// dataDir is empty.
func New(
	dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (*MetadataStoreSqlite, error) {
	var metadataDb *gorm.DB
	var err error
	if dataDir == "" {
		// In-memory database when no data directory is specified, useful
		// for testing. cache=shared allows multiple connections to share
		// the same in-memory database.
		metadataDb, err = gorm.Open(
			sqlite.Open("file::memory:?cache=shared"),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return nil, err
		}
	} else {
		// Make sure that we can read data dir, and create if it doesn't
		// exist
		if _, err := os.Stat(dataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			if err := os.MkdirAll(dataDir, fs.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		metadataDbPath := filepath.Join(
			dataDir,
			"hypermap.sqlite",
		)
		// WAL journal mode, disable sync on write, increase cache size to
		// 50MB (from 2MB)
		metadataConnOpts := "_pragma=journal_mode(WAL)&_pragma=sync(OFF)&_pragma=cache_size(-50000)"
		metadataDb, err = gorm.Open(
			sqlite.Open(
				fmt.Sprintf("file:%s?%s", metadataDbPath, metadataConnOpts),
			),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return nil, err
		}
	}
	db := &MetadataStoreSqlite{
		db:           metadataDb,
		dataDir:      dataDir,
		logger:       logger,
		promRegistry: promRegistry,
	}
	if err := db.init(); err != nil {
		return db, err
	}
	// Create table schemas
	for _, model := range models.MigrateModels {
		db.logger.Debug(fmt.Sprintf("creating table: %#v", model))
		if err := db.db.AutoMigrate(model); err != nil {
			return db, err
		}
	}
	return db, nil
}

func (d *MetadataStoreSqlite) init() error {
	if d.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		d.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	// Configure tracing for GORM
	if err := d.db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return err
	}
	d.metrics = types.NewQueryMetrics(d.promRegistry, "sqlite")
	return nil
}

// AutoMigrate creates or updates database schema for the given models.
func (d *MetadataStoreSqlite) AutoMigrate(dst ...any) error {
	return d.DB().AutoMigrate(dst...)
}

// Close shuts down the database connection.
func (d *MetadataStoreSqlite) Close() error {
	db, err := d.DB().DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	return db.Close()
}

// DB returns the underlying GORM database handle.
func (d *MetadataStoreSqlite) DB() *gorm.DB {
	return d.db
}

// Ping verifies the database connection is usable.
func (d *MetadataStoreSqlite) Ping(ctx context.Context) error {
	db, err := d.DB().DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}
