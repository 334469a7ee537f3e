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

package postgres

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/types"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// MetadataStorePostgres reads registry metadata from Postgres. The external
// indexer owns the schema and writes the rows; this store never migrates or
// mutates the domain tables.
type MetadataStorePostgres struct {
	promRegistry prometheus.Registerer
	db           *gorm.DB
	logger       *slog.Logger
	metrics      *types.QueryMetrics

	host     string
	port     uint
	user     string
	password string
	database string
	sslMode  string
	timeZone string
	dsn      string // Data source name (postgres connection string)
}

// NewWithOptions creates a new store with options. Connection setup is
// deferred to Start().
func NewWithOptions(opts ...PostgresOptionFunc) (*MetadataStorePostgres, error) {
	db := &MetadataStorePostgres{}

	// Apply options
	for _, opt := range opts {
		opt(db)
	}

	// Set defaults after options are applied (no side effects)
	if db.host == "" {
		db.host = "localhost"
	}
	if db.port == 0 {
		db.port = 5432
	}
	if db.user == "" {
		db.user = "postgres"
	}
	if db.database == "" {
		db.database = "postgres"
	}
	if db.sslMode == "" {
		db.sslMode = "disable"
	}
	if db.timeZone == "" {
		db.timeZone = "UTC"
	}
	if db.logger == nil {
		db.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	return db, nil
}

func (d *MetadataStorePostgres) init() error {
	if d.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		d.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	// Configure tracing for GORM
	if err := d.db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return err
	}
	d.metrics = types.NewQueryMetrics(d.promRegistry, "postgres")
	return nil
}

// Start opens the connection, configures the pool, and verifies
// reachability.
func (d *MetadataStorePostgres) Start() error {
	dsn := strings.TrimSpace(d.dsn)

	if dsn == "" {
		parts := []string{
			"host=" + d.host,
			"user=" + d.user,
			"password=" + d.password,
			"dbname=" + d.database,
			"port=" + strconv.FormatUint(uint64(d.port), 10),
			"sslmode=" + d.sslMode,
		}
		if d.timeZone != "" {
			parts = append(parts, "TimeZone="+d.timeZone)
		}
		dsn = strings.Join(parts, " ")
	}

	metadataDb, err := gorm.Open(
		postgres.Open(dsn),
		&gorm.Config{
			Logger:                 gormlogger.Discard,
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		},
	)
	if err != nil {
		return err
	}
	d.logger.Info(
		"connected to postgres metadata store",
		"host", d.host,
		"port", d.port,
		"database", d.database,
	)
	d.db = metadataDb
	// Configure connection pool
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := d.init(); err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Stop closes the store.
func (d *MetadataStorePostgres) Stop() error {
	return d.Close()
}

// Close gets the database handle and closes it.
func (d *MetadataStorePostgres) Close() error {
	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the underlying GORM database handle.
func (d *MetadataStorePostgres) DB() *gorm.DB {
	return d.db
}

// Ping verifies the database connection is usable.
func (d *MetadataStorePostgres) Ping(ctx context.Context) error {
	sqlDB, err := d.DB().DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
