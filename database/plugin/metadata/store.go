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

package metadata

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hyperware-ai/hypermap-explorer/database/models"
	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/postgres"
	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/sqlite"
	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/types"
	"github.com/prometheus/client_golang/prometheus"
)

// MetadataStore is the read interface over the indexer-populated registry
// tables. All methods are safe for concurrent use; failures surface as
// errors without retries.
type MetadataStore interface {
	// Database
	Close() error
	Ping(context.Context) error

	// Entries
	GetEntryByFullName(
		context.Context,
		string, // fullName
	) (*models.Entry, error)
	GetEntriesByNamehashes(
		context.Context,
		[]string, // namehashes
	) ([]models.Entry, error)
	GetChildrenByParentHashes(
		context.Context,
		[]string, // parentHashes
	) ([]models.Entry, error)

	// Notes and facts (shared labeled record shape)
	GetRecordsByEntryHash(
		context.Context,
		models.RecordKind,
		string, // entryHash
	) ([]models.LabeledRecord, error)
	GetRecordsByEntryHashes(
		context.Context,
		models.RecordKind,
		[]string, // entryHashes
		[]string, // label allow-list (nil for all labels)
	) ([]models.LabeledRecord, error)

	// Search (case-insensitive substring, capped, optional dotted-suffix
	// scope)
	SearchEntryHashes(
		context.Context,
		string, // term
		string, // scope (empty for global)
		int, // limit
	) ([]string, error)
	SearchRecordEntryHashes(
		context.Context,
		models.RecordKind,
		string, // term
		string, // scope
		int, // limit
	) ([]string, error)

	// Provider listing (keyset pagination)
	GetProviderPage(
		context.Context,
		string, // namespace containment pattern, e.g. "grid.hypr"
		string, // required note label
		string, // cursor (empty for first page)
		int, // page size
	) ([]models.Entry, error)
	CountProviders(
		context.Context,
		string, // namespace containment pattern
		string, // required note label
	) (int64, error)
	GetProviderStats(
		context.Context,
		string, // namespace containment pattern
		string, // required note label
	) (*types.ProviderStats, error)
}

// New creates a new metadata store using the named plugin.
func New(
	pluginName, dataDir string,
	pgOpts []postgres.PostgresOptionFunc,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	switch pluginName {
	case "sqlite", "":
		return sqlite.New(dataDir, logger, promRegistry)
	case "postgres":
		opts := append(
			[]postgres.PostgresOptionFunc{
				postgres.WithLogger(logger),
				postgres.WithPromRegistry(promRegistry),
			},
			pgOpts...,
		)
		db, err := postgres.NewWithOptions(opts...)
		if err != nil {
			return nil, err
		}
		if err := db.Start(); err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown metadata plugin: %s", pluginName)
	}
}
