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

// Package explorer implements the read-path query and aggregation logic of
// the Hypermap explorer: assembling denormalized entry views from
// normalized indexer rows, free-text search across entries and their
// labeled records, and keyset pagination of the provider listing.
package explorer

import (
	"errors"
	"io"
	"log/slog"

	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata"
	"github.com/hyperware-ai/hypermap-explorer/hypermap"
)

var (
	// ErrNotFound indicates a well-formed request that matched no entry.
	ErrNotFound = errors.New("entry not found")
	// ErrInvalidQuery indicates an empty search term.
	ErrInvalidQuery = errors.New("search term cannot be empty")
)

const (
	defaultSearchLimit = 100
	defaultPageSize    = 50
)

// Config tunes the explorer. Page size and search limits are fixed by
// configuration rather than client-supplied to bound response size.
type Config struct {
	// SearchLimit caps each of the three candidate discovery sub-queries.
	SearchLimit int
	// PageSize is the provider listing page size.
	PageSize int
	// ProviderNamespace is the namespace containment pattern for provider
	// entries (e.g. "grid.hypr").
	ProviderNamespace string
	// ProviderNoteLabel is the note label a provider entry must carry.
	ProviderNoteLabel string
}

// Explorer answers read queries against the metadata store.
type Explorer struct {
	store  metadata.MetadataStore
	logger *slog.Logger
	config Config
}

// New creates an Explorer over the given store.
func New(
	store metadata.MetadataStore,
	logger *slog.Logger,
	cfg Config,
) *Explorer {
	if logger == nil {
		logger = slog.New(
			slog.NewJSONHandler(io.Discard, nil),
		)
	}
	logger = logger.With("component", "explorer")
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = defaultSearchLimit
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.ProviderNamespace == "" {
		cfg.ProviderNamespace = "grid.hypr"
	}
	if cfg.ProviderNoteLabel == "" {
		cfg.ProviderNoteLabel = hypermap.NoteLabelProviderName
	}
	return &Explorer{
		store:  store,
		logger: logger,
		config: cfg,
	}
}
