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

package api

import (
	"context"

	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/types"
	"github.com/hyperware-ai/hypermap-explorer/explorer"
)

// ExplorerStore is the interface the API server uses to answer registry
// queries. This decouples the HTTP server from the concrete Explorer and
// enables testing with mock implementations.
type ExplorerStore interface {
	// EntryByFullName assembles the view for one entry.
	EntryByFullName(
		ctx context.Context,
		fullName string,
	) (*explorer.EntryView, error)

	// Search finds entries matching a free-text term, optionally scoped
	// to a namespace.
	Search(
		ctx context.Context,
		term string,
		scope string,
	) (*explorer.SearchResult, error)

	// Providers returns one keyset page of the provider listing.
	Providers(
		ctx context.Context,
		cursor string,
	) (*explorer.ProviderPage, error)

	// ProviderStats returns provider namespace diagnostics.
	ProviderStats(
		ctx context.Context,
	) (*types.ProviderStats, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
