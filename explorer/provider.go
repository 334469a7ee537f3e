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

package explorer

import (
	"context"
	"fmt"

	"github.com/hyperware-ai/hypermap-explorer/database/models"
	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/types"
	"github.com/hyperware-ai/hypermap-explorer/hypermap"
)

// displayNoteLabels is the fixed allow-list of note labels fetched for the
// provider listing. Only these are needed for list display; full note
// history stays on the single-entry path.
var displayNoteLabels = []string{
	hypermap.NoteLabelProviderName,
	hypermap.NoteLabelDescription,
	hypermap.NoteLabelPrice,
	hypermap.NoteLabelStatus,
}

// Providers returns one page of the provider listing. The cursor is the
// namehash of the last entry of the previous page; entries are ordered by
// namehash descending, so each page constrains to namehashes strictly
// below the cursor (keyset pagination stays correct under concurrent
// inserts, unlike offsets). TotalCount is computed only on the first page.
func (e *Explorer) Providers(
	ctx context.Context,
	cursor string,
) (*ProviderPage, error) {
	entries, err := e.store.GetProviderPage(
		ctx,
		e.config.ProviderNamespace,
		e.config.ProviderNoteLabel,
		cursor,
		e.config.PageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("provider page: %w", err)
	}

	page := &ProviderPage{
		Providers: []ProviderSummary{},
	}
	if len(entries) == 0 {
		if cursor == "" {
			var zero int64
			page.TotalCount = &zero
		}
		return page, nil
	}

	entryHashes := make([]string, 0, len(entries))
	for _, entry := range entries {
		entryHashes = append(entryHashes, entry.Namehash)
	}
	records, err := e.store.GetRecordsByEntryHashes(
		ctx,
		models.RecordKindNote,
		entryHashes,
		displayNoteLabels,
	)
	if err != nil {
		return nil, fmt.Errorf("provider notes: %w", err)
	}
	// Rows arrive newest first; the first row seen per (entry, label) is
	// the current value.
	current := make(map[string]map[string]*string)
	for _, record := range records {
		labels, ok := current[record.EntryHash]
		if !ok {
			labels = make(map[string]*string)
			current[record.EntryHash] = labels
		}
		if _, ok := labels[record.Label]; !ok {
			labels[record.Label] = record.InterpretedData
		}
	}

	for _, entry := range entries {
		labels := current[entry.Namehash]
		summary := ProviderSummary{
			Namehash:        entry.Namehash,
			Label:           entry.Label,
			FullName:        entry.FullName,
			ParentHash:      entry.ParentHash,
			Owner:           entry.Owner,
			Gene:            entry.Gene,
			Tba:             entry.Tba,
			ProviderName:    entry.Label,
			Status:          "active",
			LastUpdateBlock: entry.LastUpdateBlock,
			CreationBlock:   entry.CreationBlock,
		}
		if name := labels[hypermap.NoteLabelProviderName]; name != nil &&
			*name != "" {
			summary.ProviderName = *name
		}
		summary.Description = labels[hypermap.NoteLabelDescription]
		summary.Price = labels[hypermap.NoteLabelPrice]
		if status := labels[hypermap.NoteLabelStatus]; status != nil &&
			*status != "" {
			summary.Status = *status
		}
		page.Providers = append(page.Providers, summary)
	}

	if len(entries) == e.config.PageSize {
		last := entries[len(entries)-1].Namehash
		page.NextCursor = &last
		page.HasMore = true
	}
	if cursor == "" {
		total, err := e.store.CountProviders(
			ctx,
			e.config.ProviderNamespace,
			e.config.ProviderNoteLabel,
		)
		if err != nil {
			return nil, fmt.Errorf("provider count: %w", err)
		}
		page.TotalCount = &total
	}
	return page, nil
}

// ProviderStats returns diagnostic counts for the provider namespace.
func (e *Explorer) ProviderStats(
	ctx context.Context,
) (*types.ProviderStats, error) {
	stats, err := e.store.GetProviderStats(
		ctx,
		e.config.ProviderNamespace,
		e.config.ProviderNoteLabel,
	)
	if err != nil {
		return nil, fmt.Errorf("provider stats: %w", err)
	}
	return stats, nil
}

// Ping reports whether the underlying store is reachable.
func (e *Explorer) Ping(ctx context.Context) error {
	return e.store.Ping(ctx)
}
