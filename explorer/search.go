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
	"strings"

	"github.com/hyperware-ai/hypermap-explorer/database/models"
	"github.com/hyperware-ai/hypermap-explorer/hypermap"
)

// Search finds every entry whose own fields, notes, or facts contain the
// term (case-insensitive substring), optionally constrained to a namespace
// scope, and returns one assembled view per match. Discovery runs as three
// bounded sub-queries whose results are unioned and deduplicated; assembly
// then batch-fetches entries, notes, facts, and children in four queries
// rather than per-entry to avoid N+1 bursts.
func (e *Explorer) Search(
	ctx context.Context,
	term string,
	scope string,
) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrInvalidQuery
	}

	var namespaceInfo *NamespaceInfo
	if scope != "" {
		scopeEntry, err := e.store.GetEntryByFullName(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("resolve scope %q: %w", scope, err)
		}
		if scopeEntry == nil {
			return nil, fmt.Errorf(
				"namespace %q: %w",
				scope,
				ErrNotFound,
			)
		}
		namespaceInfo = &NamespaceInfo{
			FullName: scopeEntry.FullName,
			Namehash: scopeEntry.Namehash,
			UrlPath:  hypermap.ChildUrlPath(scopeEntry.FullName),
		}
	}

	// Phase 1: discover candidate entries across the three predicates
	entryMatches, err := e.store.SearchEntryHashes(
		ctx,
		term,
		scope,
		e.config.SearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}
	noteMatches, err := e.store.SearchRecordEntryHashes(
		ctx,
		models.RecordKindNote,
		term,
		scope,
		e.config.SearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	factMatches, err := e.store.SearchRecordEntryHashes(
		ctx,
		models.RecordKindFact,
		term,
		scope,
		e.config.SearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("search facts: %w", err)
	}

	seen := make(map[string]struct{})
	candidates := make([]string, 0,
		len(entryMatches)+len(noteMatches)+len(factMatches))
	for _, matches := range [][]string{
		entryMatches, noteMatches, factMatches,
	} {
		for _, namehash := range matches {
			if _, ok := seen[namehash]; ok {
				continue
			}
			seen[namehash] = struct{}{}
			candidates = append(candidates, namehash)
		}
	}

	// Phase 2: batch-assemble one view per candidate
	views, err := e.assembleBatch(ctx, candidates)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Query:        term,
		Namespace:    namespaceInfo,
		Results:      views,
		TotalResults: len(views),
	}, nil
}

// assembleBatch builds views for a set of entries using four queries
// total: entries, notes, facts, children.
func (e *Explorer) assembleBatch(
	ctx context.Context,
	namehashes []string,
) (map[string]EntryView, error) {
	views := make(map[string]EntryView, len(namehashes))
	if len(namehashes) == 0 {
		return views, nil
	}
	entries, err := e.store.GetEntriesByNamehashes(ctx, namehashes)
	if err != nil {
		return nil, fmt.Errorf("batch entries: %w", err)
	}
	notes, err := e.store.GetRecordsByEntryHashes(
		ctx,
		models.RecordKindNote,
		namehashes,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("batch notes: %w", err)
	}
	facts, err := e.store.GetRecordsByEntryHashes(
		ctx,
		models.RecordKindFact,
		namehashes,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("batch facts: %w", err)
	}
	children, err := e.store.GetChildrenByParentHashes(ctx, namehashes)
	if err != nil {
		return nil, fmt.Errorf("batch children: %w", err)
	}

	notesByEntry := make(map[string][]models.LabeledRecord)
	for _, record := range notes {
		notesByEntry[record.EntryHash] = append(
			notesByEntry[record.EntryHash], record)
	}
	factsByEntry := make(map[string][]models.LabeledRecord)
	for _, record := range facts {
		factsByEntry[record.EntryHash] = append(
			factsByEntry[record.EntryHash], record)
	}
	childrenByParent := make(map[string][]models.Entry)
	for _, child := range children {
		childrenByParent[child.ParentHash] = append(
			childrenByParent[child.ParentHash], child)
	}

	for i := range entries {
		entry := &entries[i]
		views[entry.Namehash] = buildEntryView(
			entry,
			notesByEntry[entry.Namehash],
			factsByEntry[entry.Namehash],
			childrenByParent[entry.Namehash],
		)
	}
	return views, nil
}
