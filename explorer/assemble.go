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
	"github.com/hyperware-ai/hypermap-explorer/hypermap"
)

// EntryByFullName assembles the denormalized view for the entry with the
// given canonical full name. Returns ErrNotFound when no entry matches.
// The 2-4 queries within one assembly read committed state independently;
// a record landing between them is a benign race, not an error.
func (e *Explorer) EntryByFullName(
	ctx context.Context,
	fullName string,
) (*EntryView, error) {
	entry, err := e.store.GetEntryByFullName(ctx, fullName)
	if err != nil {
		return nil, fmt.Errorf("resolve entry %q: %w", fullName, err)
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	notes, err := e.store.GetRecordsByEntryHash(
		ctx,
		models.RecordKindNote,
		entry.Namehash,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch notes for %q: %w", fullName, err)
	}
	facts, err := e.store.GetRecordsByEntryHash(
		ctx,
		models.RecordKindFact,
		entry.Namehash,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch facts for %q: %w", fullName, err)
	}
	children, err := e.store.GetChildrenByParentHashes(
		ctx,
		[]string{entry.Namehash},
	)
	if err != nil {
		return nil, fmt.Errorf("fetch children for %q: %w", fullName, err)
	}
	view := buildEntryView(entry, notes, facts, children)
	return &view, nil
}

// buildEntryView assembles one view from already-fetched rows. Record rows
// must arrive newest first; grouping preserves that order per label.
func buildEntryView(
	entry *models.Entry,
	notes []models.LabeledRecord,
	facts []models.LabeledRecord,
	children []models.Entry,
) EntryView {
	childRefs := make([]ChildRef, 0, len(children))
	for _, child := range children {
		childRefs = append(childRefs, ChildRef{
			Namehash: child.Namehash,
			Label:    child.Label,
			FullName: child.FullName,
			UrlPath:  hypermap.ChildUrlPath(child.FullName),
		})
	}
	return EntryView{
		Namehash:        entry.Namehash,
		Label:           entry.Label,
		ParentHash:      entry.ParentHash,
		FullName:        entry.FullName,
		Owner:           entry.Owner,
		Gene:            entry.Gene,
		Tba:             entry.Tba,
		Notes:           groupByLabel(notes),
		Facts:           groupByLabel(facts),
		Children:        childRefs,
		CreationBlock:   entry.CreationBlock,
		LastUpdateBlock: entry.LastUpdateBlock,
	}
}

// groupByLabel groups record rows into per-label history lists. Input
// order (newest first) is preserved, so element 0 of every list is the
// current value.
func groupByLabel(
	records []models.LabeledRecord,
) map[string][]RecordVersion {
	grouped := make(map[string][]RecordVersion)
	for _, record := range records {
		grouped[record.Label] = append(
			grouped[record.Label],
			RecordVersion{
				Data:        record.InterpretedData,
				RawData:     record.RawData,
				BlockNumber: record.BlockNumber,
				LogIndex:    record.LogIndex,
				TxHash:      record.TxHash,
				Hash:        record.RowHash,
			},
		)
	}
	return grouped
}
