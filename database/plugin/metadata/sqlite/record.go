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
	"fmt"
	"time"

	"github.com/hyperware-ai/hypermap-explorer/database/models"
)

// recordColumns selects the shared labeled record shape, aliasing the
// per-table row hash column to rowhash.
func recordColumns(kind models.RecordKind) string {
	return fmt.Sprintf(
		"%s AS rowhash, entry_hash, label, raw_data, interpreted_data, block_number, log_index, tx_hash",
		kind.RowHashColumn(),
	)
}

// GetRecordsByEntryHash returns all note or fact rows for one entry,
// newest first (block number descending, log index as tie-break within a
// block).
func (d *MetadataStoreSqlite) GetRecordsByEntryHash(
	ctx context.Context,
	kind models.RecordKind,
	entryHash string,
) ([]models.LabeledRecord, error) {
	start := time.Now()
	var ret []models.LabeledRecord
	result := d.DB().WithContext(ctx).
		Table(kind.Table()).
		Select(recordColumns(kind)).
		Where("entry_hash = ?", entryHash).
		Order("block_number DESC, log_index DESC").
		Scan(&ret)
	d.metrics.Observe("records_by_entry_hash", start, result.Error)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// GetRecordsByEntryHashes returns note or fact rows for a set of entries in
// one query, newest first. A non-nil label list restricts the result to
// those labels.
func (d *MetadataStoreSqlite) GetRecordsByEntryHashes(
	ctx context.Context,
	kind models.RecordKind,
	entryHashes []string,
	labels []string,
) ([]models.LabeledRecord, error) {
	start := time.Now()
	if len(entryHashes) == 0 {
		return []models.LabeledRecord{}, nil
	}
	query := d.DB().WithContext(ctx).
		Table(kind.Table()).
		Select(recordColumns(kind)).
		Where("entry_hash IN ?", entryHashes)
	if len(labels) > 0 {
		query = query.Where("label IN ?", labels)
	}
	var ret []models.LabeledRecord
	result := query.
		Order("block_number DESC, log_index DESC").
		Scan(&ret)
	d.metrics.Observe("records_by_entry_hashes", start, result.Error)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}
