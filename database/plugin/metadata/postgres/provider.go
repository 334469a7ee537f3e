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
	"time"

	"github.com/hyperware-ai/hypermap-explorer/database/models"
	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/types"
	"gorm.io/gorm"
)

// providerScope narrows a query to entries whose full name contains the
// namespace pattern and which carry at least one note with the required
// label. The note check is an existence test, not a join, to avoid row
// fan-out.
func providerScope(
	query *gorm.DB,
	namespacePattern string,
	requiredLabel string,
) *gorm.DB {
	return query.
		Where(
			"full_name LIKE ?",
			"%"+types.EscapeLike(namespacePattern)+"%",
		).
		Where(
			"EXISTS (SELECT 1 FROM notes WHERE notes.entry_hash = entries.namehash AND notes.label = ?)",
			requiredLabel,
		)
}

// GetProviderPage returns one keyset page of provider entries ordered by
// namehash descending. A non-empty cursor constrains results to namehashes
// strictly less than the cursor.
func (d *MetadataStorePostgres) GetProviderPage(
	ctx context.Context,
	namespacePattern string,
	requiredLabel string,
	cursor string,
	limit int,
) ([]models.Entry, error) {
	start := time.Now()
	query := providerScope(
		d.DB().WithContext(ctx).Model(&models.Entry{}),
		namespacePattern,
		requiredLabel,
	)
	if cursor != "" {
		query = query.Where("namehash < ?", cursor)
	}
	var ret []models.Entry
	result := query.
		Order("namehash DESC").
		Limit(limit).
		Find(&ret)
	d.metrics.Observe("provider_page", start, result.Error)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// CountProviders returns the total number of provider entries matching the
// namespace pattern and required note label.
func (d *MetadataStorePostgres) CountProviders(
	ctx context.Context,
	namespacePattern string,
	requiredLabel string,
) (int64, error) {
	start := time.Now()
	var count int64
	result := providerScope(
		d.DB().WithContext(ctx).Model(&models.Entry{}),
		namespacePattern,
		requiredLabel,
	).Count(&count)
	d.metrics.Observe("provider_count", start, result.Error)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetProviderStats collects diagnostic counts for the provider namespace.
func (d *MetadataStorePostgres) GetProviderStats(
	ctx context.Context,
	namespacePattern string,
	requiredLabel string,
) (*types.ProviderStats, error) {
	start := time.Now()
	stats := &types.ProviderStats{}
	db := d.DB().WithContext(ctx)
	escaped := types.EscapeLike(namespacePattern)
	contains := "%" + escaped + "%"

	result := db.Model(&models.Entry{}).
		Where("full_name LIKE ?", contains).
		Count(&stats.TotalEntries)
	if result.Error != nil {
		d.metrics.Observe("provider_stats", start, result.Error)
		return nil, result.Error
	}

	result = providerScope(
		db.Model(&models.Entry{}),
		namespacePattern,
		requiredLabel,
	).Count(&stats.EntriesWithRequiredNote)
	if result.Error != nil {
		d.metrics.Observe("provider_stats", start, result.Error)
		return nil, result.Error
	}

	result = db.Raw(
		`SELECT notes.label AS label, COUNT(*) AS count
		FROM notes
		JOIN entries ON notes.entry_hash = entries.namehash
		WHERE entries.full_name LIKE ?
		GROUP BY notes.label
		ORDER BY count DESC
		LIMIT 20`,
		contains,
	).Scan(&stats.NoteLabels)
	if result.Error != nil {
		d.metrics.Observe("provider_stats", start, result.Error)
		return nil, result.Error
	}

	result = db.Raw(
		`SELECT
			COUNT(CASE WHEN full_name LIKE ? THEN 1 END) AS ends_with_namespace,
			COUNT(CASE WHEN full_name LIKE ? THEN 1 END) AS contains_in_middle,
			COUNT(CASE WHEN full_name LIKE ? THEN 1 END) AS starts_with_namespace,
			COUNT(CASE WHEN full_name = ? THEN 1 END) AS exact_match
		FROM entries
		WHERE full_name LIKE ?`,
		"%."+escaped,
		"%."+escaped+".%",
		escaped+"%",
		namespacePattern,
		contains,
	).Scan(&stats.NamePatterns)
	d.metrics.Observe("provider_stats", start, result.Error)
	if result.Error != nil {
		return nil, result.Error
	}
	return stats, nil
}
