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

// searchPattern builds a substring ILIKE pattern with metacharacters
// escaped.
func searchPattern(term string) string {
	return "%" + types.EscapeLike(term) + "%"
}

// scopeConstraint restricts a query to entries whose full name equals the
// scope or sits under it at a dot component boundary. Full names list the
// innermost label first, so descendants of "a.b" end with ".a.b". A plain
// substring match would wrongly include names that merely contain the
// scope string (scope "a.b" must not match "y.a.bx").
func scopeConstraint(
	query *gorm.DB,
	column string,
	scope string,
) *gorm.DB {
	if scope == "" {
		return query
	}
	return query.Where(
		"("+column+" = ? OR "+column+" LIKE ?)",
		scope,
		"%."+types.EscapeLike(scope),
	)
}

// SearchEntryHashes returns up to limit namehashes of entries whose label
// or full name contains the term, case-insensitively.
func (d *MetadataStorePostgres) SearchEntryHashes(
	ctx context.Context,
	term string,
	scope string,
	limit int,
) ([]string, error) {
	start := time.Now()
	pattern := searchPattern(term)
	query := d.DB().WithContext(ctx).
		Model(&models.Entry{}).
		Where(
			"(label ILIKE ? OR full_name ILIKE ?)",
			pattern,
			pattern,
		)
	query = scopeConstraint(query, "full_name", scope)
	var ret []string
	result := query.
		Limit(limit).
		Pluck("namehash", &ret)
	d.metrics.Observe("search_entry_hashes", start, result.Error)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// SearchRecordEntryHashes returns up to limit distinct entry hashes owning
// at least one note or fact whose label, interpreted data, or raw data
// contains the term, case-insensitively.
func (d *MetadataStorePostgres) SearchRecordEntryHashes(
	ctx context.Context,
	kind models.RecordKind,
	term string,
	scope string,
	limit int,
) ([]string, error) {
	start := time.Now()
	pattern := searchPattern(term)
	query := d.DB().WithContext(ctx).
		Table(kind.Table()+" AS r").
		Joins("JOIN entries ON r.entry_hash = entries.namehash").
		Where(
			"(r.label ILIKE ? OR r.interpreted_data ILIKE ? OR r.raw_data ILIKE ?)",
			pattern,
			pattern,
			pattern,
		)
	query = scopeConstraint(query, "entries.full_name", scope)
	var ret []string
	result := query.
		Distinct().
		Limit(limit).
		Pluck("r.entry_hash", &ret)
	d.metrics.Observe("search_record_entry_hashes", start, result.Error)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}
