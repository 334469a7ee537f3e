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
	"strings"
	"time"

	"github.com/hyperware-ai/hypermap-explorer/database/models"
	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/types"
	"gorm.io/gorm"
)

// searchPattern builds a case-insensitive substring LIKE pattern with
// metacharacters escaped. SQLite LIKE is only case-insensitive for ASCII,
// so both sides are lowered explicitly to match Postgres ILIKE behavior.
func searchPattern(term string) string {
	return "%" + strings.ToLower(types.EscapeLike(term)) + "%"
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
		"("+column+" = ? OR "+column+" LIKE ? ESCAPE '\\')",
		scope,
		"%."+types.EscapeLike(scope),
	)
}

// SearchEntryHashes returns up to limit namehashes of entries whose label
// or full name contains the term, case-insensitively.
func (d *MetadataStoreSqlite) SearchEntryHashes(
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
			"(LOWER(label) LIKE ? ESCAPE '\\' OR LOWER(full_name) LIKE ? ESCAPE '\\')",
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
func (d *MetadataStoreSqlite) SearchRecordEntryHashes(
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
			"(LOWER(r.label) LIKE ? ESCAPE '\\' OR LOWER(r.interpreted_data) LIKE ? ESCAPE '\\' OR LOWER(r.raw_data) LIKE ? ESCAPE '\\')",
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
