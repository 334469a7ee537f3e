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
	"errors"
	"time"

	"github.com/hyperware-ai/hypermap-explorer/database/models"
	"gorm.io/gorm"
)

// GetEntryByFullName returns the entry with the exact full name, or nil if
// no such entry exists.
func (d *MetadataStorePostgres) GetEntryByFullName(
	ctx context.Context,
	fullName string,
) (*models.Entry, error) {
	start := time.Now()
	ret := &models.Entry{}
	result := d.DB().WithContext(ctx).
		First(ret, "full_name = ?", fullName)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			d.metrics.Observe("entry_by_full_name", start, nil)
			return nil, nil
		}
		d.metrics.Observe("entry_by_full_name", start, result.Error)
		return nil, result.Error
	}
	d.metrics.Observe("entry_by_full_name", start, nil)
	return ret, nil
}

// GetEntriesByNamehashes returns the entries whose namehash is in the given
// set.
func (d *MetadataStorePostgres) GetEntriesByNamehashes(
	ctx context.Context,
	namehashes []string,
) ([]models.Entry, error) {
	start := time.Now()
	if len(namehashes) == 0 {
		return []models.Entry{}, nil
	}
	var ret []models.Entry
	result := d.DB().WithContext(ctx).
		Where("namehash IN ?", namehashes).
		Find(&ret)
	d.metrics.Observe("entries_by_namehashes", start, result.Error)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// GetChildrenByParentHashes returns the direct children of the given
// parents (no recursion).
func (d *MetadataStorePostgres) GetChildrenByParentHashes(
	ctx context.Context,
	parentHashes []string,
) ([]models.Entry, error) {
	start := time.Now()
	if len(parentHashes) == 0 {
		return []models.Entry{}, nil
	}
	var ret []models.Entry
	result := d.DB().WithContext(ctx).
		Where("parent_hash IN ?", parentHashes).
		Find(&ret)
	d.metrics.Observe("children_by_parent_hashes", start, result.Error)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}
