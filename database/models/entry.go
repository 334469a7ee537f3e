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

package models

import "errors"

var ErrEntryNotFound = errors.New("entry not found")

// Entry is a node in the dotted namespace hierarchy. Identity fields
// (namehash, parent_hash, label) are immutable once the external indexer
// creates the row; owner, gene, tba and last_update_block may be updated in
// place as later chain events arrive.
type Entry struct {
	Namehash   string `gorm:"column:namehash;primaryKey"`
	Label      string `gorm:"column:label;index"`
	ParentHash string `gorm:"column:parent_hash;index"`
	FullName   string `gorm:"column:full_name;uniqueIndex"`
	Owner      string `gorm:"column:owner"`
	// Gene and Tba are nullable upstream: not every entry carries a gene
	// classifier or a deployed token-bound account.
	Gene            *string `gorm:"column:gene"`
	Tba             *string `gorm:"column:tba"`
	CreationBlock   int64   `gorm:"column:creation_block"`
	LastUpdateBlock int64   `gorm:"column:last_update_block"`
}

func (Entry) TableName() string {
	return "entries"
}
