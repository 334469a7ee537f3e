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

// RecordKind distinguishes the two labeled record tables. Notes are
// mutable, facts are immutable by convention; the storage and query shape
// is identical for both.
type RecordKind string

const (
	RecordKindNote RecordKind = "note"
	RecordKindFact RecordKind = "fact"
)

// Table returns the table name for the record kind.
func (k RecordKind) Table() string {
	if k == RecordKindFact {
		return "facts"
	}
	return "notes"
}

// RowHashColumn returns the per-table name of the row identifier column in
// the indexed schema.
func (k RecordKind) RowHashColumn() string {
	if k == RecordKindFact {
		return "facthash"
	}
	return "notehash"
}

// LabeledRecord is the shared read shape of notes and facts: a historized
// label->value record attached to an entry. Every on-chain write appends a
// new row; rows are never updated or deleted, and the row with the greatest
// (block_number, log_index) is the current value for its label. Reads alias
// the per-table row hash column (notehash/facthash) to rowhash.
type LabeledRecord struct {
	RowHash   string `gorm:"column:rowhash"`
	EntryHash string `gorm:"column:entry_hash"`
	Label     string `gorm:"column:label"`
	RawData   string `gorm:"column:raw_data"`
	// InterpretedData is the decoded human-readable value, when the indexer
	// could produce one.
	InterpretedData *string `gorm:"column:interpreted_data"`
	BlockNumber     int64   `gorm:"column:block_number"`
	LogIndex        int64   `gorm:"column:log_index"`
	TxHash          string  `gorm:"column:tx_hash"`
}

// Note is the concrete model for the notes table, used for migration and
// test seeding. Reads go through LabeledRecord.
type Note struct {
	Notehash        string  `gorm:"column:notehash;primaryKey"`
	EntryHash       string  `gorm:"column:entry_hash;index"`
	Label           string  `gorm:"column:label;index"`
	RawData         string  `gorm:"column:raw_data"`
	InterpretedData *string `gorm:"column:interpreted_data"`
	BlockNumber     int64   `gorm:"column:block_number;index"`
	LogIndex        int64   `gorm:"column:log_index"`
	TxHash          string  `gorm:"column:tx_hash"`
}

func (Note) TableName() string {
	return "notes"
}

// Fact is the concrete model for the facts table, used for migration and
// test seeding. Reads go through LabeledRecord.
type Fact struct {
	Facthash        string  `gorm:"column:facthash;primaryKey"`
	EntryHash       string  `gorm:"column:entry_hash;index"`
	Label           string  `gorm:"column:label;index"`
	RawData         string  `gorm:"column:raw_data"`
	InterpretedData *string `gorm:"column:interpreted_data"`
	BlockNumber     int64   `gorm:"column:block_number;index"`
	LogIndex        int64   `gorm:"column:log_index"`
	TxHash          string  `gorm:"column:tx_hash"`
}

func (Fact) TableName() string {
	return "facts"
}
