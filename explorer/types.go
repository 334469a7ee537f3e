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

// RecordVersion is one historical value of a labeled record. Within a
// history list, position 0 is the current value.
type RecordVersion struct {
	// Data is the decoded value; nil when the indexer could not decode.
	Data        *string `json:"data"`
	RawData     string  `json:"rawData"`
	BlockNumber int64   `json:"blockNumber"`
	LogIndex    int64   `json:"logIndex"`
	TxHash      string  `json:"txHash"`
	Hash        string  `json:"hash"`
}

// ChildRef is the minimal projection of a direct child entry.
type ChildRef struct {
	Namehash string `json:"namehash"`
	Label    string `json:"label"`
	FullName string `json:"fullName"`
	UrlPath  string `json:"urlPath"`
}

// EntryView is the denormalized aggregate for one entry: its row fields
// plus notes and facts grouped by label (newest first) and its direct
// children. Constructed fresh per request; never cached.
type EntryView struct {
	Namehash        string                     `json:"namehash"`
	Label           string                     `json:"label"`
	ParentHash      string                     `json:"parentHash"`
	FullName        string                     `json:"fullName"`
	Owner           string                     `json:"owner"`
	Gene            *string                    `json:"gene"`
	Tba             *string                    `json:"tba"`
	Notes           map[string][]RecordVersion `json:"notes"`
	Facts           map[string][]RecordVersion `json:"facts"`
	Children        []ChildRef                 `json:"children"`
	CreationBlock   int64                      `json:"creationBlock"`
	LastUpdateBlock int64                      `json:"lastUpdateBlock"`
}

// NamespaceInfo describes a resolved search scope.
type NamespaceInfo struct {
	FullName string `json:"fullName"`
	Namehash string `json:"namehash"`
	UrlPath  string `json:"urlPath"`
}

// SearchResult is the outcome of a free-text search: one view per matching
// entry, keyed by namehash and deduplicated across match predicates.
type SearchResult struct {
	Query        string               `json:"query"`
	Namespace    *NamespaceInfo       `json:"namespace"`
	Results      map[string]EntryView `json:"results"`
	TotalResults int                  `json:"totalResults"`
}

// ProviderSummary is a flattened projection of a provider entry: its row
// fields plus the current values of a fixed set of display notes, each with
// a documented fallback.
type ProviderSummary struct {
	Namehash        string  `json:"namehash"`
	Label           string  `json:"label"`
	FullName        string  `json:"fullName"`
	ParentHash      string  `json:"parentHash"`
	Owner           string  `json:"owner"`
	Gene            *string `json:"gene"`
	Tba             *string `json:"tba"`
	ProviderName    string  `json:"providerName"`
	Description     *string `json:"description"`
	Price           *string `json:"price"`
	Status          string  `json:"status"`
	LastUpdateBlock int64   `json:"lastUpdateBlock"`
	CreationBlock   int64   `json:"creationBlock"`
}

// ProviderPage is one keyset page of the provider listing. TotalCount is
// only computed on the first page (no cursor).
type ProviderPage struct {
	Providers  []ProviderSummary `json:"providers"`
	NextCursor *string           `json:"nextCursor"`
	HasMore    bool              `json:"hasMore"`
	TotalCount *int64            `json:"totalCount,omitempty"`
}
