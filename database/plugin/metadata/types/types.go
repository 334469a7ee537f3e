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

// Package types holds shared helper types for the metadata store plugins.
package types

import "strings"

// ProviderStats is a diagnostic snapshot of the provider namespace,
// answering why a provider listing may be empty: how many entries the
// namespace pattern matches, how many carry the required note, which note
// labels exist, and how the full names relate to the namespace anchor.
type ProviderStats struct {
	TotalEntries            int64            `json:"totalEntries"`
	EntriesWithRequiredNote int64            `json:"entriesWithRequiredNote"`
	NoteLabels              []NoteLabelCount `json:"noteLabels"`
	NamePatterns            NamePatternStats `json:"namePatterns"`
}

// NoteLabelCount is a distinct note label and its row count within the
// provider namespace.
type NoteLabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// NamePatternStats breaks down how matched full names are positioned
// relative to the namespace anchor.
type NamePatternStats struct {
	EndsWithNamespace   int64 `json:"endsWithNamespace"`
	ContainsInMiddle    int64 `json:"containsInMiddle"`
	StartsWithNamespace int64 `json:"startsWithNamespace"`
	ExactMatch          int64 `json:"exactMatch"`
}

// EscapeLike escapes LIKE/ILIKE pattern metacharacters in s using backslash
// so a user-supplied term cannot be interpreted as a wildcard pattern.
// Queries using the result must specify ESCAPE '\'.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
