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
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package explorer

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperware-ai/hypermap-explorer/database/models"
	"github.com/hyperware-ai/hypermap-explorer/database/plugin/metadata/sqlite"
	"github.com/hyperware-ai/hypermap-explorer/hypermap"
)

func newTestStore(t *testing.T) *sqlite.MetadataStoreSqlite {
	t.Helper()
	store, err := sqlite.New(t.TempDir(), nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func seedEntries(
	t *testing.T,
	store *sqlite.MetadataStoreSqlite,
	entries []models.Entry,
) {
	t.Helper()
	require.NoError(t, store.DB().Create(&entries).Error)
}

func seedNotes(
	t *testing.T,
	store *sqlite.MetadataStoreSqlite,
	notes []models.Note,
) {
	t.Helper()
	require.NoError(t, store.DB().Create(&notes).Error)
}

func seedFacts(
	t *testing.T,
	store *sqlite.MetadataStoreSqlite,
	facts []models.Fact,
) {
	t.Helper()
	require.NoError(t, store.DB().Create(&facts).Error)
}

func strPtr(s string) *string {
	return &s
}

func TestEntryByFullName(t *testing.T) {
	store := newTestStore(t)
	seedEntries(t, store, []models.Entry{
		{
			Namehash:   "0x01",
			Label:      "hypr",
			ParentHash: hypermap.RootHash,
			FullName:   "hypr",
		},
		{
			Namehash:        "0x02",
			Label:           "nick",
			ParentHash:      "0x01",
			FullName:        "nick.hypr",
			Owner:           "0xowner",
			Tba:             strPtr("0xtba"),
			CreationBlock:   5,
			LastUpdateBlock: 12,
		},
		{
			Namehash:   "0x03",
			Label:      "sub",
			ParentHash: "0x02",
			FullName:   "sub.nick.hypr",
		},
	})
	seedNotes(t, store, []models.Note{
		{
			Notehash:        "0xn1",
			EntryHash:       "0x02",
			Label:           "~bio",
			RawData:         "0x6f6c64",
			InterpretedData: strPtr("old bio"),
			BlockNumber:     10,
			LogIndex:        1,
			TxHash:          "0xt1",
		},
		{
			Notehash:        "0xn2",
			EntryHash:       "0x02",
			Label:           "~bio",
			RawData:         "0x6e6577",
			InterpretedData: strPtr("new bio"),
			BlockNumber:     12,
			LogIndex:        0,
			TxHash:          "0xt2",
		},
		{
			Notehash:        "0xn3",
			EntryHash:       "0x02",
			Label:           "~status",
			RawData:         "0x616374697665",
			InterpretedData: strPtr("active"),
			BlockNumber:     11,
			LogIndex:        0,
			TxHash:          "0xt3",
		},
	})
	seedFacts(t, store, []models.Fact{
		{
			Facthash:        "0xf1",
			EntryHash:       "0x02",
			Label:           "~pubkey",
			RawData:         "0xkey",
			InterpretedData: strPtr("0xkey"),
			BlockNumber:     5,
			LogIndex:        0,
			TxHash:          "0xt0",
		},
	})

	exp := New(store, nil, Config{})
	view, err := exp.EntryByFullName(t.Context(), "nick.hypr")
	require.NoError(t, err)

	assert.Equal(t, "0x02", view.Namehash)
	assert.Equal(t, "nick.hypr", view.FullName)
	assert.Equal(t, "0xowner", view.Owner)
	require.NotNil(t, view.Tba)
	assert.Equal(t, "0xtba", *view.Tba)
	assert.Nil(t, view.Gene)

	// Note history is newest first per label
	bio := view.Notes["~bio"]
	require.Len(t, bio, 2)
	assert.Equal(t, int64(12), bio[0].BlockNumber)
	require.NotNil(t, bio[0].Data)
	assert.Equal(t, "new bio", *bio[0].Data)
	assert.Equal(t, "0xn2", bio[0].Hash)
	assert.Equal(t, int64(10), bio[1].BlockNumber)
	require.Len(t, view.Notes["~status"], 1)

	require.Len(t, view.Facts["~pubkey"], 1)
	assert.Equal(t, "0xf1", view.Facts["~pubkey"][0].Hash)

	require.Len(t, view.Children, 1)
	assert.Equal(t, "0x03", view.Children[0].Namehash)
	assert.Equal(t, "sub.nick.hypr", view.Children[0].FullName)
	assert.Equal(t, "hypr/nick/sub", view.Children[0].UrlPath)
}

func TestEntryByFullNameNotFound(t *testing.T) {
	store := newTestStore(t)
	exp := New(store, nil, Config{})

	_, err := exp.EntryByFullName(t.Context(), "missing.hypr")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntryViewEmptyCollections(t *testing.T) {
	store := newTestStore(t)
	seedEntries(t, store, []models.Entry{
		{
			Namehash:   "0x05",
			Label:      "solo",
			ParentHash: hypermap.RootHash,
			FullName:   "solo",
		},
	})

	exp := New(store, nil, Config{})
	view, err := exp.EntryByFullName(t.Context(), "solo")
	require.NoError(t, err)

	assert.NotNil(t, view.Notes)
	assert.NotNil(t, view.Facts)
	assert.NotNil(t, view.Children)
	assert.Empty(t, view.Notes)
	assert.Empty(t, view.Facts)
	assert.Empty(t, view.Children)

	// Empty collections serialize as {} and [], never null
	buf, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"notes":{}`)
	assert.Contains(t, string(buf), `"facts":{}`)
	assert.Contains(t, string(buf), `"children":[]`)
}

func TestSearchGlobal(t *testing.T) {
	store := newTestStore(t)
	seedEntries(t, store, []models.Entry{
		{
			Namehash:   "0x01",
			Label:      "hypr",
			ParentHash: hypermap.RootHash,
			FullName:   "hypr",
		},
		{
			Namehash:   "0x02",
			Label:      "nick",
			ParentHash: "0x01",
			FullName:   "nick.hypr",
		},
		{
			Namehash:   "0x03",
			Label:      "nickel",
			ParentHash: "0x01",
			FullName:   "nickel.hypr",
		},
		{
			Namehash:   "0x04",
			Label:      "other",
			ParentHash: "0x01",
			FullName:   "other.hypr",
		},
	})
	seedNotes(t, store, []models.Note{
		// Matches a note on an entry whose own fields do not match
		{
			Notehash:        "0xn1",
			EntryHash:       "0x04",
			Label:           "~bio",
			RawData:         "0x00",
			InterpretedData: strPtr("all about nick"),
			BlockNumber:     1,
			LogIndex:        0,
			TxHash:          "0xt1",
		},
		// Also matches an entry that already matched by label, to
		// exercise deduplication
		{
			Notehash:        "0xn2",
			EntryHash:       "0x02",
			Label:           "~bio",
			RawData:         "0x00",
			InterpretedData: strPtr("nick's corner"),
			BlockNumber:     2,
			LogIndex:        0,
			TxHash:          "0xt2",
		},
	})

	exp := New(store, nil, Config{})
	// Term matching is case-insensitive
	result, err := exp.Search(t.Context(), "NICK", "")
	require.NoError(t, err)

	assert.Equal(t, "NICK", result.Query)
	assert.Nil(t, result.Namespace)
	assert.Equal(t, 3, result.TotalResults)
	assert.Len(t, result.Results, 3)
	assert.Contains(t, result.Results, "0x02")
	assert.Contains(t, result.Results, "0x03")
	assert.Contains(t, result.Results, "0x04")

	// Matched entries come back fully assembled
	assert.Len(t, result.Results["0x04"].Notes["~bio"], 1)
	assert.NotNil(t, result.Results["0x03"].Children)
}

func TestSearchEmptyTerm(t *testing.T) {
	store := newTestStore(t)
	exp := New(store, nil, Config{})

	_, err := exp.Search(t.Context(), "   ", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSearchScopeNotFound(t *testing.T) {
	store := newTestStore(t)
	exp := New(store, nil, Config{})

	_, err := exp.Search(t.Context(), "nick", "ghost.hypr")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchScopeBoundary(t *testing.T) {
	store := newTestStore(t)
	seedEntries(t, store, []models.Entry{
		{
			Namehash:   "0x01",
			Label:      "b",
			ParentHash: hypermap.RootHash,
			FullName:   "b",
		},
		{
			Namehash:   "0x02",
			Label:      "a",
			ParentHash: "0x01",
			FullName:   "a.b",
		},
		{
			Namehash:   "0x03",
			Label:      "x",
			ParentHash: "0x02",
			FullName:   "x.a.b",
		},
		{
			Namehash:   "0x04",
			Label:      "bx",
			ParentHash: hypermap.RootHash,
			FullName:   "bx",
		},
		{
			Namehash:   "0x05",
			Label:      "a",
			ParentHash: "0x04",
			FullName:   "a.bx",
		},
		{
			Namehash:   "0x06",
			Label:      "y",
			ParentHash: "0x05",
			FullName:   "y.a.bx",
		},
	})

	exp := New(store, nil, Config{})
	// Every full name here contains "a.b" as a substring, but only the
	// scope entry itself and its dotted-suffix descendants qualify
	result, err := exp.Search(t.Context(), "a.b", "a.b")
	require.NoError(t, err)

	require.NotNil(t, result.Namespace)
	assert.Equal(t, "a.b", result.Namespace.FullName)
	assert.Equal(t, "0x02", result.Namespace.Namehash)

	assert.Len(t, result.Results, 2)
	assert.Contains(t, result.Results, "0x02")
	assert.Contains(t, result.Results, "0x03")
	assert.NotContains(t, result.Results, "0x05")
	assert.NotContains(t, result.Results, "0x06")
}

func TestSearchLikeEscaping(t *testing.T) {
	store := newTestStore(t)
	seedEntries(t, store, []models.Entry{
		{
			Namehash:   "0x07",
			Label:      "50%off",
			ParentHash: hypermap.RootHash,
			FullName:   "50%off",
		},
		{
			Namehash:   "0x08",
			Label:      "50xoff",
			ParentHash: hypermap.RootHash,
			FullName:   "50xoff",
		},
		{
			Namehash:   "0x09",
			Label:      "a_b",
			ParentHash: hypermap.RootHash,
			FullName:   "a_b",
		},
	})

	exp := New(store, nil, Config{})

	// A literal % in the term must not act as a wildcard
	result, err := exp.Search(t.Context(), "0%o", "")
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
	assert.Contains(t, result.Results, "0x07")

	// A literal _ must not match arbitrary single characters
	result, err = exp.Search(t.Context(), "_", "")
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
	assert.Contains(t, result.Results, "0x09")
}

func seedProviderFixture(
	t *testing.T,
	store *sqlite.MetadataStoreSqlite,
) {
	t.Helper()
	seedEntries(t, store, []models.Entry{
		{
			Namehash:   "0xa0",
			Label:      "hypr",
			ParentHash: hypermap.RootHash,
			FullName:   "hypr",
		},
		{
			Namehash:   "0xa1",
			Label:      "grid",
			ParentHash: "0xa0",
			FullName:   "grid.hypr",
		},
	})
	providers := make([]models.Entry, 0, 5)
	notes := make([]models.Note, 0, 8)
	labels := []string{"p1", "p2", "p3", "p4", "p5"}
	for i, label := range labels {
		namehash := fmt.Sprintf("0xb%d", i+1)
		providers = append(providers, models.Entry{
			Namehash:   namehash,
			Label:      label,
			ParentHash: "0xa1",
			FullName:   label + ".grid.hypr",
		})
		notes = append(notes, models.Note{
			Notehash:        "0xn-" + label,
			EntryHash:       namehash,
			Label:           hypermap.NoteLabelProviderName,
			RawData:         "0x00",
			InterpretedData: strPtr("Provider " + label),
			BlockNumber:     10,
			LogIndex:        0,
			TxHash:          "0xt-" + label,
		})
	}
	// p2 carries a nil interpreted provider name (fallback to entry
	// label) and an explicit status
	notes[1].InterpretedData = nil
	notes = append(notes, models.Note{
		Notehash:        "0xn-p2-status",
		EntryHash:       "0xb2",
		Label:           hypermap.NoteLabelStatus,
		RawData:         "0x00",
		InterpretedData: strPtr("maintenance"),
		BlockNumber:     11,
		LogIndex:        0,
		TxHash:          "0xt-p2s",
	})
	// p5 has note history; the newest value wins
	notes = append(notes, models.Note{
		Notehash:        "0xn-p5-new",
		EntryHash:       "0xb5",
		Label:           hypermap.NoteLabelProviderName,
		RawData:         "0x00",
		InterpretedData: strPtr("Renamed p5"),
		BlockNumber:     20,
		LogIndex:        0,
		TxHash:          "0xt-p5n",
	})
	// An entry under the namespace without the required note is not a
	// provider
	providers = append(providers, models.Entry{
		Namehash:   "0xb6",
		Label:      "lurker",
		ParentHash: "0xa1",
		FullName:   "lurker.grid.hypr",
	})
	seedEntries(t, store, providers)
	seedNotes(t, store, notes)
}

func TestProvidersPagination(t *testing.T) {
	store := newTestStore(t)
	seedProviderFixture(t, store)

	exp := New(store, nil, Config{PageSize: 2})

	// First page: namehash descending, total count included
	page1, err := exp.Providers(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, page1.Providers, 2)
	assert.Equal(t, "0xb5", page1.Providers[0].Namehash)
	assert.Equal(t, "0xb4", page1.Providers[1].Namehash)
	assert.True(t, page1.HasMore)
	require.NotNil(t, page1.NextCursor)
	assert.Equal(t, "0xb4", *page1.NextCursor)
	require.NotNil(t, page1.TotalCount)
	assert.Equal(t, int64(5), *page1.TotalCount)

	// Newest note history entry wins for display fields
	assert.Equal(t, "Renamed p5", page1.Providers[0].ProviderName)

	// Later pages omit the total count
	page2, err := exp.Providers(t.Context(), *page1.NextCursor)
	require.NoError(t, err)
	require.Len(t, page2.Providers, 2)
	assert.Equal(t, "0xb3", page2.Providers[0].Namehash)
	assert.Equal(t, "0xb2", page2.Providers[1].Namehash)
	assert.True(t, page2.HasMore)
	assert.Nil(t, page2.TotalCount)

	// Display fallbacks: nil provider-name note falls back to the entry
	// label, explicit status overrides the "active" default
	p2 := page2.Providers[1]
	assert.Equal(t, "p2", p2.ProviderName)
	assert.Equal(t, "maintenance", p2.Status)
	assert.Nil(t, p2.Description)
	assert.Nil(t, p2.Price)

	// Final short page terminates the enumeration
	page3, err := exp.Providers(t.Context(), *page2.NextCursor)
	require.NoError(t, err)
	require.Len(t, page3.Providers, 1)
	assert.Equal(t, "0xb1", page3.Providers[0].Namehash)
	assert.False(t, page3.HasMore)
	assert.Nil(t, page3.NextCursor)
	assert.Equal(t, "active", page3.Providers[0].Status)

	// Full enumeration covers every provider exactly once
	seen := make(map[string]struct{})
	for _, page := range []*ProviderPage{page1, page2, page3} {
		for _, provider := range page.Providers {
			_, dup := seen[provider.Namehash]
			assert.False(t, dup, "duplicate provider %s", provider.Namehash)
			seen[provider.Namehash] = struct{}{}
		}
	}
	assert.Len(t, seen, 5)
	// The entry without the required note never appears
	_, ok := seen["0xb6"]
	assert.False(t, ok)
}

func TestProvidersEmpty(t *testing.T) {
	store := newTestStore(t)
	exp := New(store, nil, Config{})

	page, err := exp.Providers(t.Context(), "")
	require.NoError(t, err)
	assert.NotNil(t, page.Providers)
	assert.Empty(t, page.Providers)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
	require.NotNil(t, page.TotalCount)
	assert.Equal(t, int64(0), *page.TotalCount)
}

func TestProviderStats(t *testing.T) {
	store := newTestStore(t)
	seedProviderFixture(t, store)

	exp := New(store, nil, Config{})
	stats, err := exp.ProviderStats(t.Context())
	require.NoError(t, err)

	// grid.hypr itself plus 6 children match the containment pattern
	assert.Equal(t, int64(7), stats.TotalEntries)
	assert.Equal(t, int64(5), stats.EntriesWithRequiredNote)

	found := false
	for _, label := range stats.NoteLabels {
		if label.Label == hypermap.NoteLabelProviderName {
			found = true
			assert.Equal(t, int64(6), label.Count)
		}
	}
	assert.True(t, found)
}

func TestPing(t *testing.T) {
	store := newTestStore(t)
	exp := New(store, nil, Config{})
	require.NoError(t, exp.Ping(t.Context()))

	require.NoError(t, store.Close())
	err := exp.Ping(t.Context())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}