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

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hyperware-ai/hypermap-explorer/explorer"
	"github.com/hyperware-ai/hypermap-explorer/hypermap"
)

const apiVersion = "0.1.0"

// Cache freshness windows per endpoint. Entry lookups change only when
// the indexer writes, so they tolerate the longest window.
const (
	entryCacheControl = "public, s-maxage=60, " +
		"stale-while-revalidate=120, max-age=300"
	searchCacheControl = "public, s-maxage=30, " +
		"stale-while-revalidate=60, max-age=60"
	providersCacheControl = "public, s-maxage=10, " +
		"stale-while-revalidate=30, max-age=10"
)

// writeJSON writes a JSON response with the given status
// code.
func writeJSON(
	w http.ResponseWriter,
	status int,
	v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(
	w http.ResponseWriter,
	status int,
	message string,
) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
	})
}

// requireGet rejects any non-GET request with a 405 and an
// Allow header. It returns false when the request was
// rejected.
func (a *Api) requireGet(
	w http.ResponseWriter,
	r *http.Request,
) bool {
	if r.Method != http.MethodGet {
		a.logger.Warn(
			"method not allowed",
			"method", r.Method,
			"path", r.URL.Path,
		)
		w.Header().Set("Allow", http.MethodGet)
		writeError(
			w,
			http.StatusMethodNotAllowed,
			"Method "+r.Method+" Not Allowed",
		)
		return false
	}
	return true
}

// pathSegments splits the trailing wildcard of the request
// path into its URL segments, dropping any empty segments
// left by duplicate or trailing slashes.
func pathSegments(r *http.Request) []string {
	raw := r.PathValue("segments")
	parts := strings.Split(raw, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// handleRoot handles GET / and returns API metadata.
func (a *Api) handleRoot(
	w http.ResponseWriter,
	r *http.Request,
) {
	if r.URL.Path != "/" {
		writeError(
			w,
			http.StatusNotFound,
			"Not Found",
		)
		return
	}
	if !a.requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, RootResponse{
		URL:     "https://hyperware.ai/",
		Version: apiVersion,
	})
}

// handleHealth handles GET /health and reports whether the
// backing store is reachable.
func (a *Api) handleHealth(
	w http.ResponseWriter,
	r *http.Request,
) {
	if !a.requireGet(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(
		r.Context(),
		2*time.Second,
	)
	defer cancel()
	healthy := true
	if err := a.store.Ping(ctx); err != nil {
		a.logger.Warn(
			"store ping failed",
			"error", err,
		)
		healthy = false
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		IsHealthy: healthy,
	})
}

// handleEntryByName handles
// GET /api/entry/by-name/{segments...} and returns the
// denormalized view of a single entry, keyed by its
// namehash.
func (a *Api) handleEntryByName(
	w http.ResponseWriter,
	r *http.Request,
) {
	if !a.requireGet(w, r) {
		return
	}
	segments := pathSegments(r)
	fullName, err := hypermap.SegmentsToFullName(segments)
	if err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Invalid path provided. Path cannot be empty.",
		)
		return
	}
	view, err := a.store.EntryByFullName(
		r.Context(),
		fullName,
	)
	if err != nil {
		if errors.Is(err, explorer.ErrNotFound) {
			writeError(
				w,
				http.StatusNotFound,
				"Entry not found for path: "+
					strings.Join(segments, "/"),
			)
			return
		}
		a.logger.Error(
			"failed to fetch entry",
			"name", fullName,
			"error", err,
		)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error while fetching entry data.",
		)
		return
	}
	w.Header().Set("Cache-Control", entryCacheControl)
	writeJSON(
		w,
		http.StatusOK,
		map[string]explorer.EntryView{
			view.Namehash: *view,
		},
	)
}

// handleSearch handles GET /api/search/{segments...}. The
// last segment is the search term; any preceding segments
// form the namespace scope in URL order.
func (a *Api) handleSearch(
	w http.ResponseWriter,
	r *http.Request,
) {
	if !a.requireGet(w, r) {
		return
	}
	segments := pathSegments(r)
	if len(segments) == 0 {
		writeError(
			w,
			http.StatusBadRequest,
			"Invalid search path provided.",
		)
		return
	}
	term := segments[len(segments)-1]
	var scope string
	if len(segments) > 1 {
		var err error
		scope, err = hypermap.SegmentsToFullName(
			segments[:len(segments)-1],
		)
		if err != nil {
			writeError(
				w,
				http.StatusBadRequest,
				"Invalid search path provided.",
			)
			return
		}
	}
	result, err := a.store.Search(r.Context(), term, scope)
	if err != nil {
		switch {
		case errors.Is(err, explorer.ErrInvalidQuery):
			writeError(
				w,
				http.StatusBadRequest,
				"Search term cannot be empty.",
			)
		case errors.Is(err, explorer.ErrNotFound):
			writeError(
				w,
				http.StatusNotFound,
				"Namespace not found: "+scope,
			)
		default:
			a.logger.Error(
				"search failed",
				"term", term,
				"scope", scope,
				"error", err,
			)
			writeError(
				w,
				http.StatusInternalServerError,
				"Internal Server Error while searching.",
			)
		}
		return
	}
	w.Header().Set("Cache-Control", searchCacheControl)
	writeJSON(w, http.StatusOK, result)
}

// handleProvidersList handles GET /api/providers/list and
// returns one cursor page of the provider listing.
func (a *Api) handleProvidersList(
	w http.ResponseWriter,
	r *http.Request,
) {
	if !a.requireGet(w, r) {
		return
	}
	cursor := r.URL.Query().Get("cursor")
	page, err := a.store.Providers(r.Context(), cursor)
	if err != nil {
		a.logger.Error(
			"failed to fetch providers",
			"cursor", cursor,
			"error", err,
		)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error while fetching providers",
		)
		return
	}
	w.Header().Set("Cache-Control", providersCacheControl)
	writeJSON(w, http.StatusOK, page)
}

// handleProviderStats handles GET /api/providers/stats and
// returns diagnostics about the provider namespace.
func (a *Api) handleProviderStats(
	w http.ResponseWriter,
	r *http.Request,
) {
	if !a.requireGet(w, r) {
		return
	}
	stats, err := a.store.ProviderStats(r.Context())
	if err != nil {
		a.logger.Error(
			"failed to fetch provider stats",
			"error", err,
		)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error while fetching provider stats",
		)
		return
	}
	w.Header().Set("Cache-Control", providersCacheControl)
	writeJSON(w, http.StatusOK, stats)
}
