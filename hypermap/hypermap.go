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

// Package hypermap holds the naming conventions of the Hypermap namespace
// registry. Entries form a dotted hierarchy whose canonical full name lists
// the innermost label first (child.parent.grandparent), while navigable URL
// paths list the outermost label first (/grandparent/parent/child).
package hypermap

import (
	"errors"
	"strings"
)

// RootHash is the parent hash sentinel used by top-level entries.
const RootHash = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Note label conventions for provider entries under the grid namespace.
const (
	NoteLabelProviderName = "~provider-name"
	NoteLabelDescription  = "~description"
	NoteLabelPrice        = "~price"
	NoteLabelStatus       = "~status"
)

// ErrInvalidPath is returned when a path has no segments.
var ErrInvalidPath = errors.New("invalid path: path cannot be empty")

// SegmentsToFullName converts URL path segments (outermost first) into the
// canonical dotted full name (innermost first).
func SegmentsToFullName(segments []string) (string, error) {
	if len(segments) == 0 {
		return "", ErrInvalidPath
	}
	reversed := make([]string, len(segments))
	for i, segment := range segments {
		reversed[len(segments)-1-i] = segment
	}
	return strings.Join(reversed, "."), nil
}

// FullNameToSegments converts a canonical dotted full name into URL path
// segments (outermost first). Inverse of SegmentsToFullName.
func FullNameToSegments(fullName string) []string {
	parts := strings.Split(fullName, ".")
	reversed := make([]string, len(parts))
	for i, part := range parts {
		reversed[len(parts)-1-i] = part
	}
	return reversed
}

// ChildUrlPath builds the navigable URL path for an entry's full name. An
// entry without a resolved full name is non-navigable and rendered
// display-only, so the empty name maps to an explicit sentinel rather than
// a broken link.
func ChildUrlPath(fullName string) string {
	if fullName == "" {
		return "#unavailable"
	}
	return strings.Join(FullNameToSegments(fullName), "/")
}
