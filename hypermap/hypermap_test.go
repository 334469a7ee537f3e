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

package hypermap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentsToFullName(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		expected string
	}{
		{
			name:     "two segments",
			segments: []string{"hypr", "nick"},
			expected: "nick.hypr",
		},
		{
			name:     "single segment",
			segments: []string{"hypr"},
			expected: "hypr",
		},
		{
			name:     "three segments",
			segments: []string{"hypr", "grid", "provider"},
			expected: "provider.grid.hypr",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fullName, err := SegmentsToFullName(test.segments)
			require.NoError(t, err)
			assert.Equal(t, test.expected, fullName)
		})
	}
}

func TestSegmentsToFullNameEmpty(t *testing.T) {
	_, err := SegmentsToFullName(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPath))

	_, err = SegmentsToFullName([]string{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPath))
}

func TestFullNameToSegments(t *testing.T) {
	assert.Equal(
		t,
		[]string{"hypr", "nick"},
		FullNameToSegments("nick.hypr"),
	)
	assert.Equal(
		t,
		[]string{"hypr"},
		FullNameToSegments("hypr"),
	)
}

func TestNameRoundTrip(t *testing.T) {
	tests := [][]string{
		{"hypr"},
		{"hypr", "nick"},
		{"hypr", "grid", "provider", "sub"},
	}

	for _, segments := range tests {
		fullName, err := SegmentsToFullName(segments)
		require.NoError(t, err)
		assert.Equal(t, segments, FullNameToSegments(fullName))
	}
}

func TestChildUrlPath(t *testing.T) {
	assert.Equal(
		t,
		"hypr/grid/provider",
		ChildUrlPath("provider.grid.hypr"),
	)
	assert.Equal(t, "hypr", ChildUrlPath("hypr"))
	assert.Equal(t, "#unavailable", ChildUrlPath(""))
}
