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

package types

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"50%off", `50\%off`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
		{"", ""},
	}
	for _, test := range tests {
		result := EscapeLike(test.input)
		if result != test.expected {
			t.Errorf(
				"EscapeLike(%q) = %q, expected %q",
				test.input,
				result,
				test.expected,
			)
		}
	}
}

func TestQueryMetricsRegisters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewQueryMetrics(registry, "sqlite")

	m.Observe("entry_by_full_name", time.Now(), nil)
	m.Observe("entry_by_full_name", time.Now(), errors.New("boom"))

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if len(families) != 2 {
		t.Fatalf("expected 2 metric families, got %d", len(families))
	}
}

func TestQueryMetricsNilRegistry(t *testing.T) {
	m := NewQueryMetrics(nil, "sqlite")
	// Must not panic without a registry
	m.Observe("entry_by_full_name", time.Now(), nil)
}
