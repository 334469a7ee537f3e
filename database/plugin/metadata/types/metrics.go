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
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QueryMetrics tracks per-query counts and latencies for a metadata store
// backend.
type QueryMetrics struct {
	queries   *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewQueryMetrics creates query metrics and registers them on the given
// registry. A nil registry disables registration, which keeps tests from
// colliding on the default registry.
func NewQueryMetrics(
	registry prometheus.Registerer,
	backend string,
) *QueryMetrics {
	m := &QueryMetrics{
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hypermap_store_queries_total",
				Help: "Total metadata store queries by name and status",
				ConstLabels: prometheus.Labels{
					"backend": backend,
				},
			},
			[]string{"query", "status"},
		),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hypermap_store_query_duration_seconds",
				Help:    "Metadata store query latency by name",
				Buckets: prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{
					"backend": backend,
				},
			},
			[]string{"query"},
		),
	}
	if registry != nil {
		registry.MustRegister(m.queries, m.durations)
	}
	return m
}

// Observe records one query execution.
func (m *QueryMetrics) Observe(
	query string,
	start time.Time,
	err error,
) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.queries.WithLabelValues(query, status).Inc()
	m.durations.WithLabelValues(query).
		Observe(time.Since(start).Seconds())
}
