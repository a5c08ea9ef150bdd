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

package agora

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ledgerMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

func (m *ledgerMetrics) init(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	m.operationsTotal = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_operations_total",
			Help: "Total number of ledger operations by operation and status",
		},
		[]string{"operation", "status"},
	)
	m.operationDuration = promautoFactory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agora_operation_duration_seconds",
			Help:    "Ledger operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15), // 100us to ~1.6s
		},
		[]string{"operation"},
	)
}
