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

package event

import (
	"github.com/prometheus/client_golang/prometheus"
)

const eventMetricNamePrefix = "eventbus_"

type eventMetrics struct {
	eventsTotal    *prometheus.CounterVec
	subscribers    *prometheus.GaugeVec
	deliveryErrors *prometheus.CounterVec
}

func (e *EventBus) initMetrics(promRegistry prometheus.Registerer) {
	metrics := &eventMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: eventMetricNamePrefix + "events_total",
				Help: "Total number of events published by event type",
			},
			[]string{"type"},
		),
		subscribers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: eventMetricNamePrefix + "subscribers",
				Help: "Current number of subscribers by event type and subscriber kind",
			},
			[]string{"type", "kind"},
		),
		deliveryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: eventMetricNamePrefix + "delivery_errors_total",
				Help: "Total number of event delivery failures by event type and subscriber kind",
			},
			[]string{"type", "kind"},
		),
	}
	promRegistry.MustRegister(
		metrics.eventsTotal,
		metrics.subscribers,
		metrics.deliveryErrors,
	)
	e.metrics = metrics
}
