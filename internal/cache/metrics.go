// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"github.com/jellydator/ttlcache/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dadrus/ttlstore/internal/ttlstore"
	"github.com/dadrus/ttlstore/internal/x/errorchain"
)

const (
	metricsNamespace = "ttlstore"
	metricsSubsystem = "cache"

	operationGet     = "get"
	operationGetInfo = "get_info"
	operationSet     = "set"

	resultHit  = "hit"
	resultMiss = "miss"

	reasonExpired = "expired"
	reasonDeleted = "deleted"
	reasonOther   = "other"
)

// metrics is nil safe. A nil *metrics records nothing.
type metrics struct {
	requests  *prometheus.CounterVec
	reclaimed *prometheus.CounterVec
	entries   prometheus.GaugeFunc
}

func newMetrics(reg prometheus.Registerer, name string, entries func() float64) (*metrics, error) {
	if reg == nil {
		return nil, nil // nolint: nilnil
	}

	labels := prometheus.Labels{"cache": name}
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   metricsNamespace,
				Subsystem:   metricsSubsystem,
				Name:        "requests_total",
				Help:        "Number of cache operations partitioned by operation and result.",
				ConstLabels: labels,
			},
			[]string{"operation", "result"},
		),
		reclaimed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   metricsNamespace,
				Subsystem:   metricsSubsystem,
				Name:        "reclaimed_entries_total",
				Help:        "Number of entries removed from the cache partitioned by reason.",
				ConstLabels: labels,
			},
			[]string{"reason"},
		),
		entries: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace:   metricsNamespace,
				Subsystem:   metricsSubsystem,
				Name:        "entries",
				Help:        "Number of entries currently held, including expired but not yet reclaimed ones.",
				ConstLabels: labels,
			},
			entries,
		),
	}

	for _, collector := range []prometheus.Collector{m.requests, m.reclaimed, m.entries} {
		if err := reg.Register(collector); err != nil {
			return nil, errorchain.NewWithMessagef(ttlstore.ErrConfiguration,
				"failed to register metrics of cache '%s'", name).CausedBy(err)
		}
	}

	return m, nil
}

func (m *metrics) request(operation string, hit bool) {
	if m == nil {
		return
	}

	result := resultMiss
	if hit {
		result = resultHit
	}

	m.requests.WithLabelValues(operation, result).Inc()
}

func (m *metrics) stored() {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(operationSet, "stored").Inc()
}

func (m *metrics) evicted(reason ttlcache.EvictionReason) {
	if m == nil {
		return
	}

	label := reasonOther

	switch reason { // nolint: exhaustive
	case ttlcache.EvictionReasonExpired:
		label = reasonExpired
	case ttlcache.EvictionReasonDeleted:
		label = reasonDeleted
	}

	m.reclaimed.WithLabelValues(label).Inc()
}
