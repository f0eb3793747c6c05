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

package shell

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherStats(t *testing.T) {
	t.Parallel()

	// GIVEN
	reg := prometheus.NewRegistry()

	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "ttlstore_test_total",
		ConstLabels: prometheus.Labels{"cache": "test"},
	}, []string{"result"})
	counter.WithLabelValues("hit").Add(3)

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "ttlstore_test_entries"})
	gauge.Set(7)

	foreign := prometheus.NewCounter(prometheus.CounterOpts{Name: "other_total"})
	foreign.Inc()

	reg.MustRegister(counter, gauge, foreign)

	// WHEN
	stats, err := gatherStats(reg)

	// THEN
	require.NoError(t, err)
	assert.ElementsMatch(t, statsResult{
		{Name: "ttlstore_test_total", Labels: map[string]string{"cache": "test", "result": "hit"}, Value: 3},
		{Name: "ttlstore_test_entries", Value: 7},
	}, stats)
}

func TestFormatLabels(t *testing.T) {
	t.Parallel()

	assert.Empty(t, formatLabels(nil))
	assert.Equal(t, `{a="1",b="2"}`, formatLabels(map[string]string{"b": "2", "a": "1"}))
}
