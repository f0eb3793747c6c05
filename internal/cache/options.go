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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/dadrus/ttlstore/internal/values"
)

const (
	DefaultTTL             = 60 * time.Second
	DefaultCleanupInterval = 60 * time.Second
	DefaultName            = "default"
)

// ValueGenerator synthesizes a value for SetGenerated.
type ValueGenerator[V any] func(opts values.Options) (V, error)

type options struct {
	name            string
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	reclamation     Reclamation
	generator       any
	generatorOpts   values.Options
	logger          zerolog.Logger
	registerer      prometheus.Registerer
}

type Option func(o *options)

func WithName(name string) Option {
	return func(o *options) {
		if len(name) != 0 {
			o.name = name
		}
	}
}

func WithDefaultTTL(ttl time.Duration) Option {
	return func(o *options) { o.defaultTTL = ttl }
}

func WithCleanupInterval(interval time.Duration) Option {
	return func(o *options) { o.cleanupInterval = interval }
}

func WithReclamation(r Reclamation) Option {
	return func(o *options) { o.reclamation = r }
}

// WithValueGenerator configures the generator used by SetGenerated. Its type parameter
// must match the one of the cache it is passed to.
func WithValueGenerator[V any](gen ValueGenerator[V]) Option {
	return func(o *options) {
		if gen != nil {
			o.generator = gen
		}
	}
}

// WithGeneratorOptions sets the cache wide defaults for value generation.
func WithGeneratorOptions(opts values.Options) Option {
	return func(o *options) { o.generatorOpts = opts }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics registers the cache metrics with the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

type setOptions struct {
	ttl           *time.Duration
	generatorOpts values.Options
}

type SetOption func(o *setOptions)

// WithTTL overrides the default TTL of the cache for a single entry. A non-positive
// TTL results in an entry, which is expired right away.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *setOptions) { o.ttl = &ttl }
}

// WithGenerator overrides the cache wide generator options for a single SetGenerated call.
// Unset fields fall back to the cache wide defaults.
func WithGenerator(opts values.Options) SetOption {
	return func(o *setOptions) { o.generatorOpts = opts }
}
