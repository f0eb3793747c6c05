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

package module

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/dadrus/ttlstore/internal/cache"
	"github.com/dadrus/ttlstore/internal/config"
)

//nolint:gochecknoglobals
var Module = fx.Provide(
	fx.Annotate(
		newCache,
		fx.OnStart(func(ctx context.Context, cch *cache.Cache[string]) error { return cch.Start(ctx) }),
		fx.OnStop(func(ctx context.Context, cch *cache.Cache[string]) error { return cch.Stop(ctx) }),
	),
)

func newCache(
	conf config.CacheConfig,
	logger zerolog.Logger,
	reg prometheus.Registerer,
) (*cache.Cache[string], error) {
	opts := []cache.Option{
		cache.WithDefaultTTL(conf.DefaultTTL),
		cache.WithCleanupInterval(conf.CleanupInterval),
		cache.WithReclamation(cache.Reclamation(conf.Reclamation)),
		cache.WithGeneratorOptions(conf.ValueGenerator),
		cache.WithLogger(logger),
	}

	if conf.Metrics {
		opts = append(opts, cache.WithMetrics(reg))
	}

	cch, err := cache.New[string](opts...)
	if err != nil {
		logger.Error().Err(err).Str("_reclamation", conf.Reclamation).Msg("Failed creating cache instance")

		return nil, err
	}

	logger.Info().
		Str("_reclamation", conf.Reclamation).
		Dur("_default_ttl", conf.DefaultTTL).
		Bool("_metrics", conf.Metrics).
		Msg("Cache configured")

	return cch, nil
}
