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

// Package cache implements an in-process key-value store, which expires its entries
// after a per-entry time-to-live.
//
// The deadline of an entry is fixed when the entry is set. Reading an entry never
// extends it. Expired entries are never handed out. They are removed by the first
// read observing them and, depending on the configured Reclamation, eagerly by a
// periodic sweep or at their deadline.
package cache

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog"

	"github.com/dadrus/ttlstore/internal/ttlstore"
	"github.com/dadrus/ttlstore/internal/values"
	"github.com/dadrus/ttlstore/internal/x/errorchain"
)

// Info describes a live entry.
type Info[V any] struct {
	Value     V      `json:"value"     yaml:"value"`
	ExpiresAt string `json:"expiresAt" yaml:"expiresAt"`
}

type Cache[V any] struct {
	name            string
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	reclamation     Reclamation
	generate        ValueGenerator[V]
	generatorOpts   values.Options
	logger          zerolog.Logger
	m               *metrics

	c *ttlcache.Cache[string, V]

	// guards every mutation of c, so eviction counts taken under it are exact
	mu sync.Mutex

	// earliest deadline the timer reclamation is armed for, guarded by mu
	armedAt         time.Time
	deadlineChanged chan struct{}

	// guards the lifecycle
	lcMu      sync.Mutex
	running   bool
	sched     gocron.Scheduler
	stopTimer context.CancelFunc
	timerDone chan struct{}
}

func New[V any](opts ...Option) (*Cache[V], error) {
	conf := options{
		name:            DefaultName,
		defaultTTL:      DefaultTTL,
		cleanupInterval: DefaultCleanupInterval,
		reclamation:     ReclamationSweep,
		logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&conf)
	}

	if conf.defaultTTL <= 0 {
		return nil, errorchain.NewWithMessagef(ttlstore.ErrConfiguration,
			"default ttl must be positive, got %s", conf.defaultTTL)
	}

	reclamation, err := ParseReclamation(string(conf.reclamation))
	if err != nil {
		return nil, err
	}

	if reclamation == ReclamationSweep && conf.cleanupInterval <= 0 {
		return nil, errorchain.NewWithMessagef(ttlstore.ErrConfiguration,
			"cleanup interval must be positive, got %s", conf.cleanupInterval)
	}

	cch := &Cache[V]{
		name:            conf.name,
		defaultTTL:      conf.defaultTTL,
		cleanupInterval: conf.cleanupInterval,
		reclamation:     reclamation,
		generatorOpts:   conf.generatorOpts,
		logger:          conf.logger,
		deadlineChanged: make(chan struct{}, 1),
		c: ttlcache.New[string, V](
			ttlcache.WithDisableTouchOnHit[string, V](),
		),
	}

	if cch.generate, err = resolveGenerator[V](conf.generator); err != nil {
		return nil, err
	}

	if cch.m, err = newMetrics(conf.registerer, conf.name, func() float64 { return float64(cch.Len()) }); err != nil {
		return nil, err
	}

	if cch.m != nil {
		cch.c.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, _ *ttlcache.Item[string, V]) {
			cch.m.evicted(reason)
		})
	}

	return cch, nil
}

func resolveGenerator[V any](configured any) (ValueGenerator[V], error) {
	if configured != nil {
		gen, ok := configured.(ValueGenerator[V])
		if !ok {
			return nil, errorchain.NewWithMessagef(ttlstore.ErrConfiguration,
				"value generator of type %T does not match the value type of the cache", configured)
		}

		return gen, nil
	}

	// strings can always be generated
	if gen, ok := any(ValueGenerator[string](generateString)).(ValueGenerator[V]); ok {
		return gen, nil
	}

	return nil, nil
}

func generateString(opts values.Options) (string, error) { return values.Generate(opts), nil }

// Set stores value under key replacing any existing entry. Without WithTTL the entry
// lives for the default TTL of the cache.
func (c *Cache[V]) Set(key string, value V, opts ...SetOption) (string, error) {
	if len(key) == 0 {
		return "", errorchain.NewWithMessage(ttlstore.ErrArgument, "Key is required")
	}

	so := c.setOptions(opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store(key, value, so)

	return key, nil
}

// SetGenerated works like Set, but stores a value produced by the configured value generator.
func (c *Cache[V]) SetGenerated(key string, opts ...SetOption) (string, error) {
	if len(key) == 0 {
		return "", errorchain.NewWithMessage(ttlstore.ErrArgument, "Key is required")
	}

	if c.generate == nil {
		return "", errorchain.NewWithMessage(ttlstore.ErrArgument,
			"no value given and no value generator configured")
	}

	so := c.setOptions(opts)

	value, err := c.generate(so.generatorOpts.Merge(c.generatorOpts))
	if err != nil {
		return "", errorchain.NewWithMessage(ttlstore.ErrInternal, "failed to generate value").CausedBy(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store(key, value, so)

	return key, nil
}

// Get returns the value stored under key. The second return value is false if there is
// no such entry or if it has expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	item := c.lookup(key)
	c.m.request(operationGet, item != nil)

	if item == nil {
		var zero V

		return zero, false
	}

	return item.Value(), true
}

// GetInfo works like Get, but returns the deadline of the entry as well.
func (c *Cache[V]) GetInfo(key string) (Info[V], bool) {
	item := c.lookup(key)
	c.m.request(operationGetInfo, item != nil)

	if item == nil {
		return Info[V]{}, false
	}

	return Info[V]{Value: item.Value(), ExpiresAt: values.FormatDate(item.ExpiresAt())}, true
}

// Delete removes the entry stored under key, expired or not, and reports whether there
// was one.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.c.Metrics().Evictions
	c.c.Delete(key)

	return c.c.Metrics().Evictions != before
}

func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.c.DeleteAll()
}

// GetAll removes all expired entries and returns the live ones.
func (c *Cache[V]) GetAll() map[string]Info[V] {
	c.reclaim()

	now := time.Now()
	items := c.c.Items()
	result := make(map[string]Info[V], len(items))

	for key, item := range items {
		expiresAt := item.ExpiresAt()
		if !expiresAt.After(now) {
			continue
		}

		result[key] = Info[V]{Value: item.Value(), ExpiresAt: values.FormatDate(expiresAt)}
	}

	return result
}

// Keys returns the sorted keys of all live entries.
func (c *Cache[V]) Keys() []string {
	return slices.Sorted(maps.Keys(c.GetAll()))
}

// Len returns the number of held entries. Expired entries, which have not been
// reclaimed yet, are included.
func (c *Cache[V]) Len() int {
	m := c.c.Metrics()

	return int(m.Insertions - m.Evictions) // nolint: gosec
}

// Start starts the eager reclamation of expired entries. Calling it on a running
// cache has no effect.
func (c *Cache[V]) Start(_ context.Context) error {
	c.lcMu.Lock()
	defer c.lcMu.Unlock()

	if c.running {
		return nil
	}

	switch c.reclamation {
	case ReclamationSweep:
		sched, err := c.newSweeper()
		if err != nil {
			return err
		}

		sched.Start()
		c.sched = sched
	case ReclamationTimer:
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		c.stopTimer = cancel
		c.timerDone = done

		go c.expireOnDeadline(ctx, done)
	case ReclamationLazy:
	}

	c.running = true

	c.logger.Info().
		Str("_cache", c.name).
		Str("_reclamation", c.reclamation.String()).
		Msg("Cache started")

	return nil
}

// Stop stops the eager reclamation. The cache remains usable afterwards.
func (c *Cache[V]) Stop(_ context.Context) error {
	c.lcMu.Lock()
	defer c.lcMu.Unlock()

	if !c.running {
		return nil
	}

	c.running = false

	c.logger.Info().Str("_cache", c.name).Msg("Tearing down cache")

	switch c.reclamation {
	case ReclamationSweep:
		sched := c.sched
		c.sched = nil

		if err := sched.Shutdown(); err != nil {
			return errorchain.NewWithMessage(ttlstore.ErrInternal,
				"failed to stop reclamation of expired entries").CausedBy(err)
		}
	case ReclamationTimer:
		c.stopTimer()
		<-c.timerDone

		c.stopTimer = nil
		c.timerDone = nil
	case ReclamationLazy:
	}

	return nil
}

func (c *Cache[V]) setOptions(opts []SetOption) setOptions {
	var so setOptions

	for _, opt := range opts {
		opt(&so)
	}

	return so
}

// store expects c.mu to be held.
func (c *Cache[V]) store(key string, value V, so setOptions) {
	ttl := c.defaultTTL
	if so.ttl != nil {
		ttl = *so.ttl
	}

	if ttl <= 0 {
		// the deadline has already passed, so the new entry would never be observable.
		// It still replaces whatever was stored under key.
		c.c.Delete(key)

		return
	}

	c.c.Set(key, value, ttl)
	c.m.stored()

	if c.reclamation == ReclamationTimer {
		c.rearm(time.Now().Add(ttl))
	}
}

func (c *Cache[V]) lookup(key string) *ttlcache.Item[string, V] {
	item := c.c.Get(key)
	if item != nil && item.ExpiresAt().After(time.Now()) {
		return item
	}

	// Only entries past their deadline are removed here. This covers the entry for key,
	// if any, without ever touching an entry a concurrent Set has just replaced it with.
	c.reclaim()

	return nil
}

// reclaim removes all expired entries and returns their number.
func (c *Cache[V]) reclaim() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.c.Metrics().Evictions
	c.c.DeleteExpired()

	return int(c.c.Metrics().Evictions - before) // nolint: gosec
}
