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
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/ttlstore/internal/ttlstore"
	"github.com/dadrus/ttlstore/internal/values"
	"github.com/dadrus/ttlstore/internal/x/pointer"
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc     string
		opts   []Option
		assert func(t *testing.T, err error, cch *Cache[string])
	}{
		{
			uc: "with defaults",
			assert: func(t *testing.T, err error, cch *Cache[string]) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, DefaultName, cch.name)
				assert.Equal(t, DefaultTTL, cch.defaultTTL)
				assert.Equal(t, DefaultCleanupInterval, cch.cleanupInterval)
				assert.Equal(t, ReclamationSweep, cch.reclamation)
				assert.NotNil(t, cch.generate)
				assert.Nil(t, cch.m)
			},
		},
		{
			uc: "with custom settings",
			opts: []Option{
				WithName("tokens"),
				WithDefaultTTL(10 * time.Second),
				WithReclamation(ReclamationTimer),
				WithCleanupInterval(0),
			},
			assert: func(t *testing.T, err error, cch *Cache[string]) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "tokens", cch.name)
				assert.Equal(t, 10*time.Second, cch.defaultTTL)
				assert.Equal(t, ReclamationTimer, cch.reclamation)
			},
		},
		{
			uc:   "with non positive default ttl",
			opts: []Option{WithDefaultTTL(0)},
			assert: func(t *testing.T, err error, _ *Cache[string]) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, ttlstore.ErrConfiguration)
				assert.Contains(t, err.Error(), "default ttl")
			},
		},
		{
			uc:   "with non positive cleanup interval for sweep reclamation",
			opts: []Option{WithCleanupInterval(-time.Second)},
			assert: func(t *testing.T, err error, _ *Cache[string]) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, ttlstore.ErrConfiguration)
				assert.Contains(t, err.Error(), "cleanup interval")
			},
		},
		{
			uc:   "with unsupported reclamation",
			opts: []Option{WithReclamation("foo")},
			assert: func(t *testing.T, err error, _ *Cache[string]) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, ttlstore.ErrConfiguration)
				assert.Contains(t, err.Error(), "foo")
			},
		},
		{
			uc: "with value generator of wrong type",
			opts: []Option{
				WithValueGenerator(func(_ values.Options) (int, error) { return 1, nil }),
			},
			assert: func(t *testing.T, err error, _ *Cache[string]) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, ttlstore.ErrConfiguration)
			},
		},
		{
			uc:   "with metrics",
			opts: []Option{WithMetrics(prometheus.NewRegistry())},
			assert: func(t *testing.T, err error, cch *Cache[string]) {
				t.Helper()

				require.NoError(t, err)
				assert.NotNil(t, cch.m)
			},
		},
	} {
		t.Run("case="+tc.uc, func(t *testing.T) {
			t.Parallel()

			// WHEN
			cch, err := New[string](tc.opts...)

			// THEN
			tc.assert(t, err, cch)
		})
	}
}

func TestCacheSetAndGet(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc             string
		key            string
		configureCache func(t *testing.T, cch *Cache[string])
		assert         func(t *testing.T, value string, ok bool)
	}{
		{
			uc:  "can retrieve not expired value",
			key: "foo",
			configureCache: func(t *testing.T, cch *Cache[string]) {
				t.Helper()

				_, err := cch.Set("foo", "bar")
				require.NoError(t, err)
			},
			assert: func(t *testing.T, value string, ok bool) {
				t.Helper()

				assert.True(t, ok)
				assert.Equal(t, "bar", value)
			},
		},
		{
			uc:  "cannot retrieve expired value",
			key: "bar",
			configureCache: func(t *testing.T, cch *Cache[string]) {
				t.Helper()

				_, err := cch.Set("bar", "baz", WithTTL(50*time.Millisecond))
				require.NoError(t, err)

				time.Sleep(150 * time.Millisecond)
			},
			assert: func(t *testing.T, value string, ok bool) {
				t.Helper()

				assert.False(t, ok)
				assert.Empty(t, value)
			},
		},
		{
			uc:  "cannot retrieve deleted value",
			key: "baz",
			configureCache: func(t *testing.T, cch *Cache[string]) {
				t.Helper()

				_, err := cch.Set("baz", "bar")
				require.NoError(t, err)

				assert.True(t, cch.Delete("baz"))
			},
			assert: func(t *testing.T, value string, ok bool) {
				t.Helper()

				assert.False(t, ok)
				assert.Empty(t, value)
			},
		},
		{
			uc:  "cannot retrieve not existing value",
			key: "baz",
			configureCache: func(t *testing.T, _ *Cache[string]) {
				t.Helper()
			},
			assert: func(t *testing.T, value string, ok bool) {
				t.Helper()

				assert.False(t, ok)
				assert.Empty(t, value)
			},
		},
		{
			uc:  "can retrieve empty value",
			key: "empty",
			configureCache: func(t *testing.T, cch *Cache[string]) {
				t.Helper()

				_, err := cch.Set("empty", "")
				require.NoError(t, err)
			},
			assert: func(t *testing.T, value string, ok bool) {
				t.Helper()

				assert.True(t, ok)
				assert.Empty(t, value)
			},
		},
		{
			uc:  "cannot retrieve value set with zero ttl",
			key: "zero",
			configureCache: func(t *testing.T, cch *Cache[string]) {
				t.Helper()

				_, err := cch.Set("zero", "foo", WithTTL(0))
				require.NoError(t, err)
			},
			assert: func(t *testing.T, value string, ok bool) {
				t.Helper()

				assert.False(t, ok)
				assert.Empty(t, value)
			},
		},
		{
			uc:  "zero ttl replaces existing entry",
			key: "replaced",
			configureCache: func(t *testing.T, cch *Cache[string]) {
				t.Helper()

				_, err := cch.Set("replaced", "foo")
				require.NoError(t, err)

				_, err = cch.Set("replaced", "bar", WithTTL(-time.Second))
				require.NoError(t, err)
			},
			assert: func(t *testing.T, value string, ok bool) {
				t.Helper()

				assert.False(t, ok)
				assert.Empty(t, value)
			},
		},
		{
			uc:  "latest set wins",
			key: "overwritten",
			configureCache: func(t *testing.T, cch *Cache[string]) {
				t.Helper()

				_, err := cch.Set("overwritten", "foo")
				require.NoError(t, err)

				_, err = cch.Set("overwritten", "bar")
				require.NoError(t, err)
			},
			assert: func(t *testing.T, value string, ok bool) {
				t.Helper()

				assert.True(t, ok)
				assert.Equal(t, "bar", value)
			},
		},
	} {
		t.Run("case="+tc.uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			cch, err := New[string](WithReclamation(ReclamationLazy))
			require.NoError(t, err)

			tc.configureCache(t, cch)

			// WHEN
			value, ok := cch.Get(tc.key)

			// THEN
			tc.assert(t, value, ok)
		})
	}
}

func TestCacheSetWithoutKey(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string]()
	require.NoError(t, err)

	// WHEN
	_, errSet := cch.Set("", "foo")
	_, errGen := cch.SetGenerated("")

	// THEN
	for _, err := range []error{errSet, errGen} {
		require.Error(t, err)
		require.ErrorIs(t, err, ttlstore.ErrArgument)
		assert.Contains(t, err.Error(), "Key is required")
	}

	assert.Zero(t, cch.Len())
}

func TestCacheSetReturnsKey(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string]()
	require.NoError(t, err)

	key := uuid.NewString()

	// WHEN
	stored, err := cch.Set(key, "foo")

	// THEN
	require.NoError(t, err)
	assert.Equal(t, key, stored)
}

func TestCacheSetGenerated(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc      string
		opts    []Option
		setOpts []SetOption
		assert  func(t *testing.T, value string)
	}{
		{
			uc: "with defaults",
			assert: func(t *testing.T, value string) {
				t.Helper()

				assert.Len(t, value, values.DefaultLength)
			},
		},
		{
			uc:   "with cache wide generator options",
			opts: []Option{WithGeneratorOptions(values.Options{Length: 16, Letters: pointer.To(false), SpecialChars: pointer.To(false)})},
			assert: func(t *testing.T, value string) {
				t.Helper()

				assert.Regexp(t, `^[0-9]{16}$`, value)
			},
		},
		{
			uc:      "with per call generator options",
			opts:    []Option{WithGeneratorOptions(values.Options{Length: 16, Letters: pointer.To(false), SpecialChars: pointer.To(false)})},
			setOpts: []SetOption{WithGenerator(values.Options{Length: 4})},
			assert: func(t *testing.T, value string) {
				t.Helper()

				assert.Regexp(t, `^[0-9]{4}$`, value)
			},
		},
		{
			uc: "with custom generator",
			opts: []Option{
				WithValueGenerator(func(opts values.Options) (string, error) {
					return "fixed-" + strconv.Itoa(opts.Length), nil
				}),
				WithGeneratorOptions(values.Options{Length: 3}),
			},
			assert: func(t *testing.T, value string) {
				t.Helper()

				assert.Equal(t, "fixed-3", value)
			},
		},
	} {
		t.Run("case="+tc.uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			cch, err := New[string](tc.opts...)
			require.NoError(t, err)

			// WHEN
			key, err := cch.SetGenerated("foo", tc.setOpts...)

			// THEN
			require.NoError(t, err)
			assert.Equal(t, "foo", key)

			value, ok := cch.Get("foo")
			require.True(t, ok)
			tc.assert(t, value)
		})
	}
}

func TestCacheSetGeneratedWithFailingGenerator(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string](WithValueGenerator(func(_ values.Options) (string, error) {
		return "", errors.New("test error")
	}))
	require.NoError(t, err)

	// WHEN
	_, err = cch.SetGenerated("foo")

	// THEN
	require.Error(t, err)
	require.ErrorIs(t, err, ttlstore.ErrInternal)
	assert.Contains(t, err.Error(), "test error")
	assert.Zero(t, cch.Len())
}

func TestCacheWithNonStringValues(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[int]()
	require.NoError(t, err)

	// WHEN
	_, errGen := cch.SetGenerated("foo")
	_, errSet := cch.Set("bar", 0)

	// THEN
	require.Error(t, errGen)
	require.ErrorIs(t, errGen, ttlstore.ErrArgument)

	require.NoError(t, errSet)

	value, ok := cch.Get("bar")
	assert.True(t, ok)
	assert.Equal(t, 0, value)

	// WHEN
	cch, err = New[int](WithValueGenerator(func(opts values.Options) (int, error) { return opts.Length, nil }))
	require.NoError(t, err)

	_, err = cch.SetGenerated("foo", WithGenerator(values.Options{Length: 42}))

	// THEN
	require.NoError(t, err)

	value, ok = cch.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, value)
}

func TestCacheGetInfo(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string]()
	require.NoError(t, err)

	_, err = cch.Set("foo", "bar", WithTTL(time.Hour))
	require.NoError(t, err)

	// WHEN
	info, ok := cch.GetInfo("foo")
	_, missing := cch.GetInfo("bar")

	// THEN
	require.True(t, ok)
	assert.False(t, missing)
	assert.Equal(t, "bar", info.Value)
	assert.Regexp(t, `^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}$`, info.ExpiresAt)

	expiresAt, err := time.ParseInLocation(values.DateLayout, info.ExpiresAt, time.Local)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 2*time.Second)
}

func TestCacheReadDoesNotExtendDeadline(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string](WithReclamation(ReclamationLazy))
	require.NoError(t, err)

	_, err = cch.Set("foo", "bar", WithTTL(200*time.Millisecond))
	require.NoError(t, err)

	// WHEN
	for range 3 {
		_, ok := cch.Get("foo")
		require.True(t, ok)

		time.Sleep(50 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	// THEN
	_, ok := cch.Get("foo")
	assert.False(t, ok)
}

func TestCacheDelete(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string](WithReclamation(ReclamationLazy))
	require.NoError(t, err)

	_, err = cch.Set("foo", "bar")
	require.NoError(t, err)

	_, err = cch.Set("expired", "bar", WithTTL(20*time.Millisecond))
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	// WHEN & THEN
	assert.True(t, cch.Delete("foo"))
	assert.False(t, cch.Delete("foo"))
	assert.False(t, cch.Delete("bar"))
	require.Equal(t, 1, cch.Len())
	assert.True(t, cch.Delete("expired"))
	assert.False(t, cch.Delete("expired"))
	assert.Zero(t, cch.Len())
}

func TestCacheClear(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string]()
	require.NoError(t, err)

	for i := range 10 {
		_, err = cch.Set("key-"+strconv.Itoa(i), "value")
		require.NoError(t, err)
	}

	require.Equal(t, 10, cch.Len())

	// WHEN
	cch.Clear()

	// THEN
	assert.Zero(t, cch.Len())
	assert.Empty(t, cch.GetAll())

	// the cache stays usable
	_, err = cch.Set("foo", "bar")
	require.NoError(t, err)

	value, ok := cch.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, "bar", value)
}

func TestCacheGetAll(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string](WithReclamation(ReclamationLazy))
	require.NoError(t, err)

	_, err = cch.Set("a", "1", WithTTL(100*time.Millisecond))
	require.NoError(t, err)

	_, err = cch.Set("b", "2", WithTTL(time.Minute))
	require.NoError(t, err)

	// WHEN
	all := cch.GetAll()

	// THEN
	require.Len(t, all, 2)
	assert.Equal(t, "1", all["a"].Value)
	assert.Equal(t, "2", all["b"].Value)
	assert.NotEmpty(t, all["a"].ExpiresAt)

	// WHEN
	time.Sleep(200 * time.Millisecond)

	all = cch.GetAll()

	// THEN
	require.Len(t, all, 1)
	assert.Contains(t, all, "b")
	assert.Equal(t, "2", all["b"].Value)
	assert.Regexp(t, `^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}$`, all["b"].ExpiresAt)
	assert.Equal(t, 1, cch.Len())
	assert.Equal(t, []string{"b"}, cch.Keys())
}

func TestCacheKeys(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string]()
	require.NoError(t, err)

	for _, key := range []string{"c", "a", "b"} {
		_, err = cch.Set(key, key)
		require.NoError(t, err)
	}

	// WHEN
	keys := cch.Keys()

	// THEN
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestCacheLazyRemoval(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string](WithReclamation(ReclamationLazy))
	require.NoError(t, err)

	_, err = cch.Set("foo", "bar", WithTTL(20*time.Millisecond))
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	// expired, but not yet reclaimed
	require.Equal(t, 1, cch.Len())

	// WHEN
	_, ok := cch.Get("foo")

	// THEN
	assert.False(t, ok)
	assert.Zero(t, cch.Len())
}

func TestCacheOverwriteIsNotAffectedByEarlierDeadline(t *testing.T) {
	t.Parallel()

	for _, reclamation := range []Reclamation{ReclamationSweep, ReclamationTimer, ReclamationLazy} {
		t.Run("reclamation="+reclamation.String(), func(t *testing.T) {
			t.Parallel()

			// GIVEN
			cch, err := New[string](
				WithReclamation(reclamation),
				WithCleanupInterval(20*time.Millisecond),
			)
			require.NoError(t, err)

			require.NoError(t, cch.Start(t.Context()))
			t.Cleanup(func() { _ = cch.Stop(context.Background()) })

			_, err = cch.Set("foo", "old", WithTTL(50*time.Millisecond))
			require.NoError(t, err)

			// WHEN
			_, err = cch.Set("foo", "new", WithTTL(time.Minute))
			require.NoError(t, err)

			time.Sleep(150 * time.Millisecond)

			// THEN
			value, ok := cch.Get("foo")
			assert.True(t, ok)
			assert.Equal(t, "new", value)
		})
	}
}

func TestCacheEagerReclamation(t *testing.T) {
	t.Parallel()

	for _, reclamation := range []Reclamation{ReclamationSweep, ReclamationTimer} {
		t.Run("reclamation="+reclamation.String(), func(t *testing.T) {
			t.Parallel()

			// GIVEN
			cch, err := New[string](
				WithReclamation(reclamation),
				WithCleanupInterval(20*time.Millisecond),
				WithMetrics(prometheus.NewRegistry()),
			)
			require.NoError(t, err)

			require.NoError(t, cch.Start(t.Context()))
			t.Cleanup(func() { _ = cch.Stop(context.Background()) })

			// WHEN
			_, err = cch.Set("foo", "bar", WithTTL(30*time.Millisecond))
			require.NoError(t, err)

			_, err = cch.Set("baz", "bar", WithTTL(time.Minute))
			require.NoError(t, err)

			require.Equal(t, 2, cch.Len())

			// THEN
			// nothing reads the entries, so only the reclamation can remove the expired one
			assert.Eventually(t, func() bool { return cch.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
			assert.Eventually(t, func() bool {
				return testutil.ToFloat64(cch.m.reclaimed.WithLabelValues(reasonExpired)) == 1
			}, time.Second, 10*time.Millisecond)

			_, ok := cch.Get("baz")
			assert.True(t, ok)
		})
	}
}

func TestCacheTimerReclamationAfterRestart(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string](WithReclamation(ReclamationTimer))
	require.NoError(t, err)

	ctx := t.Context()

	require.NoError(t, cch.Start(ctx))
	require.NoError(t, cch.Stop(ctx))

	// set while stopped, so no running loop has seen these deadlines
	_, err = cch.Set("foo", "bar", WithTTL(30*time.Millisecond))
	require.NoError(t, err)

	_, err = cch.Set("baz", "bar", WithTTL(80*time.Millisecond))
	require.NoError(t, err)

	// WHEN
	require.NoError(t, cch.Start(ctx))
	t.Cleanup(func() { _ = cch.Stop(context.Background()) })

	// THEN
	assert.Eventually(t, func() bool { return cch.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestCacheStartStop(t *testing.T) {
	t.Parallel()

	for _, reclamation := range []Reclamation{ReclamationSweep, ReclamationTimer, ReclamationLazy} {
		t.Run("reclamation="+reclamation.String(), func(t *testing.T) {
			t.Parallel()

			// GIVEN
			cch, err := New[string](WithReclamation(reclamation))
			require.NoError(t, err)

			ctx := t.Context()

			// WHEN & THEN
			require.NoError(t, cch.Stop(ctx))
			require.NoError(t, cch.Start(ctx))
			require.NoError(t, cch.Start(ctx))
			require.NoError(t, cch.Stop(ctx))
			require.NoError(t, cch.Stop(ctx))

			// can be restarted
			require.NoError(t, cch.Start(ctx))
			require.NoError(t, cch.Stop(ctx))

			// stopping right after starting does not block
			for range 50 {
				require.NoError(t, cch.Start(ctx))
				require.NoError(t, cch.Stop(ctx))
			}

			// and is still usable
			_, err = cch.Set("foo", "bar")
			require.NoError(t, err)

			value, ok := cch.Get("foo")
			assert.True(t, ok)
			assert.Equal(t, "bar", value)
		})
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	t.Parallel()

	// GIVEN
	cch, err := New[string](WithReclamation(ReclamationTimer))
	require.NoError(t, err)

	require.NoError(t, cch.Start(t.Context()))
	t.Cleanup(func() { _ = cch.Stop(context.Background()) })

	var wg sync.WaitGroup

	// WHEN
	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			key := "key-" + strconv.Itoa(i)

			for range 100 {
				_, _ = cch.Set(key, "short", WithTTL(time.Millisecond))
				_, _ = cch.Set(key, "long", WithTTL(time.Minute))
				_, _ = cch.Get(key)
				_ = cch.GetAll()
			}
		}()
	}

	wg.Wait()

	// THEN
	for i := range 8 {
		value, ok := cch.Get("key-" + strconv.Itoa(i))
		assert.True(t, ok)
		assert.Equal(t, "long", value)
	}
}

func TestCacheMetrics(t *testing.T) {
	t.Parallel()

	// GIVEN
	reg := prometheus.NewRegistry()

	cch, err := New[string](WithName("test"), WithMetrics(reg), WithReclamation(ReclamationLazy))
	require.NoError(t, err)

	// WHEN
	_, err = cch.Set("foo", "bar")
	require.NoError(t, err)

	_, err = cch.Set("baz", "bar")
	require.NoError(t, err)

	cch.Get("foo")
	cch.Get("bar")
	cch.GetInfo("foo")
	cch.Delete("foo")

	// THEN
	assert.InDelta(t, 2, testutil.ToFloat64(cch.m.requests.WithLabelValues(operationSet, "stored")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(cch.m.requests.WithLabelValues(operationGet, resultHit)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(cch.m.requests.WithLabelValues(operationGet, resultMiss)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(cch.m.requests.WithLabelValues(operationGetInfo, resultHit)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(cch.m.entries), 0)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(cch.m.reclaimed.WithLabelValues(reasonDeleted)) == 1
	}, time.Second, 10*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "ttlstore_cache_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	// WHEN
	_, err = New[string](WithName("test"), WithMetrics(reg))

	// THEN
	require.Error(t, err)
	require.ErrorIs(t, err, ttlstore.ErrConfiguration)
}
