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
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/dadrus/ttlstore/internal/ttlstore"
	"github.com/dadrus/ttlstore/internal/x/errorchain"
)

// Reclamation defines how expired entries are removed without being accessed.
// Lazy removal on read happens regardless of the chosen strategy.
type Reclamation string

const (
	// ReclamationSweep removes all expired entries on a fixed interval.
	ReclamationSweep Reclamation = "sweep"
	// ReclamationTimer removes each entry when its deadline is reached.
	ReclamationTimer Reclamation = "timer"
	// ReclamationLazy relies on the removal on read only.
	ReclamationLazy Reclamation = "lazy"
)

func (r Reclamation) String() string { return string(r) }

func ParseReclamation(value string) (Reclamation, error) {
	switch r := Reclamation(value); r {
	case ReclamationSweep, ReclamationTimer, ReclamationLazy:
		return r, nil
	case "":
		return ReclamationSweep, nil
	default:
		return "", errorchain.NewWithMessagef(ttlstore.ErrConfiguration,
			"unsupported reclamation strategy '%s'", value)
	}
}

type schedulerLogger struct {
	l zerolog.Logger
}

func (s schedulerLogger) Debug(msg string, args ...any) { s.l.Debug().Fields(args).Msg(msg) }

func (s schedulerLogger) Info(msg string, args ...any) { s.l.Debug().Fields(args).Msg(msg) }

func (s schedulerLogger) Warn(msg string, args ...any) { s.l.Warn().Fields(args).Msg(msg) }

func (s schedulerLogger) Error(msg string, args ...any) { s.l.Error().Fields(args).Msg(msg) }

func (c *Cache[V]) newSweeper() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLogger(schedulerLogger{l: c.logger}))
	if err != nil {
		return nil, errorchain.NewWithMessage(ttlstore.ErrInternal,
			"failed to create scheduler for expired entries").CausedBy(err)
	}

	if _, err = sched.NewJob(
		gocron.DurationJob(c.cleanupInterval),
		gocron.NewTask(c.sweep),
		gocron.WithName("sweep-"+c.name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		_ = sched.Shutdown()

		return nil, errorchain.NewWithMessage(ttlstore.ErrInternal,
			"failed to schedule removal of expired entries").CausedBy(err)
	}

	return sched, nil
}

func (c *Cache[V]) sweep() {
	c.logger.Debug().
		Str("_cache", c.name).
		Int("_removed", c.reclaim()).
		Msg("Expired entries reclaimed")
}

// idleWait is used while there is no deadline to wait for. Any new one wakes the
// loop up earlier.
const idleWait = time.Hour

func (c *Cache[V]) expireOnDeadline(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(c.untilNextDeadline())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.deadlineChanged:
		case <-timer.C:
			if removed := c.reclaim(); removed > 0 {
				c.logger.Debug().
					Str("_cache", c.name).
					Int("_removed", removed).
					Msg("Expired entries reclaimed")
			}
		}

		timer.Reset(c.untilNextDeadline())
	}
}

func (c *Cache[V]) untilNextDeadline() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.c.Items()
	if c.Len() > len(items) {
		// expired entries are still held
		return 0
	}

	var next time.Time

	for _, item := range items {
		if next.IsZero() || item.ExpiresAt().Before(next) {
			next = item.ExpiresAt()
		}
	}

	c.armedAt = next
	if next.IsZero() {
		return idleWait
	}

	return time.Until(next)
}

// rearm wakes the timer loop up if deadline is earlier than the one it waits for.
// It expects c.mu to be held.
func (c *Cache[V]) rearm(deadline time.Time) {
	if !c.armedAt.IsZero() && !deadline.Before(c.armedAt) {
		return
	}

	c.armedAt = deadline

	select {
	case c.deadlineChanged <- struct{}{}:
	default:
	}
}
