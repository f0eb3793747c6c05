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
	"bufio"
	"context"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/dadrus/ttlstore/internal/cache"
	"github.com/dadrus/ttlstore/internal/ttlstore"
	"github.com/dadrus/ttlstore/internal/values"
	"github.com/dadrus/ttlstore/internal/x/errorchain"
)

const noValue = "-"

type command struct {
	usage   string
	summary string
	minArgs int
	maxArgs int
	run     func(args []string) (result, error)
}

type Option func(i *Interpreter)

func WithOutputFormat(format OutputFormat) Option {
	return func(i *Interpreter) { i.format = format }
}

// WithPrompt sets the prompt written before each line is read. No prompt is written by default.
func WithPrompt(prompt string) Option {
	return func(i *Interpreter) { i.prompt = prompt }
}

// WithGatherer enables the stats command.
func WithGatherer(gatherer prometheus.Gatherer) Option {
	return func(i *Interpreter) { i.gatherer = gatherer }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(i *Interpreter) { i.logger = logger }
}

type Interpreter struct {
	store    Store
	out      io.Writer
	format   OutputFormat
	prompt   string
	gatherer prometheus.Gatherer
	logger   zerolog.Logger
	commands map[string]command
}

func New(store Store, out io.Writer, opts ...Option) *Interpreter {
	interp := &Interpreter{
		store:  store,
		out:    out,
		format: OutputText,
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(interp)
	}

	interp.commands = map[string]command{
		"set": {
			usage:   "set KEY VALUE [TTL]",
			summary: "stores VALUE under KEY. TTL is a duration like 30s or a number of milliseconds",
			minArgs: 2, maxArgs: 3,
			run: interp.set,
		},
		"gen": {
			usage:   "gen [KEY] [TTL] [LENGTH]",
			summary: "stores a generated value. A missing KEY or - results in a random one",
			maxArgs: 3,
			run:     interp.generate,
		},
		"get":   {usage: "get KEY", summary: "prints the value stored under KEY", minArgs: 1, maxArgs: 1, run: interp.get},
		"info":  {usage: "info KEY", summary: "prints the value and the expiration of KEY", minArgs: 1, maxArgs: 1, run: interp.info},
		"del":   {usage: "del KEY", summary: "deletes KEY", minArgs: 1, maxArgs: 1, run: interp.del},
		"clear": {usage: "clear", summary: "deletes all entries", run: interp.clear},
		"list":  {usage: "list", summary: "prints all live entries", run: interp.list},
		"keys":  {usage: "keys", summary: "prints all live keys", run: interp.keys},
		"len":   {usage: "len", summary: "prints the number of held entries", run: interp.count},
		"stats": {usage: "stats", summary: "prints the cache metrics", run: interp.stats},
		"help":  {usage: "help", summary: "prints this help", run: interp.help},
	}

	return interp
}

// Run executes the lines read from in until in is exhausted, ctx is done or
// exit or quit is read. Only failures to write the output end it with an error.
func (i *Interpreter) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for ctx.Err() == nil {
		if len(i.prompt) != 0 {
			if _, err := io.WriteString(i.out, i.prompt); err != nil {
				return err
			}
		}

		if !scanner.Scan() {
			break
		}

		done, err := i.Execute(scanner.Text())
		if err != nil || done {
			return err
		}
	}

	return scanner.Err()
}

// Execute executes a single line and reports whether the session should end.
func (i *Interpreter) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false, nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	if name == "exit" || name == "quit" {
		return true, nil
	}

	cmd, ok := i.commands[name]
	if !ok {
		return false, writeError(i.out, i.format,
			errorchain.NewWithMessagef(ttlstore.ErrArgument, "unknown command '%s', try help", name))
	}

	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return false, writeError(i.out, i.format,
			errorchain.NewWithMessagef(ttlstore.ErrArgument, "usage: %s", cmd.usage))
	}

	res, err := cmd.run(args)
	if err != nil {
		i.logger.Debug().Err(err).Str("_command", name).Msg("Command failed")

		return false, writeError(i.out, i.format, err)
	}

	return false, write(i.out, i.format, res)
}

func (i *Interpreter) set(args []string) (result, error) {
	opts, err := ttlOptions(args, 2) // nolint: mnd
	if err != nil {
		return nil, err
	}

	key, err := i.store.Set(args[0], args[1], opts...)
	if err != nil {
		return nil, err
	}

	return keyResult{Key: key}, nil
}

func (i *Interpreter) generate(args []string) (result, error) {
	key := argAt(args, 0)
	if len(key) == 0 {
		key = uuid.NewString()
	}

	opts, err := ttlOptions(args, 1)
	if err != nil {
		return nil, err
	}

	if length := argAt(args, 2); len(length) != 0 { // nolint: mnd
		size, err := strconv.Atoi(length)
		if err != nil || size <= 0 {
			return nil, errorchain.NewWithMessagef(ttlstore.ErrArgument,
				"invalid length '%s', a positive number is expected", length)
		}

		opts = append(opts, cache.WithGenerator(values.Options{Length: size}))
	}

	if key, err = i.store.SetGenerated(key, opts...); err != nil {
		return nil, err
	}

	return i.info([]string{key})
}

func (i *Interpreter) get(args []string) (result, error) {
	value, ok := i.store.Get(args[0])
	if !ok {
		return missResult{Key: args[0]}, nil
	}

	return entryResult{Key: args[0], Value: value}, nil
}

func (i *Interpreter) info(args []string) (result, error) {
	info, ok := i.store.GetInfo(args[0])
	if !ok {
		return missResult{Key: args[0]}, nil
	}

	return entryResult{Key: args[0], Value: info.Value, ExpiresAt: info.ExpiresAt}, nil
}

func (i *Interpreter) del(args []string) (result, error) {
	return deleteResult{Key: args[0], Deleted: i.store.Delete(args[0])}, nil
}

func (i *Interpreter) clear(_ []string) (result, error) {
	i.store.Clear()

	return messageResult{Message: "OK"}, nil
}

func (i *Interpreter) list(_ []string) (result, error) {
	all := i.store.GetAll()
	entries := make(listResult, 0, len(all))

	for key, info := range all {
		entries = append(entries, entryResult{Key: key, Value: info.Value, ExpiresAt: info.ExpiresAt})
	}

	slices.SortFunc(entries, func(a, b entryResult) int { return strings.Compare(a.Key, b.Key) })

	return entries, nil
}

func (i *Interpreter) keys(_ []string) (result, error) {
	return keysResult(i.store.Keys()), nil
}

func (i *Interpreter) count(_ []string) (result, error) {
	return countResult{Count: i.store.Len()}, nil
}

func (i *Interpreter) stats(_ []string) (result, error) {
	if i.gatherer == nil {
		return nil, errorchain.NewWithMessage(ttlstore.ErrArgument, "metrics are not enabled")
	}

	return gatherStats(i.gatherer)
}

func (i *Interpreter) help(_ []string) (result, error) {
	lines := make([]string, 0, len(i.commands)+1)

	for _, name := range slices.Sorted(maps.Keys(i.commands)) {
		cmd := i.commands[name]
		lines = append(lines, cmd.usage+"\n    "+cmd.summary)
	}

	lines = append(lines, "exit\n    ends the session")

	return messageResult{Message: strings.Join(lines, "\n")}, nil
}

func argAt(args []string, idx int) string {
	if idx >= len(args) || args[idx] == noValue {
		return ""
	}

	return args[idx]
}

func ttlOptions(args []string, idx int) ([]cache.SetOption, error) {
	value := argAt(args, idx)
	if len(value) == 0 {
		return nil, nil
	}

	ttl, err := parseTTL(value)
	if err != nil {
		return nil, err
	}

	return []cache.SetOption{cache.WithTTL(ttl)}, nil
}

// parseTTL accepts durations like 1m30s and plain numbers of milliseconds.
const maxTTLMillis = math.MaxInt64 / int64(time.Millisecond)

func parseTTL(value string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		if ms > maxTTLMillis || ms < -maxTTLMillis {
			return 0, errorchain.NewWithMessagef(ttlstore.ErrArgument,
				"ttl '%s' is out of range, at most %d milliseconds are supported", value, maxTTLMillis)
		}

		return time.Duration(ms) * time.Millisecond, nil
	}

	ttl, err := time.ParseDuration(value)
	if err != nil {
		return 0, errorchain.NewWithMessagef(ttlstore.ErrArgument,
			"invalid ttl '%s', a duration like 30s or a number of milliseconds is expected", value)
	}

	return ttl, nil
}
