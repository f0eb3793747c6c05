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
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dadrus/ttlstore/internal/ttlstore"
	"github.com/dadrus/ttlstore/internal/x/errorchain"
)

type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

func ParseOutputFormat(value string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(value)); f {
	case OutputText, OutputJSON, OutputYAML:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", errorchain.NewWithMessagef(ttlstore.ErrArgument,
			"unsupported output format '%s'", value)
	}
}

// result is the outcome of a command. Its text form is used for the text output,
// everything else renders the result itself.
type result interface {
	text() string
}

type entryResult struct {
	Key       string `json:"key"                 yaml:"key"`
	Value     string `json:"value"               yaml:"value"`
	ExpiresAt string `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
}

func (r entryResult) text() string {
	if len(r.ExpiresAt) == 0 {
		return r.Value
	}

	return r.Value + " (expires at " + r.ExpiresAt + ")"
}

type missResult struct {
	Key   string `json:"key"   yaml:"key"`
	Found bool   `json:"found" yaml:"found"`
}

func (missResult) text() string { return "(nil)" }

type keyResult struct {
	Key string `json:"key" yaml:"key"`
}

func (r keyResult) text() string { return r.Key }

type deleteResult struct {
	Key     string `json:"key"     yaml:"key"`
	Deleted bool   `json:"deleted" yaml:"deleted"`
}

func (r deleteResult) text() string { return strconv.FormatBool(r.Deleted) }

type countResult struct {
	Count int `json:"count" yaml:"count"`
}

func (r countResult) text() string { return strconv.Itoa(r.Count) }

type messageResult struct {
	Message string `json:"message" yaml:"message"`
}

func (r messageResult) text() string { return r.Message }

type listResult []entryResult

func (r listResult) text() string {
	if len(r) == 0 {
		return "(empty)"
	}

	lines := make([]string, len(r))
	for i, e := range r {
		lines[i] = e.Key + ": " + e.text()
	}

	return strings.Join(lines, "\n")
}

type keysResult []string

func (r keysResult) text() string {
	if len(r) == 0 {
		return "(empty)"
	}

	return strings.Join(r, "\n")
}

type metricSample struct {
	Name   string            `json:"name"             yaml:"name"`
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Value  float64           `json:"value"            yaml:"value"`
}

type statsResult []metricSample

func (r statsResult) text() string {
	if len(r) == 0 {
		return "(empty)"
	}

	lines := make([]string, len(r))
	for i, s := range r {
		lines[i] = s.Name + formatLabels(s.Labels) + " " + strconv.FormatFloat(s.Value, 'f', -1, 64)
	}

	return strings.Join(lines, "\n")
}

type errorResult struct {
	Error string `json:"error" yaml:"error"`
}

func write(out io.Writer, format OutputFormat, res result) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case OutputJSON:
		data, err = json.Marshal(res)
		data = append(data, '\n')
	case OutputYAML:
		data, err = yaml.Marshal(res)
		data = append([]byte("---\n"), data...)
	default:
		data = []byte(res.text() + "\n")
	}

	if err != nil {
		return errorchain.NewWithMessage(ttlstore.ErrInternal, "failed to render result").CausedBy(err)
	}

	_, err = out.Write(data)

	return err
}

func writeError(out io.Writer, format OutputFormat, cause error) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case OutputJSON:
		var chain *errorchain.ErrorChain
		if errors.As(cause, &chain) {
			data, err = json.Marshal(chain)
		} else {
			data, err = json.Marshal(errorResult{Error: cause.Error()})
		}

		data = append(data, '\n')
	case OutputYAML:
		data, err = yaml.Marshal(errorResult{Error: cause.Error()})
		data = append([]byte("---\n"), data...)
	default:
		data = []byte("ERR " + cause.Error() + "\n")
	}

	if err != nil {
		return errorchain.NewWithMessage(ttlstore.ErrInternal, "failed to render error").CausedBy(err)
	}

	_, err = out.Write(data)

	return err
}
