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

package session

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/dadrus/ttlstore/cmd/flags"
	"github.com/dadrus/ttlstore/internal/ttlstore"
)

const testEnvPrefix = "TTLSTORE_SESSION_TEST_"

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "ttlstore.yaml")
	require.NoError(t, os.WriteFile(file, []byte(contents), 0o600))

	return file
}

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := NewShellCommand()
	flags.RegisterGlobalFlags(cmd)
	cmd.SetContext(t.Context())

	require.NoError(t, cmd.ParseFlags(append([]string{"--" + flags.EnvironmentConfigPrefix, testEnvPrefix}, args...)))

	return cmd
}

func TestCreateApp(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc     string
		config string
		assert func(t *testing.T, err error, app *fx.App)
	}{
		{
			uc:     "valid configuration",
			config: "log:\n  level: error\ncache:\n  reclamation: lazy\n",
			assert: func(t *testing.T, err error, app *fx.App) {
				t.Helper()

				require.NoError(t, err)
				require.NotNil(t, app)
			},
		},
		{
			uc:     "invalid configuration",
			config: "cache:\n  reclamation: eventually\n",
			assert: func(t *testing.T, err error, _ *fx.App) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, ttlstore.ErrConfiguration)
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			cmd := newTestCommand(t, "--"+flags.Config, writeConfig(t, tc.config))

			// WHEN
			app, err := createApp(cmd, fx.Options())

			// THEN
			tc.assert(t, err, app)
		})
	}
}

func TestRunShell(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc     string
		config string
		args   []string
		script string
		assert func(t *testing.T, err error, out string)
	}{
		{
			uc:     "text output",
			config: "log:\n  level: error\ncache:\n  reclamation: lazy\n",
			script: "set foo bar\nget foo\nlen\nexit\n",
			assert: func(t *testing.T, err error, out string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "foo\nbar\n1\n", out)
			},
		},
		{
			uc:     "json output with prompt",
			config: "log:\n  level: error\ncache:\n  reclamation: timer\n",
			args:   []string{"-o", "json", "--" + flags.Prompt, "> "},
			script: "set foo bar\n",
			assert: func(t *testing.T, err error, out string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "> {\"key\":\"foo\"}\n> ", out)
			},
		},
		{
			uc:     "stats with metrics enabled",
			config: "log:\n  level: error\ncache:\n  metrics: true\n",
			script: "set foo bar\nstats\n",
			assert: func(t *testing.T, err error, out string) {
				t.Helper()

				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(out, "foo\n"))
				assert.Contains(t, out, `ttlstore_cache_entries{cache="default"} 1`)
				assert.NotContains(t, out, "go_goroutines")
			},
		},
		{
			uc:     "stats with metrics disabled",
			config: "log:\n  level: error\n",
			script: "stats\n",
			assert: func(t *testing.T, err error, out string) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "ERR argument error: metrics are not enabled\n", out)
			},
		},
		{
			uc:     "unsupported output format",
			config: "log:\n  level: error\n",
			args:   []string{"-o", "xml"},
			assert: func(t *testing.T, err error, _ string) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, ttlstore.ErrArgument)
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			var out bytes.Buffer

			cmd := newTestCommand(t, append([]string{"--" + flags.Config, writeConfig(t, tc.config)}, tc.args...)...)
			cmd.SetIn(strings.NewReader(tc.script))
			cmd.SetOut(&out)

			// WHEN
			err := runShell(cmd)

			// THEN
			tc.assert(t, err, out.String())
		})
	}
}
