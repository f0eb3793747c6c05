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

package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGelfLevel(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc       string
		level    zerolog.Level
		expected int8
	}{
		{uc: "trace", level: zerolog.TraceLevel, expected: 7},
		{uc: "debug", level: zerolog.DebugLevel, expected: 7},
		{uc: "info", level: zerolog.InfoLevel, expected: 6},
		{uc: "warn", level: zerolog.WarnLevel, expected: 4},
		{uc: "error", level: zerolog.ErrorLevel, expected: 3},
		{uc: "fatal", level: zerolog.FatalLevel, expected: 2},
		{uc: "panic", level: zerolog.PanicLevel, expected: 1},
		{uc: "unknown", level: zerolog.Level(10), expected: 0},
	} {
		t.Run("case="+tc.uc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, gelfLevel(tc.level))
		})
	}
}
