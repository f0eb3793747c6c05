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

package values

import (
	"math/rand/v2"
	"strings"

	"github.com/dadrus/ttlstore/internal/x/pointer"
)

const (
	DefaultLength = 8

	Letters      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	Numbers      = "0123456789"
	SpecialChars = "!@#$%^&*()-_=+[]{}|;:,.<>/?"
)

// Options controls Generate. A nil character class switch means the class is enabled.
type Options struct {
	Length       int   `koanf:"length"        validate:"gte=0"`
	Numbers      *bool `koanf:"numbers"`
	Letters      *bool `koanf:"letters"`
	SpecialChars *bool `koanf:"special_chars"`
}

// Merge returns a copy of o with every unset field taken from defaults.
func (o Options) Merge(defaults Options) Options {
	if o.Length <= 0 {
		o.Length = defaults.Length
	}

	if o.Numbers == nil {
		o.Numbers = defaults.Numbers
	}

	if o.Letters == nil {
		o.Letters = defaults.Letters
	}

	if o.SpecialChars == nil {
		o.SpecialChars = defaults.SpecialChars
	}

	return o
}

// Alphabet returns the characters Generate draws from for the given options.
func (o Options) Alphabet() string {
	var sb strings.Builder

	if pointer.ValueOr(o.Letters, true) {
		sb.WriteString(Letters)
	}

	if pointer.ValueOr(o.Numbers, true) {
		sb.WriteString(Numbers)
	}

	if pointer.ValueOr(o.SpecialChars, true) {
		sb.WriteString(SpecialChars)
	}

	if sb.Len() == 0 {
		return Letters
	}

	return sb.String()
}

// Generate returns a random string of the configured length. The characters are drawn
// uniformly with replacement. The result is not suitable for security sensitive purposes.
func Generate(opts Options) string {
	length := opts.Length
	if length <= 0 {
		length = DefaultLength
	}

	alphabet := opts.Alphabet()
	buf := make([]byte, length)

	for i := range buf {
		buf[i] = alphabet[rand.IntN(len(alphabet))] // nolint: gosec
	}

	return string(buf)
}
