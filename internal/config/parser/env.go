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

package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/dadrus/ttlstore/internal/ttlstore"
	"github.com/dadrus/ttlstore/internal/x/errorchain"
)

const keySuffixSeparator = "#"

var isNumRegex = regexp.MustCompile(`^\d+$`)

// koanfFromEnv maps environment variables to configuration keys. A single underscore
// separates key segments, a double one is a literal underscore and numeric segments
// address slice entries. E.g. PREFIX_CACHE_DEFAULT__TTL becomes cache.default_ttl.
func koanfFromEnv(prefix string) (*koanf.Koanf, error) {
	parser := koanf.New(".")

	provider := env.Provider(".", env.Opt{
		Prefix: prefix,
		TransformFunc: func(key, val string) (string, any) {
			newKey, newVal, digest := toKoanfEntry(normalizeKey(key, prefix), val)

			// the digest keeps entries addressing different slice positions of the same key apart
			return newKey + keySuffixSeparator + digest, newVal
		},
	})

	if err := parser.Load(provider,
		nil,
		koanf.WithMergeFunc(func(src, dest map[string]any) error {
			for key, val := range src {
				key, _, _ = strings.Cut(key, keySuffixSeparator)

				dest[key] = merge(dest[key], val)
			}

			return nil
		}),
	); err != nil {
		return nil, errorchain.NewWithMessage(ttlstore.ErrConfiguration,
			"failed to parse environment variables to config").CausedBy(err)
	}

	return parser, nil
}

func normalizeKey(key, prefix string) string {
	const placeholder = `\:\`

	tmp := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, prefix)), "__", placeholder)
	tmp = strings.ReplaceAll(tmp, "_", ".")

	return strings.ReplaceAll(tmp, placeholder, "_")
}

func toKoanfEntry(key, val string) (string, any, string) {
	return convert(key, val, key)
}

func convert(key, val, salt string) (string, any, string) {
	parts := strings.Split(key, ".")

	for idx, part := range parts {
		if !isNumRegex.MatchString(part) {
			continue
		}

		pos, err := strconv.Atoi(part)
		if err != nil {
			break
		}

		prefix := strings.Join(parts[:idx], ".")
		postfix := strings.Join(parts[idx+1:], ".")
		slice := make([]any, pos+1)

		newKey, newVal, digest := convert(postfix, val, messageDigest(val, salt))
		if len(newKey) != 0 {
			slice[pos] = map[string]any{newKey: newVal}
		} else {
			slice[pos] = newVal
		}

		return prefix, slice, digest
	}

	return key, toRealType(val), messageDigest(val, salt)
}

func messageDigest(val, salt string) string {
	mds := sha256.New()
	mds.Write([]byte(val))
	mds.Write([]byte(salt))

	return hex.EncodeToString(mds.Sum(nil))
}

// toRealType lets the yaml parser guess the type of the given value.
func toRealType(val string) any {
	var parsed map[string]any

	if err := yaml.Unmarshal([]byte("val: "+val), &parsed); err != nil {
		return val
	}

	return parsed["val"]
}

func cleanSuffix(val any) any {
	entries, ok := val.(map[string]any)
	if !ok {
		return val
	}

	result := make(map[string]any, len(entries))

	for k, v := range entries {
		k, _, _ = strings.Cut(k, keySuffixSeparator)

		// entries addressing different positions of the same slice collapse into one key
		result[k] = merge(result[k], v)
	}

	return result
}
