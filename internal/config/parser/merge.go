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

import "strings"

// merge merges src into dest. Maps are merged key by key, slices position by position
// and everything else is overridden by src. If the kinds of dest and src differ, src wins.
func merge(dest, src any) any {
	if dest == nil {
		return cleanSuffix(src)
	}

	switch dst := dest.(type) {
	case map[string]any:
		if srcMap, ok := src.(map[string]any); ok {
			return mergeMaps(dst, srcMap)
		}
	case []any:
		if srcSlice, ok := src.([]any); ok {
			return mergeSlices(dst, srcSlice)
		}
	}

	return cleanSuffix(src)
}

func mergeSlices(dest, src []any) []any {
	if len(dest) < len(src) {
		grown := make([]any, len(src))
		copy(grown, dest)
		dest = grown
	}

	for i, v := range src {
		if v != nil {
			dest[i] = merge(dest[i], v)
		}
	}

	return dest
}

func mergeMaps(dest, src map[string]any) map[string]any {
	for k, v := range src {
		k, _, _ = strings.Cut(k, keySuffixSeparator)

		dest[k] = merge(dest[k], v)
	}

	return dest
}
