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

// Package shell implements a line oriented interpreter operating on a string valued
// expiring store.
package shell

import (
	"github.com/dadrus/ttlstore/internal/cache"
)

// Store is the part of *cache.Cache[string] the interpreter works with.
type Store interface {
	Set(key string, value string, opts ...cache.SetOption) (string, error)
	SetGenerated(key string, opts ...cache.SetOption) (string, error)
	Get(key string) (string, bool)
	GetInfo(key string) (cache.Info[string], bool)
	Delete(key string) bool
	Clear()
	GetAll() map[string]cache.Info[string]
	Keys() []string
	Len() int
}
