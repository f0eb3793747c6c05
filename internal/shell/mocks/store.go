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

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dadrus/ttlstore/internal/cache"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Set(key string, value string, opts ...cache.SetOption) (string, error) {
	args := m.Called(key, value, opts)

	return args.String(0), args.Error(1)
}

func (m *StoreMock) SetGenerated(key string, opts ...cache.SetOption) (string, error) {
	args := m.Called(key, opts)

	return args.String(0), args.Error(1)
}

func (m *StoreMock) Get(key string) (string, bool) {
	args := m.Called(key)

	return args.String(0), args.Bool(1)
}

func (m *StoreMock) GetInfo(key string) (cache.Info[string], bool) {
	args := m.Called(key)

	return args.Get(0).(cache.Info[string]), args.Bool(1) // nolint: forcetypeassert
}

func (m *StoreMock) Delete(key string) bool { return m.Called(key).Bool(0) }

func (m *StoreMock) Clear() { m.Called() }

func (m *StoreMock) GetAll() map[string]cache.Info[string] {
	return m.Called().Get(0).(map[string]cache.Info[string]) // nolint: forcetypeassert
}

func (m *StoreMock) Keys() []string {
	return m.Called().Get(0).([]string) // nolint: forcetypeassert
}

func (m *StoreMock) Len() int { return m.Called().Int(0) }
