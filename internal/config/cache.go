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

package config

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dadrus/ttlstore/internal/cache"
	"github.com/dadrus/ttlstore/internal/values"
)

type CacheConfig struct {
	DefaultTTL      time.Duration  `koanf:"default_ttl"      validate:"gt=0"`
	CleanupInterval time.Duration  `koanf:"cleanup_interval" validate:"gt=0"`
	Reclamation     string         `koanf:"reclamation"      validate:"reclamation"`
	Metrics         bool           `koanf:"metrics"`
	ValueGenerator  values.Options `koanf:"value_generator"`
}

func CacheConfiguration(configuration *Configuration) CacheConfig { return configuration.Cache }

type reclamationValidator struct{}

func (reclamationValidator) Tag() string { return "reclamation" }

func (reclamationValidator) Validate(fl validator.FieldLevel) bool {
	_, err := cache.ParseReclamation(fl.Field().String())

	return err == nil
}

func (reclamationValidator) AlwaysValidate() bool { return false }

func (reclamationValidator) MessageTemplate() string {
	return "{0} must be one of " + string(cache.ReclamationSweep) + ", " +
		string(cache.ReclamationTimer) + " or " + string(cache.ReclamationLazy)
}
