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
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"

	"github.com/dadrus/ttlstore/internal/config/parser"
	"github.com/dadrus/ttlstore/internal/ttlstore"
	"github.com/dadrus/ttlstore/internal/validation"
	"github.com/dadrus/ttlstore/internal/x/errorchain"
)

const (
	DefaultConfigFileName = "ttlstore.yaml"
	DefaultEnvVarPrefix   = "TTLSTORECFG_"
)

type (
	EnvVarPrefix      string
	ConfigurationPath string
)

type Configuration struct {
	Log   LoggingConfig `koanf:"log"`
	Cache CacheConfig   `koanf:"cache"`
}

// NewConfiguration loads the configuration from the defaults, the given or looked up
// config file and environment variables starting with envPrefix, in that order.
func NewConfiguration(envPrefix EnvVarPrefix, configFile ConfigurationPath) (*Configuration, error) {
	result := defaultConfig()

	opts := []parser.Option{
		parser.WithDecodeHookFunc(mapstructure.StringToTimeDurationHookFunc()),
		parser.WithDecodeHookFunc(logLevelDecodeHookFunc),
		parser.WithDecodeHookFunc(logFormatDecodeHookFunc),
		parser.WithConfigFile(string(configFile)),
		parser.WithDefaultConfigFilename(DefaultConfigFileName),
		parser.WithConfigValidator(ValidateConfigSchema),
		parser.WithEnvPrefix(string(envPrefix)),
	}

	for _, dir := range configLookupDirs() {
		opts = append(opts, parser.WithConfigLookupDir(dir))
	}

	if _, err := parser.New(opts...).Load(&result); err != nil {
		return nil, err
	}

	if err := Validate(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Validate validates the decoded configuration.
func Validate(conf *Configuration) error {
	val, err := validation.NewValidator(
		validation.WithTagValidator(reclamationValidator{}),
		validation.WithErrorTranslator(reclamationValidator{}),
	)
	if err != nil {
		return errorchain.NewWithMessage(ttlstore.ErrInternal,
			"failed to create configuration validator").CausedBy(err)
	}

	if err = val.ValidateStruct(conf); err != nil {
		return errorchain.NewWithMessage(ttlstore.ErrConfiguration,
			"configuration is invalid").CausedBy(err)
	}

	return nil
}

func configLookupDirs() []string {
	var dirs []string

	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}

	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}

	return append(dirs, "/etc/ttlstore")
}
