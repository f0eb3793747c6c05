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
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/dadrus/ttlstore/internal/ttlstore"
	"github.com/dadrus/ttlstore/internal/x/errorchain"
)

// ConfigLoader fills a config struct from its current contents (the defaults), an
// optional yaml file and environment variables. Later sources take precedence.
type ConfigLoader interface {
	// Load returns the path of the used config file, or an empty string if none was used.
	Load(config any) (string, error)
}

func New(opts ...Option) ConfigLoader {
	loader := &configLoader{}

	for _, opt := range opts {
		opt(&loader.o)
	}

	return loader
}

type configLoader struct {
	o opts
}

func (c *configLoader) Load(config any) (string, error) {
	configFile, err := c.configFile()
	if err != nil {
		return "", err
	}

	parser, err := koanfFromStruct(config)
	if err != nil {
		return "", err
	}

	loadAndMergeConfig := func(loadConfig func() (*koanf.Koanf, error)) error {
		konf, err := loadConfig()
		if err != nil {
			return err
		}

		return parser.Load(
			confmap.Provider(konf.Raw(), ""),
			nil,
			koanf.WithMergeFunc(func(src, dest map[string]any) error {
				for key, val := range src {
					dest[key] = merge(dest[key], val)
				}

				return nil
			}))
	}

	if len(configFile) != 0 {
		if err = loadAndMergeConfig(func() (*koanf.Koanf, error) {
			return koanfFromYaml(configFile, c.o.validate)
		}); err != nil {
			return "", err
		}
	}

	if len(c.o.envPrefix) != 0 {
		if err = loadAndMergeConfig(func() (*koanf.Koanf, error) {
			return koanfFromEnv(c.o.envPrefix)
		}); err != nil {
			return "", err
		}
	}

	if err = parser.UnmarshalWithConf("", config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(c.o.decodeHooks...),
			Metadata:         nil,
			Result:           config,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return "", errorchain.NewWithMessage(ttlstore.ErrConfiguration,
			"failed to decode configuration").CausedBy(err)
	}

	return configFile, nil
}

func (c *configLoader) configFile() (string, error) {
	if len(c.o.configFile) != 0 {
		if _, err := os.Stat(c.o.configFile); err != nil {
			return "", errorchain.NewWithMessagef(ttlstore.ErrConfiguration,
				"config file %s is not accessible", c.o.configFile).CausedBy(err)
		}

		return c.o.configFile, nil
	}

	if len(c.o.defaultConfigFileName) == 0 {
		return "", nil
	}

	for _, confDir := range c.o.configLookupDirs {
		filePath := filepath.Join(confDir, c.o.defaultConfigFileName)

		_, err := os.Stat(filePath)
		if err == nil {
			return filePath, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return "", errorchain.NewWithMessagef(ttlstore.ErrConfiguration,
				"config file %s is not accessible", filePath).CausedBy(err)
		}
	}

	return "", nil
}
