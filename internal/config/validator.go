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
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/drone/envsubst/v2"
	"github.com/knadh/koanf/maps"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/dadrus/ttlstore/internal/ttlstore"
	"github.com/dadrus/ttlstore/internal/x/errorchain"
	"github.com/dadrus/ttlstore/schema"
)

const configSchemaURL = "config.schema.json"

// ValidateConfig validates the given config file against the configuration schema
// and the constraints of the decoded configuration.
func ValidateConfig(configPath string) error {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return errorchain.NewWithMessage(ttlstore.ErrConfiguration,
			"failed to read config file").CausedBy(err)
	}

	contents, err := envsubst.EvalEnv(string(raw))
	if err != nil {
		return errorchain.NewWithMessage(ttlstore.ErrConfiguration,
			"failed to substitute environment variables").CausedBy(err)
	}

	if err = ValidateConfigSchema([]byte(contents)); err != nil {
		return err
	}

	// environment variables are not taken into account here
	_, err = NewConfiguration("", ConfigurationPath(configPath))

	return err
}

// ValidateConfigSchema validates yaml contents against the configuration schema.
func ValidateConfigSchema(contents []byte) error {
	var conf map[string]any

	if err := yaml.NewDecoder(bytes.NewReader(contents)).Decode(&conf); err != nil {
		if errors.Is(err, io.EOF) {
			return errorchain.NewWithMessage(ttlstore.ErrConfiguration, "config file is empty")
		}

		return errorchain.NewWithMessage(ttlstore.ErrConfiguration,
			"failed to parse config").CausedBy(err)
	}

	compiledSchema, err := compileSchema(configSchemaURL, schema.ConfigSchema)
	if err != nil {
		return errorchain.NewWithMessage(ttlstore.ErrInternal,
			"failed to compile JSON schema").CausedBy(err)
	}

	maps.IntfaceKeysToStrings(conf)

	if err = compiledSchema.Validate(conf); err != nil {
		return errorchain.NewWithMessage(ttlstore.ErrConfiguration,
			"failed to validate config").CausedBy(err)
	}

	return nil
}

func compileSchema(url string, schemaContent []byte) (*jsonschema.Schema, error) {
	configSchema, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaContent))
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource(url, configSchema); err != nil {
		return nil, err
	}

	return compiler.Compile(url)
}
