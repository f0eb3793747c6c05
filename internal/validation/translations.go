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

package validation

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// nolint: gochecknoglobals
var durationType = reflect.TypeOf(time.Duration(0))

func registerTranslations(validate *validator.Validate, trans ut.Translator) error {
	// the default translations render durations as plain numbers
	for _, entry := range []struct {
		tag         string
		translation string
	}{
		{tag: "gt", translation: "{0} must be greater than {1}"},
		{tag: "gte", translation: "{0} must be {1} or greater"},
	} {
		key := entry.tag + "-duration"

		if err := validate.RegisterTranslation(
			entry.tag,
			trans,
			func(ut ut.Translator) error { return ut.Add(key, entry.translation, false) },
			comparisonTranslation(entry.tag),
		); err != nil {
			return err
		}
	}

	return nil
}

func comparisonTranslation(tag string) validator.TranslationFunc {
	return func(ut ut.Translator, fe validator.FieldError) string {
		var (
			translation string
			err         error
		)

		if fe.Type() == durationType {
			translation, err = ut.T(tag+"-duration", fe.Field(), durationParam(fe.Param()))
		} else {
			translation, err = numberTranslation(ut, tag, fe)
		}

		if err != nil {
			return fe.Error()
		}

		return translation
	}
}

func numberTranslation(ut ut.Translator, tag string, fe validator.FieldError) (string, error) {
	var digits uint64

	if idx := strings.Index(fe.Param(), "."); idx != -1 {
		digits = uint64(len(fe.Param()[idx+1:])) // nolint: gosec
	}

	f64, err := strconv.ParseFloat(fe.Param(), 64)
	if err != nil {
		return "", err
	}

	return ut.T(tag+"-number", fe.Field(), ut.FmtNumber(f64, digits))
}

func durationParam(param string) string {
	if ns, err := strconv.ParseInt(param, 10, 64); err == nil {
		return time.Duration(ns).String()
	}

	return param
}
