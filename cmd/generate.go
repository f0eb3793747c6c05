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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dadrus/ttlstore/cmd/flags"
	"github.com/dadrus/ttlstore/internal/ttlstore"
	"github.com/dadrus/ttlstore/internal/values"
	"github.com/dadrus/ttlstore/internal/x/errorchain"
	"github.com/dadrus/ttlstore/internal/x/pointer"
)

func init() {
	RootCmd.AddCommand(newGenerateCmd())
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generates random values like the ones stored for entries set without a value",
		Example: "ttlstore generate --length 16 --special-chars=false --count 3",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, count, err := generatorOptions(cmd)
			if err != nil {
				return err
			}

			for range count {
				if _, err = fmt.Fprintln(cmd.OutOrStdout(), values.Generate(opts)); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().Int(flags.Length, values.DefaultLength, "Length of the generated values")
	cmd.Flags().Int(flags.Count, 1, "Number of values to generate")
	cmd.Flags().Bool(flags.Numbers, true, "Whether the values may contain numbers")
	cmd.Flags().Bool(flags.Letters, true, "Whether the values may contain letters")
	cmd.Flags().Bool(flags.SpecialChars, true, "Whether the values may contain special characters")

	return cmd
}

func generatorOptions(cmd *cobra.Command) (values.Options, int, error) {
	length, _ := cmd.Flags().GetInt(flags.Length)
	count, _ := cmd.Flags().GetInt(flags.Count)
	numbers, _ := cmd.Flags().GetBool(flags.Numbers)
	letters, _ := cmd.Flags().GetBool(flags.Letters)
	specialChars, _ := cmd.Flags().GetBool(flags.SpecialChars)

	if length <= 0 {
		return values.Options{}, 0, errorchain.NewWithMessagef(ttlstore.ErrArgument,
			"--%s must be positive", flags.Length)
	}

	if count <= 0 {
		return values.Options{}, 0, errorchain.NewWithMessagef(ttlstore.ErrArgument,
			"--%s must be positive", flags.Count)
	}

	return values.Options{
		Length:       length,
		Numbers:      pointer.To(numbers),
		Letters:      pointer.To(letters),
		SpecialChars: pointer.To(specialChars),
	}, count, nil
}
