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

package session

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/dadrus/ttlstore/cmd/flags"
	"github.com/dadrus/ttlstore/internal/cache"
	"github.com/dadrus/ttlstore/internal/config"
	"github.com/dadrus/ttlstore/internal/shell"
)

// NewShellCommand represents the "shell" command.
func NewShellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Starts an interactive session operating on a cache",
		Long: "Starts an interactive session operating on a cache configured by ttlstore's configuration.\n" +
			"Commands are read line by line from stdin until it is closed or exit is entered.",
		Example: "ttlstore shell -c config.yaml --prompt '> '\n" +
			"  printf 'set foo bar 10s\\ninfo foo\\n' | ttlstore shell -o json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd)
		},
	}

	cmd.Flags().StringP(flags.Output, "o", string(shell.OutputText),
		"Format of the command results. One of text, json or yaml")
	cmd.Flags().String(flags.Prompt, "",
		"Prompt written before each command is read")

	return cmd
}

func runShell(cmd *cobra.Command) error {
	output, _ := cmd.Flags().GetString(flags.Output)
	prompt, _ := cmd.Flags().GetString(flags.Prompt)

	format, err := shell.ParseOutputFormat(output)
	if err != nil {
		return err
	}

	var (
		cch      *cache.Cache[string]
		conf     config.CacheConfig
		gatherer prometheus.Gatherer
		logger   zerolog.Logger
	)

	app, err := createApp(cmd, fx.Populate(&cch, &conf, &gatherer, &logger))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = app.Start(ctx); err != nil {
		return err
	}

	opts := []shell.Option{
		shell.WithOutputFormat(format),
		shell.WithPrompt(prompt),
		shell.WithLogger(logger),
	}

	if conf.Metrics {
		opts = append(opts, shell.WithGatherer(gatherer))
	}

	interp := shell.New(cch, cmd.OutOrStdout(), opts...)
	done := make(chan error, 1)

	go func() { done <- interp.Run(ctx, cmd.InOrStdin()) }()

	var runErr error

	select {
	case runErr = <-done:
	case <-ctx.Done():
		logger.Info().Msg("Session interrupted")
	}

	stopCtx, stopCancel := context.WithTimeout(context.WithoutCancel(ctx), app.StopTimeout())
	defer stopCancel()

	return errors.Join(runErr, app.Stop(stopCtx))
}
