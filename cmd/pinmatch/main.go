// Pinmatch
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Pinmatch.
//
// Pinmatch is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Pinmatch is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Pinmatch.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/pinmatch/pkg/cli"
	"github.com/ZaparooProject/pinmatch/pkg/config"
	"github.com/ZaparooProject/pinmatch/pkg/service/reconcile"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(flag.CommandLine)
	if err := flags.Pre(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, cli.ErrExit) {
			return nil
		}
		return err
	}

	fs := afero.NewOsFs()
	cfg, err := flags.Setup(
		fs,
		config.BaseDefaults,
		[]io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}},
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := reconcile.New(fs, cfg, clockwork.NewRealClock())
	rep, err := svc.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconciliation failed")
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if err := svc.WriteReport(rep, os.Stdout); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}

	cli.PrintSummary(os.Stderr, rep)
	return nil
}
