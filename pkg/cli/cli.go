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

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ZaparooProject/pinmatch/pkg/config"
	"github.com/ZaparooProject/pinmatch/pkg/helpers"
	"github.com/ZaparooProject/pinmatch/pkg/service/reconcile"
	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrExit is returned by Pre when a flag was fully handled and the program
// should exit without error.
var ErrExit = errors.New("exit requested")

type Flags struct {
	set      *flag.FlagSet
	Config   *string
	Database *string
	Feed     *string
	Tables   *string
	Report   *string
	LogDir   *string
	Debug    *bool
	Version  *bool
}

// SetupFlags defines all CLI flags on set.
func SetupFlags(set *flag.FlagSet) *Flags {
	return &Flags{
		set: set,
		Config: set.String(
			"config",
			"",
			"config directory (default: user config dir)",
		),
		Database: set.String(
			"database",
			"",
			"local database XML, overrides config",
		),
		Feed: set.String(
			"feed",
			"",
			"online feed JSON export, overrides config",
		),
		Tables: set.String(
			"tables",
			"",
			"tables directory to scan, overrides config",
		),
		Report: set.String(
			"report",
			"",
			"write CSV report to this path instead of stdout",
		),
		LogDir: set.String(
			"logs",
			"",
			"log directory (default: user cache dir)",
		),
		Debug: set.Bool(
			"debug",
			false,
			"enable debug logging",
		),
		Version: set.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.set.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Pre parses args and handles flags that need no setup. It returns ErrExit
// when the program should stop.
func (f *Flags) Pre(args []string, out io.Writer) error {
	if err := f.set.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.Version {
		_, _ = fmt.Fprintf(out, "Pinmatch v%s\n", config.AppVersion)
		return ErrExit
	}
	return nil
}

// ConfigDir returns the config directory from the flag or the XDG config
// home.
func (f *Flags) ConfigDir() string {
	if *f.Config != "" {
		return *f.Config
	}
	return filepath.Join(xdg.ConfigHome, config.AppName)
}

// Setup initializes logging and loads the config.
func (f *Flags) Setup(fs afero.Fs, defaults config.Values, writers []io.Writer) (*config.Instance, error) {
	logDir := *f.LogDir
	if logDir == "" {
		logDir = helpers.LogDir()
	}
	if err := helpers.InitLogging(logDir, writers); err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(fs, f.ConfigDir(), defaults)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	f.Post(cfg)
	return cfg, nil
}

// Post applies command line overrides to the loaded config.
func (f *Flags) Post(cfg *config.Instance) {
	if f.isFlagPassed("database") {
		cfg.SetDatabasePath(*f.Database)
	}
	if f.isFlagPassed("feed") {
		cfg.SetFeedPath(*f.Feed)
	}
	if f.isFlagPassed("tables") {
		cfg.SetTablesDir(*f.Tables)
	}
	if f.isFlagPassed("report") {
		cfg.SetReportPath(*f.Report)
	}
	if *f.Debug {
		cfg.SetDebugLogging(true)
	}

	helpers.SetLogLevel(cfg.DebugLogging())
	log.Debug().Str("config", cfg.ConfigPath()).Msg("config loaded")
}

// PrintSummary writes a human readable run summary.
func PrintSummary(w io.Writer, rep reconcile.Report) {
	_, _ = fmt.Fprintf(w, "Run %s (%s)\n", rep.RunID, rep.Duration)
	for _, s := range rep.Summaries {
		_, _ = fmt.Fprintf(w, "  %-6s total=%d matched=%d unmatched=%d rejected=%d evicted=%d\n",
			s.Source, s.Total, s.Matched, s.Unmatched, s.Rejected, s.Evicted)
	}
	if rep.Collapsed > 0 {
		_, _ = fmt.Fprintf(w, "  merged %d duplicate feed entries\n", rep.Collapsed)
	}
	for _, warn := range rep.Warnings {
		_, _ = fmt.Fprintf(w, "  warning: %s\n", warn)
	}
}
