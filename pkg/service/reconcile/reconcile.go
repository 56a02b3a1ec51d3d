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

// Package reconcile runs a full matching pass: it loads the three catalogs,
// collapses feed duplicates and resolves feed entries and table files
// against the local database.
package reconcile

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ZaparooProject/pinmatch/pkg/catalogs/feed"
	"github.com/ZaparooProject/pinmatch/pkg/catalogs/files"
	"github.com/ZaparooProject/pinmatch/pkg/catalogs/localdb"
	"github.com/ZaparooProject/pinmatch/pkg/config"
	"github.com/ZaparooProject/pinmatch/pkg/database/cleaner"
	"github.com/ZaparooProject/pinmatch/pkg/database/dedupe"
	"github.com/ZaparooProject/pinmatch/pkg/database/details"
	"github.com/ZaparooProject/pinmatch/pkg/database/matcher"
	"github.com/ZaparooProject/pinmatch/pkg/database/resolver"
	"github.com/ZaparooProject/pinmatch/pkg/report"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Report is the outcome of one run.
type Report struct {
	StartedAt time.Time
	RunID     string
	Rows      []report.Row
	Summaries []report.Summary
	Warnings  []dedupe.Warning
	// Collapsed is the number of feed entries merged into another entry.
	Collapsed int
	Duration  time.Duration
}

// Service runs reconciliation passes.
type Service struct {
	fs    afero.Fs
	cfg   *config.Instance
	clock clockwork.Clock
}

// New creates a Service. A nil clock uses the real clock.
func New(fs afero.Fs, cfg *config.Instance, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{fs: fs, cfg: cfg, clock: clock}
}

type catalogs struct {
	files []files.File
	feed  []feed.Entry
	db    localdb.Database
}

// optional reports whether an optional catalog path should be loaded.
func (s *Service) optional(kind, path string) (bool, error) {
	if path == "" {
		log.Info().Str("catalog", kind).Msg("catalog not configured, skipping")
		return false, nil
	}
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !exists {
		log.Warn().Str("catalog", kind).Str("path", path).Msg("catalog not found, skipping")
		return false, nil
	}
	return true, nil
}

func (s *Service) load(ctx context.Context) (catalogs, error) {
	var cats catalogs
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		db, err := localdb.Load(s.fs, s.cfg.DatabasePath())
		if err != nil {
			return err
		}
		cats.db = db
		return nil
	})

	g.Go(func() error {
		ok, err := s.optional("feed", s.cfg.FeedPath())
		if err != nil || !ok {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := feed.Load(s.fs, s.cfg.FeedPath())
		if err != nil {
			return err
		}
		cats.feed = entries
		return nil
	})

	g.Go(func() error {
		ok, err := s.optional("tables", s.cfg.TablesDir())
		if err != nil || !ok {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		found, err := files.Scan(s.fs, s.cfg.TablesDir(), s.cfg.TableExtensions())
		if err != nil {
			return err
		}
		cats.files = found
		return nil
	})

	if err := g.Wait(); err != nil {
		return catalogs{}, fmt.Errorf("failed to load catalogs: %w", err)
	}
	return cats, nil
}

// Run performs one reconciliation pass. Each foreign source is resolved
// against its own copy of the local records, so a local record can hold one
// feed match and one file match.
func (s *Service) Run(ctx context.Context) (Report, error) {
	rep := Report{
		RunID:     uuid.New().String(),
		StartedAt: s.clock.Now(),
	}
	log.Info().Str("runID", rep.RunID).Msg("starting reconciliation")

	cats, err := s.load(ctx)
	if err != nil {
		return Report{}, err
	}

	extractor := details.NewExtractor(cleaner.New(s.cfg.CleanerRules()), s.cfg.OriginalMarkers())
	cache, err := details.NewCache(extractor, s.cfg.DetailsCacheSize())
	if err != nil {
		return Report{}, err
	}
	m := matcher.New(s.cfg.MatcherOptions())
	r := resolver.New(m, s.cfg.ResolverOptions())

	collapsed, warnings := dedupe.New(cache, m).Collapse(cats.feed)
	rep.Warnings = warnings
	rep.Collapsed = len(cats.feed) - len(collapsed)

	locals := localdb.ToLocalRecords(cats.db, cache)

	feedPool := resolver.NewPool(locals)
	for _, e := range collapsed {
		feedPool.AddForeign(resolver.NewForeignRecord(e.ID, e.Title(), false, cache))
	}

	filePool := resolver.NewPool(locals)
	for _, f := range cats.files {
		filePool.AddForeign(resolver.NewForeignRecord(f.Name(), f.Name(), true, cache))
	}

	// pools share no state, each is resolved by a single writer
	g, ctx := errgroup.WithContext(ctx)
	for _, pool := range []*resolver.Pool{feedPool, filePool} {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.MatchAll(pool)
			return pool.Validate()
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("failed to resolve catalogs: %w", err)
	}

	rep.Rows = append(report.Rows(report.SourceFeed, feedPool), report.Rows(report.SourceFiles, filePool)...)
	rep.Summaries = []report.Summary{
		report.Summarize(report.SourceFeed, feedPool),
		report.Summarize(report.SourceFiles, filePool),
	}
	rep.Duration = s.clock.Since(rep.StartedAt)

	log.Info().
		Str("runID", rep.RunID).
		Int("locals", len(locals)).
		Int("feedEntries", len(collapsed)).
		Int("collapsed", rep.Collapsed).
		Int("warnings", len(rep.Warnings)).
		Int("files", len(cats.files)).
		Dur("duration", rep.Duration).
		Msg("reconciliation finished")

	return rep, nil
}

// WriteReport writes the report rows to the configured path, or to w when
// no path is configured.
func (s *Service) WriteReport(rep Report, w io.Writer) error {
	path := s.cfg.ReportPath()
	if path == "" {
		return report.Write(w, rep.Rows)
	}
	if err := report.WriteFile(s.fs, path, rep.Rows); err != nil {
		return err
	}
	log.Info().Str("path", path).Int("rows", len(rep.Rows)).Msg("wrote report")
	return nil
}
