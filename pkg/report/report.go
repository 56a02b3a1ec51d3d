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

// Package report renders resolution results as CSV.
package report

import (
	"fmt"
	"io"

	"github.com/ZaparooProject/pinmatch/pkg/database/matcher"
	"github.com/ZaparooProject/pinmatch/pkg/database/resolver"
	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
)

// Source names used in rows and summaries.
const (
	SourceFeed  = "feed"
	SourceFiles = "files"
)

// Row is one foreign record and its resolution.
type Row struct {
	Source       string `csv:"source"`
	ForeignID    string `csv:"foreign_id"`
	ForeignTitle string `csv:"foreign_title"`
	Status       string `csv:"status"`
	LocalID      string `csv:"local_id"`
	LocalName    string `csv:"local_name"`
	Strategy     string `csv:"strategy"`
	Match        string `csv:"match"`
	Score        int    `csv:"score"`
}

// Summary is the per-source tally.
type Summary struct {
	Source string
	resolver.Stats
}

// Rows builds one row per foreign record in pool order.
func Rows(source string, pool *resolver.Pool) []Row {
	rows := make([]Row, 0, len(pool.Foreign))
	for i, f := range pool.Foreign {
		row := Row{
			Source:       source,
			ForeignID:    f.ID,
			ForeignTitle: f.Title,
			Status:       f.Status.String(),
			Strategy:     matcher.StrategyNone.String(),
			Match:        matcher.Description(matcher.StrategyNone),
			Score:        f.BestScore,
		}
		if l, ok := pool.LocalFor(i); ok {
			row.LocalID = l.ID
			row.LocalName = l.Name
			row.Strategy = f.Match.Strategy.String()
			row.Match = matcher.Description(f.Match.Strategy)
			row.Score = f.Match.Score
		}
		rows = append(rows, row)
	}
	return rows
}

// Summarize tallies the pool for source.
func Summarize(source string, pool *resolver.Pool) Summary {
	return Summary{Source: source, Stats: resolver.CountStats(pool)}
}

// Write encodes rows as CSV with a header line.
func Write(w io.Writer, rows []Row) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteFile writes rows to path, replacing any existing file.
func WriteFile(fs afero.Fs, path string, rows []Row) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	if err := Write(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report %s: %w", path, err)
	}
	return nil
}
