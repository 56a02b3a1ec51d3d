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

// Package matcher decides whether two TableDetails denote the same table
// and scores how good the match is.
package matcher

import (
	"strings"

	"github.com/ZaparooProject/pinmatch/pkg/database/details"
	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
)

// Options holds the classification gates. Zero fields fall back to the
// package defaults.
type Options struct {
	// StartsWithMinLength is the minimum length of both names for a prefix match.
	StartsWithMinLength int
	// ContainsMinLength is the minimum length of both names for a substring match.
	ContainsMinLength int
	// FuzzyMinLength is the minimum length of the shorter name for an edit
	// distance match.
	FuzzyMinLength int
	// FuzzyCharsPerEdit grants one edit of tolerance per this many characters
	// of the shorter name.
	FuzzyCharsPerEdit int
	// FuzzyMinTolerance is the tolerance floor for edit distance matches.
	FuzzyMinTolerance int
	// YearTolerance is the largest year difference that can still match.
	YearTolerance int
}

// DefaultOptions returns the standard gates.
func DefaultOptions() Options {
	return Options{
		StartsWithMinLength: DefaultStartsWithMinLength,
		ContainsMinLength:   DefaultContainsMinLength,
		FuzzyMinLength:      DefaultFuzzyMinLength,
		FuzzyCharsPerEdit:   DefaultFuzzyCharsPerEdit,
		FuzzyMinTolerance:   DefaultFuzzyMinTolerance,
		YearTolerance:       DefaultYearTolerance,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.StartsWithMinLength <= 0 {
		o.StartsWithMinLength = d.StartsWithMinLength
	}
	if o.ContainsMinLength <= 0 {
		o.ContainsMinLength = d.ContainsMinLength
	}
	if o.FuzzyMinLength <= 0 {
		o.FuzzyMinLength = d.FuzzyMinLength
	}
	if o.FuzzyCharsPerEdit <= 0 {
		o.FuzzyCharsPerEdit = d.FuzzyCharsPerEdit
	}
	if o.FuzzyMinTolerance <= 0 {
		o.FuzzyMinTolerance = d.FuzzyMinTolerance
	}
	if o.YearTolerance <= 0 {
		o.YearTolerance = d.YearTolerance
	}
	return o
}

// MatchOutcome is the result of comparing two titles. Success and Score
// are independent: a vetoed pair can still carry a high score.
type MatchOutcome struct {
	Strategy Strategy
	Score    int
	// Distance is the edit distance of a fuzzy match, zero otherwise.
	Distance int
	Success  bool
	// YearVetoed is set when the names matched but the years were too far
	// apart.
	YearVetoed bool
}

// Matcher compares TableDetails. It holds no mutable state.
type Matcher struct {
	opts Options
}

// New creates a Matcher.
func New(opts Options) *Matcher {
	return &Matcher{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (m *Matcher) Options() Options {
	return m.opts
}

type nameMatch struct {
	strategy Strategy
	length   int
	distance int
	bonus    int
}

// IsMatch classifies the pair and scores it. Manufacturer never affects
// Success; a year difference above the tolerance always fails it.
func (m *Matcher) IsMatch(a, b details.TableDetails) MatchOutcome {
	nm := m.matchNames(a, b)

	out := MatchOutcome{
		Strategy: nm.strategy,
		Distance: nm.distance,
		Score:    nameScore(nm) + manufacturerScore(a, b) + yearScore(a, b),
		Success:  nm.strategy != StrategyNone,
	}

	if out.Success && m.yearVetoed(a, b) {
		out.Success = false
		out.YearVetoed = true
		log.Debug().
			Str("a", a.Name).
			Str("b", b.Name).
			Int("yearA", a.Year).
			Int("yearB", b.Year).
			Stringer("strategy", nm.strategy).
			Msg("name match vetoed by year")
	}

	return out
}

// Score returns the pair's score without the classification.
func (m *Matcher) Score(a, b details.TableDetails) int {
	return m.IsMatch(a, b).Score
}

func (m *Matcher) yearVetoed(a, b details.TableDetails) bool {
	if !a.HasYear() || !b.HasYear() {
		return false
	}
	return abs(a.Year-b.Year) > m.opts.YearTolerance
}

// matchNames compares both the spaced and the no-whitespace forms and keeps
// the stronger result.
func (m *Matcher) matchNames(a, b details.TableDetails) nameMatch {
	if !a.HasName() || !b.HasName() {
		return nameMatch{}
	}

	spaced := m.classify(a.Name, b.Name)
	nows := m.classify(a.NameNoWhitespace, b.NameNoWhitespace)
	if nows.strategy == StrategyExact {
		nows.strategy = StrategyExactNoWhitespace
	}

	if nows.strategy.Better(spaced.strategy) {
		nows.bonus = NoWhitespaceBonus
		return nows
	}
	return spaced
}

func (m *Matcher) classify(x, y string) nameMatch {
	if x == "" || y == "" {
		return nameMatch{}
	}
	if x == y {
		return nameMatch{strategy: StrategyExact, length: len(x)}
	}

	shorter, longer := x, y
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	nm := nameMatch{length: len(shorter)}

	switch {
	case len(shorter) >= m.opts.StartsWithMinLength && strings.HasPrefix(longer, shorter):
		nm.strategy = StrategyStartsWith
		return nm
	case len(shorter) >= m.opts.ContainsMinLength && strings.Contains(longer, shorter):
		nm.strategy = StrategyContains
		return nm
	case len(shorter) < m.opts.FuzzyMinLength:
		return nm
	}

	tolerance := m.tolerance(len(shorter))
	// length pre-filter: the distance is at least the length difference
	if len(longer)-len(shorter) > tolerance {
		return nm
	}

	if d := edlib.LevenshteinDistance(x, y); d <= tolerance {
		nm.strategy = StrategyFuzzy
		nm.distance = d
	}
	return nm
}

func (m *Matcher) tolerance(length int) int {
	return max(m.opts.FuzzyMinTolerance, length/m.opts.FuzzyCharsPerEdit)
}

func nameScore(nm nameMatch) int {
	if nm.strategy == StrategyNone || nm.length < MinScoredNameLength {
		return 0
	}

	score := min(nm.length, MaxScoredNameLength)*PointsPerNameChar + nm.bonus
	switch nm.strategy {
	case StrategyExactNoWhitespace:
		score -= PenaltyNoWhitespace
	case StrategyStartsWith:
		score -= PenaltyStartsWith
	case StrategyContains:
		score -= PenaltyContains
	case StrategyFuzzy:
		score -= PenaltyFuzzy + PenaltyFuzzyPerEdit*nm.distance
	case StrategyNone, StrategyExact:
	}
	return score
}

func manufacturerScore(a, b details.TableDetails) int {
	if !a.HasManufacturer() || !b.HasManufacturer() {
		return 0
	}

	x, y := a.ManufacturerNoWhitespace, b.ManufacturerNoWhitespace
	if x == y || firstWord(a.Manufacturer) == firstWord(b.Manufacturer) {
		return ManufacturerBonus
	}
	if len(x) <= ManufacturerMaxFuzzyLen && len(y) <= ManufacturerMaxFuzzyLen &&
		edlib.LevenshteinDistance(x, y) <= ManufacturerFuzzyTolerance {
		return ManufacturerBonus
	}
	if len(x) >= ManufacturerMinPenaltyLen && len(y) >= ManufacturerMinPenaltyLen {
		return -ManufacturerPenalty
	}
	return 0
}

func yearScore(a, b details.TableDetails) int {
	if !a.HasYear() || !b.HasYear() {
		return 0
	}

	switch abs(a.Year - b.Year) {
	case 0:
		return YearExactBonus
	case 1:
		return YearOffByOneBonus
	case 2:
		return YearOffByTwoBonus
	default:
		return -YearFarPenalty
	}
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
