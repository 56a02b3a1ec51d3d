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

package matcher

import (
	"testing"

	"github.com/ZaparooProject/pinmatch/pkg/database/cleaner"
	"github.com/ZaparooProject/pinmatch/pkg/database/details"
	"github.com/stretchr/testify/assert"
)

var testExtractor = details.NewExtractor(
	cleaner.New(cleaner.DefaultRules()),
	details.DefaultOriginalMarkers,
)

func title(s string) details.TableDetails {
	return testExtractor.GetTableDetails(s, false)
}

func fileName(s string) details.TableDetails {
	return testExtractor.GetTableDetails(s, true)
}

func TestIsMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		a            details.TableDetails
		b            details.TableDetails
		wantStrategy Strategy
		wantScore    int
		wantDistance int
		wantSuccess  bool
		wantVetoed   bool
	}{
		{
			name:         "short exact name bypasses length gates",
			a:            title("ali (Stern 1980)"),
			b:            title("ali"),
			wantStrategy: StrategyExact,
			wantScore:    30,
			wantSuccess:  true,
		},
		{
			name:         "year difference vetoes perfect name",
			a:            title("Sir Lancelot (Peyper 1994)"),
			b:            fileName("Sir Lancelot (Peyper 1984) Logo.png"),
			wantStrategy: StrategyExact,
			wantScore:    120 + ManufacturerBonus - YearFarPenalty,
			wantVetoed:   true,
		},
		{
			name:         "one typo in long name",
			a:            title("Americs Most Haunted"),
			b:            title("Americas Most Haunted"),
			wantStrategy: StrategyFuzzy,
			wantScore:    200 - PenaltyFuzzy - PenaltyFuzzyPerEdit,
			wantDistance: 1,
			wantSuccess:  true,
		},
		{
			name:         "three typos rejected",
			a:            title("Americs Mst Hanted"),
			b:            title("Americas Most Haunted"),
			wantStrategy: StrategyNone,
		},
		{
			name:         "starts with",
			a:            title("Attack from Mars"),
			b:            title("Attack from Mars Special Edition"),
			wantStrategy: StrategyStartsWith,
			wantScore:    160 - PenaltyStartsWith,
			wantSuccess:  true,
		},
		{
			name:         "prefix below length gate",
			a:            title("Black Knight"),
			b:            title("Black Knight 2000"),
			wantStrategy: StrategyNone,
		},
		{
			name:         "contains",
			a:            title("Indiana Jones The Pinball Adventure"),
			b:            title("Williams Indiana Jones The Pinball Adventure Remaster"),
			wantStrategy: StrategyContains,
			wantScore:    300 - PenaltyContains,
			wantSuccess:  true,
		},
		{
			name:         "substring below length gate",
			a:            title("Twilight Zone Gold"),
			b:            title("Bally Twilight Zone Gold Edition"),
			wantStrategy: StrategyNone,
		},
		{
			name:         "separator variant",
			a:            title("Spider-Man"),
			b:            title("Spiderman"),
			wantStrategy: StrategyExactNoWhitespace,
			wantScore:    90 + NoWhitespaceBonus - PenaltyNoWhitespace,
			wantSuccess:  true,
		},
		{
			name:         "exact without separators",
			a:            title("Spiderman"),
			b:            title("Spiderman"),
			wantStrategy: StrategyExact,
			wantScore:    90,
			wantSuccess:  true,
		},
		{
			name:         "manufacturer shares first word",
			a:            title("Fathom (Bally 1981)"),
			b:            title("Fathom (Bally Midway 1981)"),
			wantStrategy: StrategyExact,
			wantScore:    60 + ManufacturerBonus + YearExactBonus,
			wantSuccess:  true,
		},
		{
			name:         "manufacturer within one edit",
			a:            title("Fathom (Bally 1981)"),
			b:            title("Fathom (Baly 1981)"),
			wantStrategy: StrategyExact,
			wantScore:    60 + ManufacturerBonus + YearExactBonus,
			wantSuccess:  true,
		},
		{
			name:         "manufacturer disagreement penalized",
			a:            title("Fathom (Williams 1981)"),
			b:            title("Fathom (Gottlieb 1981)"),
			wantStrategy: StrategyExact,
			wantScore:    60 - ManufacturerPenalty + YearExactBonus,
			wantSuccess:  true,
		},
		{
			name:         "short manufacturer not penalized",
			a:            title("Fathom (Bally 1981)"),
			b:            title("Fathom (LTD 1981)"),
			wantStrategy: StrategyExact,
			wantScore:    60 + YearExactBonus,
			wantSuccess:  true,
		},
		{
			name:         "unknown manufacturer and year neutral",
			a:            title("Fathom"),
			b:            title("Fathom (Bally 1981)"),
			wantStrategy: StrategyExact,
			wantScore:    60,
			wantSuccess:  true,
		},
		{
			name:         "year off by one",
			a:            title("Fathom (1981)"),
			b:            title("Fathom (1982)"),
			wantStrategy: StrategyExact,
			wantScore:    60 + YearOffByOneBonus,
			wantSuccess:  true,
		},
		{
			name:         "year off by two",
			a:            title("Fathom (1981)"),
			b:            title("Fathom (1983)"),
			wantStrategy: StrategyExact,
			wantScore:    60 + YearOffByTwoBonus,
			wantVetoed:   true,
		},
		{
			name:         "very short exact name scores nothing",
			a:            title("AB"),
			b:            title("ab"),
			wantStrategy: StrategyExact,
			wantSuccess:  true,
		},
		{
			name:         "absent names never match",
			a:            details.TableDetails{},
			b:            details.TableDetails{},
			wantStrategy: StrategyNone,
		},
	}

	m := New(DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := m.IsMatch(tt.a, tt.b)
			assert.Equal(t, tt.wantStrategy, got.Strategy, "strategy")
			assert.Equal(t, tt.wantScore, got.Score, "score")
			assert.Equal(t, tt.wantDistance, got.Distance, "distance")
			assert.Equal(t, tt.wantSuccess, got.Success, "success")
			assert.Equal(t, tt.wantVetoed, got.YearVetoed, "vetoed")
			assert.Equal(t, got.Score, m.Score(tt.a, tt.b))
		})
	}
}

func TestIsMatchCustomOptions(t *testing.T) {
	t.Parallel()

	m := New(Options{StartsWithMinLength: 5})
	got := m.IsMatch(title("Black Knight"), title("Black Knight 2000"))
	assert.True(t, got.Success)
	assert.Equal(t, StrategyStartsWith, got.Strategy)
}

func TestNewFillsDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultOptions(), New(Options{}).Options())

	custom := New(Options{FuzzyCharsPerEdit: 10}).Options()
	assert.Equal(t, 10, custom.FuzzyCharsPerEdit)
	assert.Equal(t, DefaultContainsMinLength, custom.ContainsMinLength)
}

func TestFuzzyToleranceGrowsWithLength(t *testing.T) {
	t.Parallel()

	m := New(DefaultOptions())

	// 30 characters allow two edits
	a := details.TableDetails{Name: "abcdefghijklmnopqrstuvwxyzabcd", NameNoWhitespace: "abcdefghijklmnopqrstuvwxyzabcd"}
	b := details.TableDetails{Name: "abcdefghijklmnopqrstuvwxyzabXX", NameNoWhitespace: "abcdefghijklmnopqrstuvwxyzabXX"}
	got := m.IsMatch(a, b)
	assert.True(t, got.Success)
	assert.Equal(t, 2, got.Distance)

	c := details.TableDetails{Name: "abcdefghijklmnopqrstuvwxyzaXXX", NameNoWhitespace: "abcdefghijklmnopqrstuvwxyzaXXX"}
	assert.False(t, m.IsMatch(a, c).Success)
}

func TestStrategyLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		strategy    Strategy
		wantString  string
		description string
	}{
		{StrategyNone, "none", "No match"},
		{StrategyFuzzy, "fuzzy", "Similar name"},
		{StrategyContains, "contains", "Name contains the other"},
		{StrategyStartsWith, "starts_with", "Name starts with the other"},
		{StrategyExactNoWhitespace, "exact_no_whitespace", "Same name ignoring spaces"},
		{StrategyExact, "exact", "Same name"},
		{Strategy(99), "unknown", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.wantString, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantString, tt.strategy.String())
			assert.Equal(t, tt.description, Description(tt.strategy))
		})
	}
}

func TestStrategyOrdering(t *testing.T) {
	t.Parallel()

	assert.True(t, StrategyExact.Better(StrategyExactNoWhitespace))
	assert.True(t, StrategyStartsWith.Better(StrategyContains))
	assert.True(t, StrategyFuzzy.Better(StrategyNone))
	assert.False(t, StrategyFuzzy.Better(StrategyFuzzy))
}
