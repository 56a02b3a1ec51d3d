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

package config

import (
	"github.com/ZaparooProject/pinmatch/pkg/database/cleaner"
	"github.com/ZaparooProject/pinmatch/pkg/database/details"
	"github.com/ZaparooProject/pinmatch/pkg/database/matcher"
	"github.com/ZaparooProject/pinmatch/pkg/database/resolver"
)

// Matching tunes the matching engine. Unset values use the engine defaults.
type Matching struct {
	StartsWithMinLength *int     `toml:"starts_with_min_length,omitempty" validate:"omitempty,min=1"`
	ContainsMinLength   *int     `toml:"contains_min_length,omitempty" validate:"omitempty,min=1"`
	FuzzyMinLength      *int     `toml:"fuzzy_min_length,omitempty" validate:"omitempty,min=1"`
	FuzzyCharsPerEdit   *int     `toml:"fuzzy_chars_per_edit,omitempty" validate:"omitempty,min=1"`
	YearTolerance       *int     `toml:"year_tolerance,omitempty" validate:"omitempty,min=1,max=10"`
	UniquenessMargin    *int     `toml:"uniqueness_margin,omitempty" validate:"omitempty,min=0"`
	UniquenessBonus     *int     `toml:"uniqueness_bonus,omitempty" validate:"omitempty,min=0"`
	CacheSize           *int     `toml:"cache_size,omitempty" validate:"omitempty,min=1"`
	AuthorMarkers       []string `toml:"author_markers,omitempty,multiline"`
	NoiseTokens         []string `toml:"noise_tokens,omitempty,multiline"`
	OriginalMarkers     []string `toml:"original_markers,omitempty,multiline"`
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// CleanerRules returns the title cleaning rules. Configured lists replace
// the built-in ones.
func (c *Instance) CleanerRules() cleaner.Rules {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rules := cleaner.DefaultRules()
	if len(c.vals.Matching.AuthorMarkers) > 0 {
		rules.AuthorMarkers = append([]string(nil), c.vals.Matching.AuthorMarkers...)
	}
	if len(c.vals.Matching.NoiseTokens) > 0 {
		rules.NoiseTokens = append([]string(nil), c.vals.Matching.NoiseTokens...)
	}
	return rules
}

// OriginalMarkers returns the manufacturer values that mark a fan-made table.
func (c *Instance) OriginalMarkers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.vals.Matching.OriginalMarkers) == 0 {
		return details.DefaultOriginalMarkers
	}
	return c.vals.Matching.OriginalMarkers
}

// MatcherOptions returns the classification gates.
func (c *Instance) MatcherOptions() matcher.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m := c.vals.Matching
	d := matcher.DefaultOptions()
	return matcher.Options{
		StartsWithMinLength: intOr(m.StartsWithMinLength, d.StartsWithMinLength),
		ContainsMinLength:   intOr(m.ContainsMinLength, d.ContainsMinLength),
		FuzzyMinLength:      intOr(m.FuzzyMinLength, d.FuzzyMinLength),
		FuzzyCharsPerEdit:   intOr(m.FuzzyCharsPerEdit, d.FuzzyCharsPerEdit),
		FuzzyMinTolerance:   d.FuzzyMinTolerance,
		YearTolerance:       intOr(m.YearTolerance, d.YearTolerance),
	}
}

// ResolverOptions returns the uniqueness bonus settings.
func (c *Instance) ResolverOptions() resolver.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d := resolver.DefaultOptions()
	return resolver.Options{
		UniquenessMargin: intOr(c.vals.Matching.UniquenessMargin, d.UniquenessMargin),
		UniquenessBonus:  intOr(c.vals.Matching.UniquenessBonus, d.UniquenessBonus),
	}
}

// DetailsCacheSize returns the number of extracted titles to memoize.
func (c *Instance) DetailsCacheSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return intOr(c.vals.Matching.CacheSize, details.DefaultCacheSize)
}
