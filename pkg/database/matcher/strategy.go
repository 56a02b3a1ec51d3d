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

// Strategy is the name comparison rule that produced a match. Values are
// ordered from weakest to strongest.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyFuzzy
	StrategyContains
	StrategyStartsWith
	StrategyExactNoWhitespace
	StrategyExact
)

// String returns the stable identifier used in logs and reports.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyFuzzy:
		return "fuzzy"
	case StrategyContains:
		return "contains"
	case StrategyStartsWith:
		return "starts_with"
	case StrategyExactNoWhitespace:
		return "exact_no_whitespace"
	case StrategyExact:
		return "exact"
	default:
		return "unknown"
	}
}

// Description returns a human-readable label for the strategy.
func Description(s Strategy) string {
	switch s {
	case StrategyNone:
		return "No match"
	case StrategyFuzzy:
		return "Similar name"
	case StrategyContains:
		return "Name contains the other"
	case StrategyStartsWith:
		return "Name starts with the other"
	case StrategyExactNoWhitespace:
		return "Same name ignoring spaces"
	case StrategyExact:
		return "Same name"
	default:
		return "Unknown"
	}
}

// Better reports whether s is a stronger strategy than other.
func (s Strategy) Better(other Strategy) bool {
	return s > other
}
