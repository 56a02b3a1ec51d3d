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

const (
	// Classification gates
	DefaultStartsWithMinLength = 15
	DefaultContainsMinLength   = 20
	DefaultFuzzyMinLength      = 15
	DefaultFuzzyCharsPerEdit   = 15
	DefaultFuzzyMinTolerance   = 1
	DefaultYearTolerance       = 1

	// Name term
	MinScoredNameLength = 3
	MaxScoredNameLength = 30
	PointsPerNameChar   = 10
	NoWhitespaceBonus   = 15
	PenaltyNoWhitespace = 20
	PenaltyStartsWith   = 40
	PenaltyContains     = 60
	PenaltyFuzzy        = 30
	PenaltyFuzzyPerEdit = 20

	// Manufacturer term
	ManufacturerBonus          = 30
	ManufacturerPenalty        = 20
	ManufacturerMinPenaltyLen  = 5
	ManufacturerMaxFuzzyLen    = 8
	ManufacturerFuzzyTolerance = 1

	// Year term
	YearExactBonus    = 50
	YearOffByOneBonus = 25
	YearOffByTwoBonus = 10
	YearFarPenalty    = 200
)
