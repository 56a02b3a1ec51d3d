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

// Package details parses raw table titles and file names into structured
// TableDetails records used by the matcher.
package details

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ZaparooProject/pinmatch/pkg/database/cleaner"
)

var (
	reExtension = regexp.MustCompile(`\.[A-Za-z0-9]{1,10}$`)
	reYear      = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
)

// DefaultOriginalMarkers are manufacturer values that mark a fan-made table.
var DefaultOriginalMarkers = []string{"original", "orig", "homebrew", "ot"}

// TableDetails is the canonical, cleaned view of one title. Empty strings
// and a zero Year mean the value is unknown.
type TableDetails struct {
	Name                     string
	NameNoWhitespace         string
	NameNoParenthesis        string
	Manufacturer             string
	ManufacturerNoWhitespace string
	Year                     int
	IsOriginal               bool
}

// HasName reports whether a usable name was extracted.
func (d TableDetails) HasName() bool { return d.Name != "" }

// HasYear reports whether a year was extracted.
func (d TableDetails) HasYear() bool { return d.Year != 0 }

// HasManufacturer reports whether a manufacturer was extracted.
func (d TableDetails) HasManufacturer() bool { return d.Manufacturer != "" }

// Source produces TableDetails from raw strings. Both Extractor and Cache
// implement it.
type Source interface {
	GetTableDetails(source string, isFileName bool) TableDetails
}

// Extractor turns raw titles into TableDetails using a Cleaner.
type Extractor struct {
	cleaner         *cleaner.Cleaner
	originalMarkers map[string]struct{}
}

// NewExtractor creates an Extractor. Original markers are cleaned with the
// same Cleaner so they compare against cleaned manufacturer values.
func NewExtractor(c *cleaner.Cleaner, originalMarkers []string) *Extractor {
	markers := make(map[string]struct{}, len(originalMarkers))
	for _, m := range originalMarkers {
		if cleaned := c.Clean(m, true); cleaned != "" {
			markers[cleaned] = struct{}{}
		}
	}
	return &Extractor{
		cleaner:         c,
		originalMarkers: markers,
	}
}

// Cleaner returns the Cleaner used by the Extractor.
func (e *Extractor) Cleaner() *cleaner.Cleaner {
	return e.cleaner
}

// GetTableDetails parses source into TableDetails. Malformed input never
// fails: missing pieces are left empty.
//
// Example:
//
//	GetTableDetails("Indiana Jones (Williams 1993) blah.directb2s", true)
//	→ Name "indiana jones", Manufacturer "williams", Year 1993
func (e *Extractor) GetTableDetails(source string, isFileName bool) TableDetails {
	s := strings.TrimSpace(source)
	if isFileName {
		s = strings.TrimSpace(reExtension.ReplaceAllString(s, ""))
	}
	if s == "" {
		return TableDetails{IsOriginal: true}
	}

	rawName, meta := splitMetadata(s)

	d := TableDetails{
		Name:              e.cleaner.Clean(rawName, false),
		NameNoWhitespace:  e.cleaner.Clean(rawName, true),
		NameNoParenthesis: e.cleaner.Clean(s, false),
	}

	if meta != "" {
		rawManufacturer, year := splitYear(meta)
		d.Year = year
		d.Manufacturer = e.cleaner.Clean(rawManufacturer, false)
		d.ManufacturerNoWhitespace = e.cleaner.Clean(rawManufacturer, true)
	}

	d.IsOriginal = e.isOriginal(d)
	return d
}

func (e *Extractor) isOriginal(d TableDetails) bool {
	if !d.HasManufacturer() {
		return true
	}
	_, ok := e.originalMarkers[d.ManufacturerNoWhitespace]
	return ok
}

type group struct {
	start int // index of '('
	end   int // index of ')'
}

// topLevelGroups returns every balanced top-level parenthetical group.
// An unclosed group is ignored and its text stays part of the title.
func topLevelGroups(s string) []group {
	var groups []group
	depth := 0
	start := 0
	for i := range len(s) {
		switch s[i] {
		case '(':
			if depth == 0 {
				start = i
			}
			depth++
		case ')':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				groups = append(groups, group{start: start, end: i})
			}
		}
	}
	return groups
}

// splitMetadata separates the title from its manufacturer/year group. The
// metadata group is the last top-level group holding a year, or the last
// group when none has one. Earlier groups stay in the title; text after the
// metadata group is dropped.
func splitMetadata(s string) (rawName, meta string) {
	groups := topLevelGroups(s)
	if len(groups) == 0 {
		return s, ""
	}

	chosen := groups[len(groups)-1]
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if reYear.MatchString(s[g.start+1 : g.end]) {
			chosen = g
			break
		}
	}

	return s[:chosen.start], strings.TrimSpace(s[chosen.start+1 : chosen.end])
}

// splitYear pulls the last 4-digit year out of a metadata group. The
// manufacturer is the text before the year, or after it when nothing
// precedes it.
func splitYear(meta string) (manufacturer string, year int) {
	locs := reYear.FindAllStringIndex(meta, -1)
	if len(locs) == 0 {
		return meta, 0
	}

	loc := locs[len(locs)-1]
	year, err := strconv.Atoi(meta[loc[0]:loc[1]])
	if err != nil {
		year = 0
	}

	manufacturer = strings.TrimSpace(meta[:loc[0]])
	if manufacturer == "" {
		manufacturer = strings.TrimSpace(meta[loc[1]:])
	}
	return manufacturer, year
}
