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

// Package cleaner reduces free-text table titles to a canonical lower-case
// ASCII form so that titles from different catalogs can be compared.
package cleaner

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// maxPasses bounds the fixed-point loop in Clean. Real titles settle after
// one or two passes.
const maxPasses = 8

var (
	reCamelBoundary  = regexp.MustCompile(`([a-z])([A-Z])`)
	reVersionToken   = regexp.MustCompile(`\bv\d+(?:\.\d+)*\b`)
	reDottedNumber   = regexp.MustCompile(`\b\d+(?:\.\d+)+\b`)
	reTrailingDots   = regexp.MustCompile(`\.+$`)
	reMultiSpace     = regexp.MustCompile(`\s+`)
	reIDPreamble     = regexp.MustCompile(`^\d{5,}\s*([a-z])`)
	reLeadingArticle = regexp.MustCompile(`^(?:the|a)\s+`)
)

var (
	mojibakeReplacer = strings.NewReplacer(
		"\uFFFD", "",
		"\u00C3", "",
		"\u00C2", "",
	)
	quoteReplacer = strings.NewReplacer(
		"&apos;", "",
		"'", "",
		"`", "",
		"\u2019", "",
		"\u2018", "",
		"\"", "",
	)
	punctuationReplacer = strings.NewReplacer(
		",", "",
		";", "",
		"!", "",
		"?", "",
	)
)

// Cleaner normalizes titles using a fixed rule set. A Cleaner is immutable
// once built and safe for concurrent use.
type Cleaner struct {
	noise *regexp.Regexp
	rules Rules
}

// New compiles the given rules into a Cleaner.
func New(rules Rules) *Cleaner {
	c := &Cleaner{rules: rules}

	tokens := make([]string, 0, len(rules.AuthorMarkers)+len(rules.NoiseTokens))
	for _, t := range append(append([]string{}, rules.AuthorMarkers...), rules.NoiseTokens...) {
		// markers go through the same character rules as titles so that
		// "JP's" in the rule list matches "jps" in a cleaned title
		t = collapse(normalizeChars(t))
		if t == "" {
			continue
		}
		words := strings.Fields(t)
		for i := range words {
			words[i] = regexp.QuoteMeta(words[i])
		}
		tokens = append(tokens, strings.Join(words, `\s+`))
	}
	if len(tokens) > 0 {
		c.noise = regexp.MustCompile(`\b(?:` + strings.Join(tokens, "|") + `)\b`)
	}

	return c
}

// Rules returns the rule set the Cleaner was built from.
func (c *Cleaner) Rules() Rules {
	return c.rules
}

// Clean normalizes input for comparison. An empty result means the input
// held no usable title. When stripAllWhitespace is set every remaining
// space is removed as the last step ("TwilightZone" style comparisons).
//
// Clean is idempotent: Clean(Clean(x, false), false) == Clean(x, false).
func (c *Cleaner) Clean(input string, stripAllWhitespace bool) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	for range maxPasses {
		next := c.pass(s)
		if next == s {
			break
		}
		s = next
	}

	if stripAllWhitespace {
		s = strings.ReplaceAll(s, " ", "")
	}
	return s
}

// pass applies every rule exactly once.
func (c *Cleaner) pass(s string) string {
	s = normalizeChars(s)
	s = collapse(s)

	if c.noise != nil {
		s = collapse(c.noise.ReplaceAllString(s, " "))
	}

	s = reIDPreamble.ReplaceAllString(s, "$1")
	s = reLeadingArticle.ReplaceAllString(s, "")
	s = strings.ReplaceAll(" "+s+" ", " a ", " ")

	return collapse(s)
}

// normalizeChars runs the character-level rules: case, composition,
// quotes, punctuation, separators and ASCII folding.
func normalizeChars(s string) string {
	s = reCamelBoundary.ReplaceAllString(s, "$1 $2")
	s = mojibakeReplacer.Replace(s)
	s = norm.NFC.String(strings.ToLower(s))
	s = strings.TrimSpace(s)

	s = quoteReplacer.Replace(s)
	s = punctuationReplacer.Replace(s)

	s = reVersionToken.ReplaceAllString(s, " ")
	s = reDottedNumber.ReplaceAllString(s, " ")

	s = reTrailingDots.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ".", " ")

	s = strings.ReplaceAll(s, " - ", "")
	s = strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ':', '/', '\\', '|', '+', '=', '~', '*',
			'(', ')', '[', ']', '{', '}', '<', '>':
			return ' '
		default:
			return r
		}
	}, s)

	s = strings.ReplaceAll(s, "&", " and ")

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '\t', r == '\n', r == '\r':
			return ' '
		default:
			return -1
		}
	}, s)
}

func collapse(s string) string {
	return strings.TrimSpace(reMultiSpace.ReplaceAllString(s, " "))
}
