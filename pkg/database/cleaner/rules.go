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

package cleaner

// Rules is the configurable part of the cleaning pipeline. Every entry is
// matched as a whole word (or word sequence) after character normalization,
// so a marker never corrupts a longer word that happens to contain it.
type Rules struct {
	// AuthorMarkers are table authors and mod groups that appear as free
	// text in shared file names.
	AuthorMarkers []string `toml:"author_markers,omitempty,multiline"`
	// NoiseTokens are format and release tokens with no identity value.
	NoiseTokens []string `toml:"noise_tokens,omitempty,multiline"`
}

// DefaultNoiseTokens are always worth dropping from a pinball title.
var DefaultNoiseTokens = []string{"mod", "vpx", "vp10", "4k"}

// DefaultAuthorMarkers is the maintained list of author and group tags seen
// in community file names.
var DefaultAuthorMarkers = []string{
	"jps",
	"jp salas",
	"vpw",
	"vpin workshop",
	"hauntfreaks",
	"bigus",
	"g5k",
	"nailbuster",
	"tastywasps",
	"apophis",
	"rothbauerw",
	"sliderpoint",
	"hanibal",
	"balutito",
	"siggi",
	"vpu",
}

// DefaultRules returns the stock rule set.
func DefaultRules() Rules {
	return Rules{
		AuthorMarkers: append([]string(nil), DefaultAuthorMarkers...),
		NoiseTokens:   append([]string(nil), DefaultNoiseTokens...),
	}
}
