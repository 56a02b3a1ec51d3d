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

package details

import (
	"testing"

	"github.com/ZaparooProject/pinmatch/pkg/database/cleaner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor() *Extractor {
	return NewExtractor(cleaner.New(cleaner.DefaultRules()), DefaultOriginalMarkers)
}

func TestGetTableDetails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		source     string
		isFileName bool
		want       TableDetails
	}{
		{
			name:       "file name with trailing text after group",
			source:     "Indiana Jones (Williams 1993) blah.directb2s",
			isFileName: true,
			want: TableDetails{
				Name:                     "indiana jones",
				NameNoWhitespace:         "indianajones",
				NameNoParenthesis:        "indiana jones williams 1993 blah",
				Manufacturer:             "williams",
				ManufacturerNoWhitespace: "williams",
				Year:                     1993,
			},
		},
		{
			name:   "year only group",
			source: "Indiana Jones (1993)",
			want: TableDetails{
				Name:              "indiana jones",
				NameNoWhitespace:  "indianajones",
				NameNoParenthesis: "indiana jones 1993",
				Year:              1993,
				IsOriginal:        true,
			},
		},
		{
			name:   "no parenthesis",
			source: "Twilight Zone",
			want: TableDetails{
				Name:              "twilight zone",
				NameNoWhitespace:  "twilightzone",
				NameNoParenthesis: "twilight zone",
				IsOriginal:        true,
			},
		},
		{
			name:   "numeric title kept",
			source: "123",
			want: TableDetails{
				Name:              "123",
				NameNoWhitespace:  "123",
				NameNoParenthesis: "123",
				IsOriginal:        true,
			},
		},
		{
			name:   "earlier group folded into name",
			source: "Batman (66) (Stern 2016)",
			want: TableDetails{
				Name:                     "batman 66",
				NameNoWhitespace:         "batman66",
				NameNoParenthesis:        "batman 66 stern 2016",
				Manufacturer:             "stern",
				ManufacturerNoWhitespace: "stern",
				Year:                     2016,
			},
		},
		{
			name:   "later group without year ignored",
			source: "Medieval Madness (Williams 1997) (Remake)",
			want: TableDetails{
				Name:                     "medieval madness",
				NameNoWhitespace:         "medievalmadness",
				NameNoParenthesis:        "medieval madness williams 1997 remake",
				Manufacturer:             "williams",
				ManufacturerNoWhitespace: "williams",
				Year:                     1997,
			},
		},
		{
			name:       "multi word manufacturer",
			source:     "Eight Ball 2 blah (LTD do Brasil 1981).f4v",
			isFileName: true,
			want: TableDetails{
				Name:                     "eight ball 2 blah",
				NameNoWhitespace:         "eightball2blah",
				NameNoParenthesis:        "eight ball 2 blah ltd do brasil 1981",
				Manufacturer:             "ltd do brasil",
				ManufacturerNoWhitespace: "ltddobrasil",
				Year:                     1981,
			},
		},
		{
			name:   "original marker",
			source: "Jurassic Park 30th (Original 2023)",
			want: TableDetails{
				Name:                     "jurassic park 30th",
				NameNoWhitespace:         "jurassicpark30th",
				NameNoParenthesis:        "jurassic park 30th original 2023",
				Manufacturer:             "original",
				ManufacturerNoWhitespace: "original",
				Year:                     2023,
				IsOriginal:               true,
			},
		},
		{
			name:   "manufacturer after year",
			source: "Fathom (1981 Bally)",
			want: TableDetails{
				Name:                     "fathom",
				NameNoWhitespace:         "fathom",
				NameNoParenthesis:        "fathom 1981 bally",
				Manufacturer:             "bally",
				ManufacturerNoWhitespace: "bally",
				Year:                     1981,
			},
		},
		{
			name:   "unclosed group stays in name",
			source: "Fathom (Bally",
			want: TableDetails{
				Name:              "fathom bally",
				NameNoWhitespace:  "fathombally",
				NameNoParenthesis: "fathom bally",
				IsOriginal:        true,
			},
		},
		{
			name: "empty input",
			want: TableDetails{IsOriginal: true},
		},
		{
			name:       "extension only",
			source:     ".vpx",
			isFileName: true,
			want:       TableDetails{IsOriginal: true},
		},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := e.GetTableDetails(tt.source, tt.isFileName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetTableDetailsNoiseOnlyName(t *testing.T) {
	t.Parallel()

	d := newTestExtractor().GetTableDetails("VPX Mod (Stern 2016)", false)
	assert.False(t, d.HasName())
	assert.Empty(t, d.NameNoWhitespace)
	assert.True(t, d.HasManufacturer())
	assert.True(t, d.HasYear())
}

func TestGetTableDetailsExtensionOnlyForFileNames(t *testing.T) {
	t.Parallel()

	e := newTestExtractor()
	assert.Equal(t, "dr dude", e.GetTableDetails("Dr.Dude", false).Name)
	assert.Equal(t, "dr", e.GetTableDetails("Dr.Dude", true).Name)
}

func TestTableDetailsAccessors(t *testing.T) {
	t.Parallel()

	var empty TableDetails
	assert.False(t, empty.HasName())
	assert.False(t, empty.HasYear())
	assert.False(t, empty.HasManufacturer())

	full := TableDetails{Name: "x", Manufacturer: "y", Year: 1990}
	assert.True(t, full.HasName())
	assert.True(t, full.HasYear())
	assert.True(t, full.HasManufacturer())
}

type countingSource struct {
	calls int
	inner Source
}

func (c *countingSource) GetTableDetails(source string, isFileName bool) TableDetails {
	c.calls++
	return c.inner.GetTableDetails(source, isFileName)
}

func TestCache(t *testing.T) {
	t.Parallel()

	src := &countingSource{inner: newTestExtractor()}
	c, err := NewCache(src, 2)
	require.NoError(t, err)

	first := c.GetTableDetails("Fathom (Bally 1981).vpx", true)
	second := c.GetTableDetails("Fathom (Bally 1981).vpx", true)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls)

	// isFileName is part of the key
	c.GetTableDetails("Fathom (Bally 1981).vpx", false)
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 2, c.Len())

	c.GetTableDetails("Xenon (Bally 1980)", false)
	assert.Equal(t, 2, c.Len())

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestNewCacheDefaultSize(t *testing.T) {
	t.Parallel()

	c, err := NewCache(newTestExtractor(), 0)
	require.NoError(t, err)
	assert.NotNil(t, c)
}
