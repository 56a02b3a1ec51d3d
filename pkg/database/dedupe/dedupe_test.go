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

package dedupe

import (
	"testing"

	"github.com/ZaparooProject/pinmatch/pkg/catalogs/feed"
	"github.com/ZaparooProject/pinmatch/pkg/database/cleaner"
	"github.com/ZaparooProject/pinmatch/pkg/database/details"
	"github.com/ZaparooProject/pinmatch/pkg/database/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollapser() *Collapser {
	src := details.NewExtractor(cleaner.New(cleaner.DefaultRules()), details.DefaultOriginalMarkers)
	return New(src, matcher.New(matcher.DefaultOptions()))
}

func ipdb(id string) string {
	return "https://www.ipdb.org/machine.cgi?id=" + id
}

func TestCollapse(t *testing.T) {
	t.Parallel()

	entries := []feed.Entry{
		{
			ID: "mm-remaster", Name: "Medieval Madness Remastered Edition", Manufacturer: "Williams",
			Year: 1997, IPDBURL: ipdb("4032"), TableFiles: []feed.File{{ID: "t1"}},
		},
		{
			ID: "mm", Name: "Medieval Madness", Manufacturer: "Williams", Year: 1997,
			IPDBURL: ipdb("4032"), TableFiles: []feed.File{{ID: "t2"}}, B2SFiles: []feed.File{{ID: "b1"}},
		},
		{
			ID: "afm", Name: "Attack from Mars", Manufacturer: "Bally", Year: 1995,
			IPDBURL: ipdb("4032"), TableFiles: []feed.File{{ID: "t3"}},
		},
		{ID: "fathom", Name: "Fathom", Manufacturer: "Bally", Year: 1981, TableFiles: []feed.File{{ID: "t4"}}},
		{ID: "xenon", Name: "Xenon", Manufacturer: "Bally", Year: 1980, IPDBURL: ipdb("2821")},
	}

	got, warnings := newTestCollapser().Collapse(entries)

	ids := make([]string, len(got))
	for i, e := range got {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"mm", "afm", "fathom", "xenon"}, ids)

	assert.Equal(t, []feed.File{{ID: "t2"}, {ID: "t1"}}, got[0].TableFiles)
	assert.Equal(t, []feed.File{{ID: "b1"}}, got[0].B2SFiles)

	require.Len(t, warnings, 1)
	assert.Equal(t, "4032", warnings[0].ExternalID)
	assert.Equal(t, "mm", warnings[0].CanonicalID)
	assert.Equal(t, "afm", warnings[0].EntryID)
	assert.Equal(t, matcher.StrategyNone, warnings[0].Strategy)
	assert.Contains(t, warnings[0].String(), "Attack from Mars (Bally 1995)")

	// input is left untouched
	assert.Len(t, entries, 5)
	assert.Equal(t, []feed.File{{ID: "t2"}}, entries[1].TableFiles)
}

func TestCollapseYearVeto(t *testing.T) {
	t.Parallel()

	entries := []feed.Entry{
		{ID: "a", Name: "Sir Lancelot", Manufacturer: "Peyper", Year: 1994, IPDBURL: ipdb("4506")},
		{ID: "b", Name: "Sir Lancelot", Manufacturer: "Peyper", Year: 1984, IPDBURL: ipdb("4506")},
	}

	got, warnings := newTestCollapser().Collapse(entries)
	assert.Len(t, got, 2)
	require.Len(t, warnings, 1)
	assert.True(t, warnings[0].YearVetoed)
	assert.Equal(t, "a", warnings[0].CanonicalID)
	assert.Equal(t, "b", warnings[0].EntryID)
}

func TestCollapseSkipsNamelessCanonical(t *testing.T) {
	t.Parallel()

	entries := []feed.Entry{
		{ID: "noise", Name: "VPX Mod", IPDBURL: ipdb("839")},
		{ID: "fathom", Name: "Fathom", Manufacturer: "Bally", Year: 1981, IPDBURL: ipdb("839")},
	}

	got, warnings := newTestCollapser().Collapse(entries)
	assert.Len(t, got, 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, "fathom", warnings[0].CanonicalID)
	assert.Equal(t, "noise", warnings[0].EntryID)
}

func TestCollapseWithoutExternalIDs(t *testing.T) {
	t.Parallel()

	entries := []feed.Entry{
		{ID: "a", Name: "Fathom"},
		{ID: "b", Name: "Fathom"},
	}

	got, warnings := newTestCollapser().Collapse(entries)
	assert.Equal(t, entries, got)
	assert.Empty(t, warnings)
}

func TestCollapseEmpty(t *testing.T) {
	t.Parallel()

	got, warnings := newTestCollapser().Collapse(nil)
	assert.Empty(t, got)
	assert.Empty(t, warnings)
}
