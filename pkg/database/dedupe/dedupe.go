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

// Package dedupe collapses online feed entries that describe the same
// physical machine into one canonical entry.
package dedupe

import (
	"fmt"

	"github.com/ZaparooProject/pinmatch/pkg/catalogs/feed"
	"github.com/ZaparooProject/pinmatch/pkg/database/details"
	"github.com/ZaparooProject/pinmatch/pkg/database/matcher"
	"github.com/rs/zerolog/log"
)

// Warning records a group member that shares an external id with the
// canonical entry but does not match it by name or year.
type Warning struct {
	ExternalID    string
	CanonicalID   string
	CanonicalName string
	EntryID       string
	EntryName     string
	Strategy      matcher.Strategy
	Score         int
	YearVetoed    bool
}

func (w Warning) String() string {
	return fmt.Sprintf("ipdb %s: %q (%s) does not match canonical %q (%s)",
		w.ExternalID, w.EntryName, w.EntryID, w.CanonicalName, w.CanonicalID)
}

// Collapser merges duplicate feed entries.
type Collapser struct {
	source  details.Source
	matcher *matcher.Matcher
}

// New creates a Collapser.
func New(source details.Source, m *matcher.Matcher) *Collapser {
	return &Collapser{source: source, matcher: m}
}

type member struct {
	index   int
	details details.TableDetails
}

// Collapse groups entries by external id. Within a group the entry with the
// shortest cleaned name is canonical; every other member that matches it is
// merged into it and dropped. Members that do not match stay separate and
// produce a Warning. Entries without an external id pass through. Output
// order follows the input.
func (c *Collapser) Collapse(entries []feed.Entry) ([]feed.Entry, []Warning) {
	out := make([]feed.Entry, len(entries))
	copy(out, entries)

	var order []string
	groups := make(map[string][]member)
	for i, e := range out {
		id := e.ExternalID()
		if id == "" {
			continue
		}
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], member{
			index:   i,
			details: c.source.GetTableDetails(e.Title(), false),
		})
	}

	dropped := make(map[int]struct{})
	var warnings []Warning

	for _, id := range order {
		group := groups[id]
		if len(group) < 2 {
			continue
		}

		canon := group[0]
		for _, m := range group[1:] {
			if moreCanonical(m.details, canon.details) {
				canon = m
			}
		}

		for _, m := range group {
			if m.index == canon.index {
				continue
			}

			outcome := c.matcher.IsMatch(canon.details, m.details)
			if !outcome.Success {
				w := Warning{
					ExternalID:    id,
					CanonicalID:   out[canon.index].ID,
					CanonicalName: out[canon.index].Title(),
					EntryID:       out[m.index].ID,
					EntryName:     out[m.index].Title(),
					Strategy:      outcome.Strategy,
					Score:         outcome.Score,
					YearVetoed:    outcome.YearVetoed,
				}
				log.Warn().
					Str("ipdb", id).
					Str("canonical", w.CanonicalName).
					Str("entry", w.EntryName).
					Int("score", w.Score).
					Bool("yearVetoed", w.YearVetoed).
					Msg("duplicate feed entry does not match canonical entry, not merging")
				warnings = append(warnings, w)
				continue
			}

			out[canon.index].Merge(out[m.index])
			dropped[m.index] = struct{}{}
			log.Debug().
				Str("ipdb", id).
				Str("canonical", out[canon.index].Title()).
				Str("merged", out[m.index].Title()).
				Msg("merged duplicate feed entry")
		}
	}

	if len(dropped) == 0 {
		return out, warnings
	}

	kept := make([]feed.Entry, 0, len(out)-len(dropped))
	for i, e := range out {
		if _, ok := dropped[i]; ok {
			continue
		}
		kept = append(kept, e)
	}
	return kept, warnings
}

// moreCanonical reports whether a has a shorter cleaned name than b. An
// absent name is never canonical while another member has one.
func moreCanonical(a, b details.TableDetails) bool {
	if !a.HasName() {
		return false
	}
	if !b.HasName() {
		return true
	}
	return len(a.Name) < len(b.Name)
}
