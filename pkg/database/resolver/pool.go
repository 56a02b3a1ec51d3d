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

package resolver

import (
	"errors"
	"fmt"

	"github.com/ZaparooProject/pinmatch/pkg/database/details"
	"github.com/ZaparooProject/pinmatch/pkg/database/matcher"
)

// NoMatch is the index stored in an empty assignment slot.
const NoMatch = -1

// ErrInconsistentPool is returned by Validate when the two sides of an
// assignment do not point at each other.
var ErrInconsistentPool = errors.New("inconsistent match assignment")

// Assignment is one side of a local/foreign link: the index of the record
// on the other side and the score the link was made with.
type Assignment struct {
	Index    int
	Score    int
	Strategy matcher.Strategy
}

// Unassigned returns an empty slot.
func Unassigned() Assignment {
	return Assignment{Index: NoMatch}
}

// Assigned reports whether the slot holds a link.
func (a Assignment) Assigned() bool {
	return a.Index != NoMatch
}

// Status is the resolution state of a foreign record.
type Status int

const (
	StatusPending Status = iota
	StatusMatched
	StatusUnmatched
	// StatusRejected means a local record matched but kept a stronger
	// foreign match.
	StatusRejected
	// StatusEvicted means the record was matched and later displaced by a
	// higher scoring foreign record.
	StatusEvicted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusMatched:
		return "matched"
	case StatusUnmatched:
		return "unmatched"
	case StatusRejected:
		return "rejected"
	case StatusEvicted:
		return "evicted"
	default:
		return "unknown"
	}
}

// LocalRecord is an entry of the user's collection database.
type LocalRecord struct {
	ID                 string
	Name               string
	Description        string
	Details            details.TableDetails
	DescriptionDetails details.TableDetails
	Match              Assignment
}

// NewLocalRecord extracts details for the record's name and description.
func NewLocalRecord(id, name, description string, src details.Source) LocalRecord {
	return LocalRecord{
		ID:                 id,
		Name:               name,
		Description:        description,
		Details:            src.GetTableDetails(name, false),
		DescriptionDetails: src.GetTableDetails(description, false),
		Match:              Unassigned(),
	}
}

// ForeignRecord is a candidate from the online feed or a file name.
type ForeignRecord struct {
	ID      string
	Title   string
	Details details.TableDetails
	Match   Assignment
	Status  Status
	// BestScore is the highest score seen during the last resolution, kept
	// for diagnostics when nothing matched.
	BestScore int
	// Blocked is the local record that refused or displaced this record.
	Blocked int
}

// NewForeignRecord extracts details for a foreign title.
func NewForeignRecord(id, title string, isFileName bool, src details.Source) ForeignRecord {
	return ForeignRecord{
		ID:      id,
		Title:   title,
		Details: src.GetTableDetails(title, isFileName),
		Match:   Unassigned(),
		Blocked: NoMatch,
	}
}

// Pool holds the two arenas. Links are stored as indexes into the other
// arena, never as pointers.
type Pool struct {
	Locals  []LocalRecord
	Foreign []ForeignRecord
}

// NewPool creates a pool over locals with every slot cleared.
func NewPool(locals []LocalRecord) *Pool {
	p := &Pool{Locals: make([]LocalRecord, len(locals))}
	copy(p.Locals, locals)
	for i := range p.Locals {
		p.Locals[i].Match = Unassigned()
	}
	return p
}

// AddForeign appends a foreign record with a cleared slot and returns its
// index.
func (p *Pool) AddForeign(f ForeignRecord) int {
	f.Match = Unassigned()
	f.Status = StatusPending
	f.Blocked = NoMatch
	p.Foreign = append(p.Foreign, f)
	return len(p.Foreign) - 1
}

// LocalFor returns the local record assigned to a foreign record.
func (p *Pool) LocalFor(foreign int) (*LocalRecord, bool) {
	if foreign < 0 || foreign >= len(p.Foreign) {
		return nil, false
	}
	m := p.Foreign[foreign].Match
	if !m.Assigned() {
		return nil, false
	}
	return &p.Locals[m.Index], true
}

// Validate checks that every link is symmetric.
func (p *Pool) Validate() error {
	for i, l := range p.Locals {
		if !l.Match.Assigned() {
			continue
		}
		if l.Match.Index < 0 || l.Match.Index >= len(p.Foreign) {
			return fmt.Errorf("%w: local %d points at foreign %d out of range", ErrInconsistentPool, i, l.Match.Index)
		}
		back := p.Foreign[l.Match.Index].Match
		if back.Index != i || back.Score != l.Match.Score {
			return fmt.Errorf("%w: local %d and foreign %d disagree", ErrInconsistentPool, i, l.Match.Index)
		}
	}
	for i, f := range p.Foreign {
		if !f.Match.Assigned() {
			continue
		}
		if f.Match.Index < 0 || f.Match.Index >= len(p.Locals) {
			return fmt.Errorf("%w: foreign %d points at local %d out of range", ErrInconsistentPool, i, f.Match.Index)
		}
		if p.Locals[f.Match.Index].Match.Index != i {
			return fmt.Errorf("%w: foreign %d and local %d disagree", ErrInconsistentPool, i, f.Match.Index)
		}
	}
	return nil
}

func (p *Pool) release(foreign int) {
	f := &p.Foreign[foreign]
	if !f.Match.Assigned() {
		return
	}
	if l := &p.Locals[f.Match.Index]; l.Match.Index == foreign {
		l.Match = Unassigned()
	}
	f.Match = Unassigned()
}

func (p *Pool) link(local, foreign int, score int, strategy matcher.Strategy) {
	p.Locals[local].Match = Assignment{Index: foreign, Score: score, Strategy: strategy}
	f := &p.Foreign[foreign]
	f.Match = Assignment{Index: local, Score: score, Strategy: strategy}
	f.Status = StatusMatched
	f.Blocked = NoMatch
}
