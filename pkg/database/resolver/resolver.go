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

// Package resolver assigns foreign titles to local collection records,
// keeping at most one foreign match per local record.
package resolver

import (
	"github.com/ZaparooProject/pinmatch/pkg/database/matcher"
	"github.com/rs/zerolog/log"
)

const (
	DefaultUniquenessMargin = 50
	DefaultUniquenessBonus  = 25
)

// Options controls the uniqueness bonus.
type Options struct {
	// UniquenessMargin is how far the runner-up local record must trail the
	// winner for the match to count as uncontested.
	UniquenessMargin int
	// UniquenessBonus is added to the score of an uncontested match.
	UniquenessBonus int
}

// DefaultOptions returns the standard uniqueness settings.
func DefaultOptions() Options {
	return Options{
		UniquenessMargin: DefaultUniquenessMargin,
		UniquenessBonus:  DefaultUniquenessBonus,
	}
}

// Result describes one resolution.
type Result struct {
	Strategy matcher.Strategy
	// MatchedText is the raw local text (name or description) that won.
	MatchedText string
	// Local is the assigned local index, or NoMatch.
	Local int
	// Score is the assignment score, or the best score seen when nothing
	// was assigned.
	Score int
	// Blocked is the local record that refused the match when Rejected.
	Blocked int
	// Evicted is the foreign record displaced by this assignment, or NoMatch.
	Evicted  int
	Success  bool
	Unique   bool
	Rejected bool
}

// Stats counts foreign record states after a batch.
type Stats struct {
	Total     int
	Matched   int
	Unmatched int
	Rejected  int
	Evicted   int
}

// Resolver runs the assignment. It keeps no state between calls; all
// assignment state lives in the Pool.
type Resolver struct {
	matcher *matcher.Matcher
	opts    Options
}

// New creates a Resolver.
func New(m *matcher.Matcher, opts Options) *Resolver {
	return &Resolver{matcher: m, opts: opts}
}

type candidate struct {
	outcome matcher.MatchOutcome
	text    string
	local   int
}

func (c candidate) beats(other candidate) bool {
	if c.local == NoMatch {
		return false
	}
	if other.local == NoMatch || c.outcome.Score > other.outcome.Score {
		return true
	}
	return c.outcome.Score == other.outcome.Score && len(c.text) > len(other.text)
}

// MatchToLocalDatabase finds the best local record for the foreign record
// at index foreign and links them. An existing link held by the local
// record is replaced only by a strictly higher score. Resolving a record
// that is already linked releases its old link first.
func (r *Resolver) MatchToLocalDatabase(pool *Pool, foreign int) Result {
	pool.release(foreign)
	f := &pool.Foreign[foreign]

	best := candidate{local: NoMatch}
	runnerUp := 0
	hasRunnerUp := false
	bestObserved := 0
	observed := false

	// best successful score per local record, for the uniqueness check
	perLocal := make(map[int]int)

	for i := range pool.Locals {
		l := &pool.Locals[i]
		for _, field := range []struct {
			text string
			out  matcher.MatchOutcome
		}{
			{l.Name, r.matcher.IsMatch(f.Details, l.Details)},
			{l.Description, r.matcher.IsMatch(f.Details, l.DescriptionDetails)},
		} {
			if !observed || field.out.Score > bestObserved {
				bestObserved = field.out.Score
				observed = true
			}
			if !field.out.Success {
				continue
			}
			if s, ok := perLocal[i]; !ok || field.out.Score > s {
				perLocal[i] = field.out.Score
			}
			c := candidate{outcome: field.out, text: field.text, local: i}
			if c.beats(best) {
				best = c
			}
		}
	}

	f.BestScore = bestObserved

	if best.local == NoMatch {
		f.Status = StatusUnmatched
		f.Blocked = NoMatch
		return Result{
			Local:   NoMatch,
			Score:   bestObserved,
			Blocked: NoMatch,
			Evicted: NoMatch,
		}
	}

	for i, s := range perLocal {
		if i == best.local {
			continue
		}
		if !hasRunnerUp || s > runnerUp {
			runnerUp = s
			hasRunnerUp = true
		}
	}

	res := Result{
		Strategy:    best.outcome.Strategy,
		MatchedText: best.text,
		Local:       best.local,
		Score:       best.outcome.Score,
		Blocked:     NoMatch,
		Evicted:     NoMatch,
	}
	if !hasRunnerUp || best.outcome.Score-runnerUp >= r.opts.UniquenessMargin {
		res.Score += r.opts.UniquenessBonus
		res.Unique = true
	}

	l := &pool.Locals[best.local]
	if l.Match.Assigned() {
		if res.Score <= l.Match.Score {
			log.Debug().
				Str("foreign", f.Title).
				Str("local", best.text).
				Int("score", res.Score).
				Int("existingScore", l.Match.Score).
				Msg("local record keeps existing match")
			f.Status = StatusRejected
			f.Blocked = best.local
			f.BestScore = res.Score
			res.Local = NoMatch
			res.Rejected = true
			res.Blocked = best.local
			return res
		}

		evicted := l.Match.Index
		log.Debug().
			Str("foreign", f.Title).
			Str("evicted", pool.Foreign[evicted].Title).
			Str("local", best.text).
			Int("score", res.Score).
			Int("existingScore", l.Match.Score).
			Msg("evicting weaker match")
		pool.release(evicted)
		pool.Foreign[evicted].Status = StatusEvicted
		pool.Foreign[evicted].Blocked = best.local
		res.Evicted = evicted
	}

	pool.link(best.local, foreign, res.Score, res.Strategy)
	res.Success = true
	return res
}

// MatchAll resolves every foreign record in order and returns the final
// state counts.
func (r *Resolver) MatchAll(pool *Pool) Stats {
	for i := range pool.Foreign {
		r.MatchToLocalDatabase(pool, i)
	}

	stats := CountStats(pool)
	log.Info().
		Int("total", stats.Total).
		Int("matched", stats.Matched).
		Int("unmatched", stats.Unmatched).
		Int("rejected", stats.Rejected).
		Int("evicted", stats.Evicted).
		Msg("resolved foreign records")
	return stats
}

// CountStats tallies the current status of every foreign record.
func CountStats(pool *Pool) Stats {
	stats := Stats{Total: len(pool.Foreign)}
	for _, f := range pool.Foreign {
		switch f.Status {
		case StatusMatched:
			stats.Matched++
		case StatusRejected:
			stats.Rejected++
			stats.Unmatched++
		case StatusEvicted:
			stats.Evicted++
			stats.Unmatched++
		case StatusPending, StatusUnmatched:
			stats.Unmatched++
		}
	}
	return stats
}
