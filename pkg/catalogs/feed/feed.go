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

// Package feed reads the crowd-sourced online table feed from a local JSON
// export.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrEmptyFeed is returned when the feed file holds no entries at all.
var ErrEmptyFeed = errors.New("feed contains no entries")

var validate = validator.New(validator.WithRequiredStructEnabled())

// File is one downloadable file attached to a feed entry.
type File struct {
	ID      string   `json:"id" validate:"required"`
	URL     string   `json:"url,omitempty" validate:"omitempty,url"`
	Version string   `json:"version,omitempty"`
	Authors []string `json:"authors,omitempty"`
}

// Entry is one table release in the feed.
type Entry struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Manufacturer string `json:"manufacturer,omitempty"`
	IPDBURL      string `json:"ipdbUrl,omitempty" validate:"omitempty,url"`
	Type         string `json:"type,omitempty"`
	TableFiles   []File `json:"tableFiles,omitempty" validate:"dive"`
	B2SFiles     []File `json:"b2sFiles,omitempty" validate:"dive"`
	ROMFiles     []File `json:"romFiles,omitempty" validate:"dive"`
	Year         int    `json:"year,omitempty" validate:"omitempty,min=1930,max=2100"`
	UpdatedAt    int64  `json:"updatedAt,omitempty"`
}

// ExternalID returns the IPDB machine id taken from the entry's IPDB URL,
// or an empty string when there is none.
//
// Example:
//
//	"https://www.ipdb.org/machine.cgi?id=4032" → "4032"
func (e Entry) ExternalID() string {
	if e.IPDBURL == "" {
		return ""
	}
	u, err := url.Parse(e.IPDBURL)
	if err != nil {
		return ""
	}
	id := strings.TrimSpace(u.Query().Get("id"))
	if _, err := strconv.Atoi(id); err != nil {
		return ""
	}
	return id
}

// Title formats the entry the way catalog titles are written:
// "Name (Manufacturer Year)".
func (e Entry) Title() string {
	var meta []string
	if e.Manufacturer != "" {
		meta = append(meta, e.Manufacturer)
	}
	if e.Year != 0 {
		meta = append(meta, strconv.Itoa(e.Year))
	}
	if len(meta) == 0 {
		return e.Name
	}
	return e.Name + " (" + strings.Join(meta, " ") + ")"
}

// FileCount returns the number of attached files.
func (e Entry) FileCount() int {
	return len(e.TableFiles) + len(e.B2SFiles) + len(e.ROMFiles)
}

// Merge appends the other entry's files, skipping ids already present.
func (e *Entry) Merge(other Entry) {
	e.TableFiles = mergeFiles(e.TableFiles, other.TableFiles)
	e.B2SFiles = mergeFiles(e.B2SFiles, other.B2SFiles)
	e.ROMFiles = mergeFiles(e.ROMFiles, other.ROMFiles)
	if other.UpdatedAt > e.UpdatedAt {
		e.UpdatedAt = other.UpdatedAt
	}
}

func mergeFiles(dst, src []File) []File {
	if len(src) == 0 {
		return dst
	}
	seen := make(map[string]struct{}, len(dst))
	for _, f := range dst {
		seen[f.ID] = struct{}{}
	}
	for _, f := range src {
		if _, ok := seen[f.ID]; ok {
			continue
		}
		seen[f.ID] = struct{}{}
		dst = append(dst, f)
	}
	return dst
}

// Validate checks the entry's required fields and ranges.
func (e Entry) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid feed entry %q: %w", e.ID, err)
	}
	return nil
}

// Parse decodes a JSON array of entries. Entries that fail validation are
// skipped and logged.
func Parse(data []byte) ([]Entry, error) {
	var raw []Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyFeed
	}

	entries := make([]Entry, 0, len(raw))
	for i := range raw {
		if err := raw[i].Validate(); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("skipping feed entry")
			continue
		}
		entries = append(entries, raw[i])
	}

	log.Debug().
		Int("total", len(raw)).
		Int("valid", len(entries)).
		Msg("parsed feed")
	return entries, nil
}

// Load reads and parses the feed file at path.
func Load(fs afero.Fs, path string) ([]Entry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed %s: %w", path, err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed %s: %w", path, err)
	}
	return entries, nil
}
