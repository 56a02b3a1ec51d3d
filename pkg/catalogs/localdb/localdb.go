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

// Package localdb reads the user's collection database, a PinballX style
// XML menu file.
package localdb

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZaparooProject/pinmatch/pkg/database/details"
	"github.com/ZaparooProject/pinmatch/pkg/database/resolver"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Game is one <game> element of the menu.
type Game struct {
	Name         string `xml:"name,attr"`
	Description  string `xml:"description"`
	Manufacturer string `xml:"manufacturer"`
	Year         string `xml:"year"`
	IPDBID       string `xml:"ipdbid"`
	Type         string `xml:"type"`
	Enabled      string `xml:"enabled"`
}

// IsEnabled reports whether the game is enabled in the menu. A missing
// value counts as enabled.
func (g Game) IsEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(g.Enabled)) {
	case "false", "no", "0":
		return false
	default:
		return true
	}
}

// DisplayTitle returns the description, adding the manufacturer and year
// when the description does not already carry a parenthetical group.
func (g Game) DisplayTitle() string {
	desc := strings.TrimSpace(g.Description)
	if desc == "" || strings.Contains(desc, "(") {
		return desc
	}

	var meta []string
	if m := strings.TrimSpace(g.Manufacturer); m != "" {
		meta = append(meta, m)
	}
	if y, err := strconv.Atoi(strings.TrimSpace(g.Year)); err == nil && y > 0 {
		meta = append(meta, strconv.Itoa(y))
	}
	if len(meta) == 0 {
		return desc
	}
	return desc + " (" + strings.Join(meta, " ") + ")"
}

// Database is the parsed menu.
type Database struct {
	XMLName xml.Name `xml:"menu"`
	Games   []Game   `xml:"game"`
}

// Parse decodes menu XML.
func Parse(data []byte) (Database, error) {
	var db Database
	if err := xml.Unmarshal(data, &db); err != nil {
		return Database{}, fmt.Errorf("failed to decode database: %w", err)
	}
	return db, nil
}

// Load reads the database file at path.
func Load(fs afero.Fs, path string) (Database, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Database{}, fmt.Errorf("failed to read database %s: %w", path, err)
	}
	db, err := Parse(data)
	if err != nil {
		return Database{}, fmt.Errorf("failed to load database %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("games", len(db.Games)).Msg("loaded local database")
	return db, nil
}

// ToLocalRecords builds resolver records for every enabled game with a name.
// The game's name attribute is the primary name and its display title the
// description.
func ToLocalRecords(db Database, src details.Source) []resolver.LocalRecord {
	records := make([]resolver.LocalRecord, 0, len(db.Games))
	for _, g := range db.Games {
		if strings.TrimSpace(g.Name) == "" || !g.IsEnabled() {
			continue
		}
		records = append(records, resolver.NewLocalRecord(g.Name, g.Name, g.DisplayTitle(), src))
	}
	return records
}
