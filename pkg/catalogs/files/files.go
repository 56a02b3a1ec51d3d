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

// Package files lists table files on disk, grouped by file stem. It never
// modifies the file system.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// DefaultExtensions are the table and backglass extensions scanned when
// none are configured.
var DefaultExtensions = []string{".vpx", ".vpt", ".fpt", ".directb2s"}

// File is every file sharing one stem inside one directory, e.g. a table
// and its backglass.
type File struct {
	Stem       string
	Dir        string
	Paths      []string
	Extensions []string
}

// Name returns the first path's base name, used as the match title.
func (f File) Name() string {
	if len(f.Paths) == 0 {
		return f.Stem
	}
	return filepath.Base(f.Paths[0])
}

func normalizeExtensions(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = struct{}{}
	}
	return set
}

// Scan walks root and returns files with one of exts (case-insensitive),
// grouped by directory and stem and sorted by path.
func Scan(fs afero.Fs, root string, exts []string) ([]File, error) {
	allowed := normalizeExtensions(exts)
	groups := make(map[string]*File)

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if _, ok := allowed[strings.ToLower(ext)]; !ok {
			return nil
		}

		dir := filepath.Dir(path)
		stem := strings.TrimSuffix(filepath.Base(path), ext)
		key := dir + "\x00" + strings.ToLower(stem)

		f, ok := groups[key]
		if !ok {
			f = &File{Stem: stem, Dir: dir}
			groups[key] = f
		}
		f.Paths = append(f.Paths, path)
		f.Extensions = append(f.Extensions, strings.ToLower(ext))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	result := make([]File, 0, len(groups))
	for _, f := range groups {
		result = append(result, *f)
	}
	slices.SortFunc(result, func(a, b File) int {
		return strings.Compare(a.Paths[0], b.Paths[0])
	})

	log.Debug().Str("root", root).Int("stems", len(result)).Msg("scanned table files")
	return result, nil
}
