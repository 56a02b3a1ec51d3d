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

package config

import (
	"path/filepath"

	"github.com/ZaparooProject/pinmatch/pkg/catalogs/files"
)

type Catalogs struct {
	Database   string   `toml:"database"`
	Feed       string   `toml:"feed"`
	TablesDir  string   `toml:"tables_dir"`
	Extensions []string `toml:"extensions,omitempty,multiline"`
}

// resolvePath makes relative catalog paths relative to the config file.
func (c *Instance) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(c.cfgPath), path)
}

// absPath anchors paths given on the command line to the working directory.
func absPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// DatabasePath returns the local database XML path.
func (c *Instance) DatabasePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolvePath(c.vals.Catalogs.Database)
}

func (c *Instance) SetDatabasePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Catalogs.Database = absPath(path)
}

// FeedPath returns the online feed JSON export path.
func (c *Instance) FeedPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolvePath(c.vals.Catalogs.Feed)
}

func (c *Instance) SetFeedPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Catalogs.Feed = absPath(path)
}

// TablesDir returns the directory scanned for table files.
func (c *Instance) TablesDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolvePath(c.vals.Catalogs.TablesDir)
}

func (c *Instance) SetTablesDir(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Catalogs.TablesDir = absPath(path)
}

// TableExtensions returns the scanned file extensions.
func (c *Instance) TableExtensions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.vals.Catalogs.Extensions) == 0 {
		return files.DefaultExtensions
	}
	return c.vals.Catalogs.Extensions
}
