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

type Report struct {
	Path string `toml:"path,omitempty"`
}

// ReportPath returns the CSV report path. Empty means the report goes to
// standard output.
func (c *Instance) ReportPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolvePath(c.vals.Report.Path)
}

func (c *Instance) SetReportPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Report.Path = absPath(path)
}
