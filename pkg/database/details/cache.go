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
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of extracted titles kept by NewCache when
// a non-positive size is given.
const DefaultCacheSize = 4096

type cacheKey struct {
	source     string
	isFileName bool
}

// Cache memoizes a Source. It is safe for concurrent use.
type Cache struct {
	source Source
	lru    *lru.Cache[cacheKey, TableDetails]
}

// NewCache wraps source with a bounded LRU of the given size.
func NewCache(source Source, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[cacheKey, TableDetails](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create details cache: %w", err)
	}
	return &Cache{source: source, lru: c}, nil
}

// GetTableDetails returns the cached details for source, extracting and
// storing them on a miss.
func (c *Cache) GetTableDetails(source string, isFileName bool) TableDetails {
	key := cacheKey{source: source, isFileName: isFileName}
	if d, ok := c.lru.Get(key); ok {
		return d
	}
	d := c.source.GetTableDetails(source, isFileName)
	c.lru.Add(key, d)
	return d
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops every cached entry.
func (c *Cache) Purge() {
	c.lru.Purge()
}
