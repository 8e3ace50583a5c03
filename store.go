// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-accuraterip.
//
// go-accuraterip is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-accuraterip is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-accuraterip.  If not, see <https://www.gnu.org/licenses/>.

package accuraterip

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/ZaparooProject/go-accuraterip/response"
)

// Store caches fetched dBAR responses on disk, zstd-compressed, so
// re-verifying a disc does not hit the database again.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// entryPath maps a dBAR URL to its cache file. The dBAR filename is
// unique per disc, so the URL directories are dropped.
func (s *Store) entryPath(dataURL string) string {
	name := path.Base(dataURL)
	if u, err := url.Parse(dataURL); err == nil && u.Path != "" {
		name = path.Base(u.Path)
	}
	return filepath.Join(s.dir, name+".zst")
}

// Save writes the response for dataURL to the cache.
func (s *Store) Save(dataURL string, discs []response.Disc) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	f, err := os.Create(s.entryPath(dataURL)) //nolint:gosec // Cache path derives from the store dir
	if err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	if err := response.Encode(enc, discs); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close zstd writer: %w", err)
	}
	return nil
}

// Load reads the cached response for dataURL. found is false when the
// disc has no cache entry.
func (s *Store) Load(dataURL string) (discs []response.Disc, found bool, err error) {
	f, err := os.Open(s.entryPath(dataURL)) //nolint:gosec // Cache path derives from the store dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("open cache entry: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, false, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()

	discs, err = response.Decode(dec)
	if err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	return discs, true, nil
}
