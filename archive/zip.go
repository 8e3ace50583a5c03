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

package archive

import (
	"archive/zip"
	"fmt"
	"io"
)

// zipEntries lists a ZIP archive. The returned entries stay readable
// until the closer is closed.
func zipEntries(path string) ([]entry, io.Closer, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open ZIP archive: %w", err)
	}

	entries := make([]entry, 0, len(reader.File))
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, entry{
			name: file.Name,
			size: int64(file.UncompressedSize64), //nolint:gosec // Safe: file sizes don't exceed int64
			open: file.Open,
		})
	}
	return entries, reader, nil
}
