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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nwaples/rardecode/v2"
)

// rarEntries lists a RAR archive. RAR has no central directory and the
// decoder only reads forward, so the listing scans the whole archive
// once and each entry open rescans from the start. That costs a second
// pass per track but keeps no file handle open between calls.
func rarEntries(path string) ([]entry, io.Closer, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided path is expected
	if err != nil {
		return nil, nil, fmt.Errorf("open RAR archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader, err := rardecode.NewReader(f)
	if err != nil {
		return nil, nil, fmt.Errorf("create RAR reader: %w", err)
	}

	var entries []entry //nolint:prealloc // RAR file count unknown until full scan
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read RAR header: %w", err)
		}
		if header.IsDir {
			continue
		}

		name := header.Name
		entries = append(entries, entry{
			name: name,
			size: header.UnPackedSize,
			open: func() (io.ReadCloser, error) {
				return openRAREntry(path, name)
			},
		})
	}
	return entries, nopCloser{}, nil
}

// openRAREntry seeks a named entry by scanning the archive from the
// start.
func openRAREntry(path, name string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided path is expected
	if err != nil {
		return nil, fmt.Errorf("open RAR archive: %w", err)
	}

	reader, err := rardecode.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create RAR reader: %w", err)
	}

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("read RAR header: %w", err)
		}
		if header.Name == name {
			return &rarEntryReader{file: f, reader: reader}, nil
		}
	}

	_ = f.Close()
	return nil, TrackNotFoundError{Archive: path, Name: name}
}

// rarEntryReader reads one entry and closes the archive file with it.
type rarEntryReader struct {
	file   *os.File
	reader *rardecode.Reader
}

func (r *rarEntryReader) Read(p []byte) (int, error) {
	return r.reader.Read(p) //nolint:wrapcheck // Read error passthrough is intentional
}

func (r *rarEntryReader) Close() error {
	return r.file.Close() //nolint:wrapcheck // Close error passthrough is intentional
}
