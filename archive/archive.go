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

// Package archive reads ripped discs out of archives and compressed
// files. An archived rip is a cue sheet plus the audio files it names,
// packed into a ZIP, 7z, or RAR archive; single rip files may also be
// gzip, xz, or zstd compressed.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// entry is one file inside an archive, opened lazily by the format
// reader that listed it.
type entry struct {
	name string
	size int64
	open func() (io.ReadCloser, error)
}

// Rip is an archived disc rip. Open one with [OpenRip]; the cue sheet
// is located during open, audio tracks are resolved on demand with
// [Rip.OpenTrack].
type Rip struct {
	path    string
	closer  io.Closer
	cueName string
	entries []entry
}

// OpenRip opens an archive holding a cue sheet and its rips.
// Supported formats: .zip, .7z, .rar. Archives without a cue sheet fail
// with [NoCueSheetError]; when several sheets are present the first in
// name order wins.
func OpenRip(path string) (*Rip, error) {
	var (
		entries []entry
		closer  io.Closer
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".zip":
		entries, closer, err = zipEntries(path)
	case ".7z":
		entries, closer, err = sevenZipEntries(path)
	case ".rar":
		entries, closer, err = rarEntries(path)
	default:
		return nil, FormatError{Format: ext}
	}
	if err != nil {
		return nil, err
	}

	rip := &Rip{path: path, closer: closer, entries: entries}
	for _, e := range entries {
		if IsCueFile(e.name) && (rip.cueName == "" || e.name < rip.cueName) {
			rip.cueName = e.name
		}
	}
	if rip.cueName == "" {
		_ = closer.Close()
		return nil, NoCueSheetError{Archive: path}
	}
	return rip, nil
}

// CueName returns the archive path of the cue sheet.
func (r *Rip) CueName() string {
	return r.cueName
}

// CueSheet opens the cue sheet for reading.
func (r *Rip) CueSheet() (io.ReadCloser, error) {
	for _, e := range r.entries {
		if e.name == r.cueName {
			return e.open()
		}
	}
	return nil, TrackNotFoundError{Archive: r.path, Name: r.cueName}
}

// AudioFiles returns the rip files in the archive in name order. Track
// rips are conventionally named so that lexical order is disc order.
func (r *Rip) AudioFiles() []string {
	var names []string
	for _, e := range r.entries {
		if IsAudioFile(e.name) {
			names = append(names, e.name)
		}
	}
	sort.Strings(names)
	return names
}

// OpenTrack resolves a FILE reference from the cue sheet against the
// archive and buffers the rip into memory for random access (WAV
// decoding needs to seek, and none of the archive formats can). Sheets
// routinely name a WAVE file while the archived rip is FLAC, so the
// match falls back from the exact path to the base name and then to a
// swapped rip extension. Returns the matched entry name alongside the
// reader.
func (r *Rip) OpenTrack(name string) (string, io.ReadSeeker, error) {
	e, ok := resolveTrack(r.entries, name)
	if !ok {
		return "", nil, TrackNotFoundError{Archive: r.path, Name: name}
	}

	rc, err := e.open()
	if err != nil {
		return "", nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", nil, fmt.Errorf("read %q from archive: %w", e.name, err)
	}
	return e.name, bytes.NewReader(data), nil
}

// Close releases the archive.
func (r *Rip) Close() error {
	return r.closer.Close() //nolint:wrapcheck // Close error passthrough is intentional
}

// IsArchiveExtension checks if an extension is a supported archive format.
func IsArchiveExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".zip", ".7z", ".rar":
		return true
	default:
		return false
	}
}

// nopCloser wraps a format reader that doesn't hold resources open.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }
