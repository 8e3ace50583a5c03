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
	"path/filepath"
	"strings"
)

// audioExtensions are file extensions of the supported rip formats.
var audioExtensions = map[string]bool{
	".flac": true,
	".wav":  true,
}

// IsAudioFile checks if a filename has a recognized rip file extension.
func IsAudioFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return audioExtensions[ext]
}

// IsCueFile checks if a filename is a cue sheet.
func IsCueFile(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".cue"
}

// resolveTrack matches a cue sheet FILE reference against the archive
// entries: exact path first, then base name, then base name with a
// swapped rip extension (for sheets that say WAVE over a FLAC rip).
func resolveTrack(entries []entry, name string) (entry, bool) {
	name = filepath.ToSlash(name)
	base := baseName(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for _, e := range entries {
		if strings.EqualFold(filepath.ToSlash(e.name), name) {
			return e, true
		}
	}
	for _, e := range entries {
		if strings.EqualFold(baseName(e.name), base) {
			return e, true
		}
	}
	for _, e := range entries {
		entryBase := baseName(e.name)
		entryStem := strings.TrimSuffix(entryBase, filepath.Ext(entryBase))
		if strings.EqualFold(entryStem, stem) && IsAudioFile(entryBase) {
			return e, true
		}
	}
	return entry{}, false
}

// baseName is filepath.Base over forward slashes; archive entry names
// always use them.
func baseName(name string) string {
	name = filepath.ToSlash(name)
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}
