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

import "fmt"

// FormatError indicates an unsupported or invalid archive format.
type FormatError struct {
	Format string
	Reason string
}

func (e FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported archive format %s: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("unsupported archive format: %s", e.Format)
}

// NoCueSheetError indicates an archive without a cue sheet.
type NoCueSheetError struct {
	Archive string
}

func (e NoCueSheetError) Error() string {
	return fmt.Sprintf("no cue sheet found in archive %q", e.Archive)
}

// TrackNotFoundError indicates a cue sheet FILE reference that matches
// no archive entry.
type TrackNotFoundError struct {
	Archive string
	Name    string
}

func (e TrackNotFoundError) Error() string {
	return fmt.Sprintf("no entry for %q in archive %q", e.Name, e.Archive)
}
