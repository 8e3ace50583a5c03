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

package checksum

import "errors"

// Errors reported by the generator.
var (
	// ErrInvalidWindow indicates an offset window outside the five-frame
	// slack provided by the edge exclusion, or one that does not contain
	// offset zero.
	ErrInvalidWindow = errors.New("invalid offset window")

	// ErrExcessInput indicates more samples were delivered than the table
	// of contents describes.
	ErrExcessInput = errors.New("more samples than the TOC indicated")

	// ErrNotDone indicates a result was queried before every sample was
	// delivered.
	ErrNotDone = errors.New("not all samples processed")

	// ErrOffsetOutOfRange indicates a query for an offset outside the
	// configured window.
	ErrOffsetOutOfRange = errors.New("offset outside the configured window")

	// ErrFrameNotDefined indicates a Frame 450 query on a track shorter
	// than 451 frames.
	ErrFrameNotDefined = errors.New("track too short for a Frame 450 checksum")

	// ErrTrackOutOfRange indicates a track index outside the disc.
	ErrTrackOutOfRange = errors.New("track index out of range")
)
