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

package toc

import (
	"errors"
	"fmt"
)

// LeadOutTrack is the conventional track number of the lead-out entry.
const LeadOutTrack = 0xAA

// MaxTracks is the maximum number of audio tracks on a Red-Book disc.
const MaxTracks = 99

// minTrackLength is the Red-Book minimum length of a track (4 seconds).
const minTrackLength = 4 * SamplesPerSecond

// ErrInvalidTOC indicates a table of contents that violates the Red-Book
// layout rules.
var ErrInvalidTOC = errors.New("invalid table of contents")

// Entry is one row of a table of contents: a track number and the
// absolute disc offset at which the track starts. The final entry of
// every table carries [LeadOutTrack] and the disc's total length.
type Entry struct {
	TrackNumber int
	Start       Time
}

// TableOfContents is an immutable ordered list of track start offsets
// terminated by the lead-out. Construct one with [FromTrackLengths] or
// [FromTrackOffsets]; the zero value is empty and unusable.
type TableOfContents struct {
	entries []Entry
}

// FromTrackLengths builds a table of contents from per-track lengths and
// the start offset of the first track. The resulting table has one entry
// per track plus the lead-out.
func FromTrackLengths(trackLengths []Time, firstTrackOffset Time) (TableOfContents, error) {
	if len(trackLengths) > MaxTracks {
		return TableOfContents{}, fmt.Errorf("%w: a disc can contain at most %d tracks (got %d)",
			ErrInvalidTOC, MaxTracks, len(trackLengths))
	}
	if len(trackLengths) == 0 {
		return TableOfContents{}, fmt.Errorf("%w: no tracks", ErrInvalidTOC)
	}
	if !firstTrackOffset.IsFrameBoundary() {
		return TableOfContents{}, fmt.Errorf("%w: first track offset %s (%d samples) is not a frame boundary",
			ErrInvalidTOC, firstTrackOffset, int64(firstTrackOffset))
	}

	entries := make([]Entry, 0, len(trackLengths)+1)
	entries = append(entries, Entry{TrackNumber: 1, Start: firstTrackOffset})
	for _, trackLength := range trackLengths {
		if !trackLength.IsFrameBoundary() {
			return TableOfContents{}, fmt.Errorf("%w: track length %s (%d samples) is not a frame boundary",
				ErrInvalidTOC, trackLength, int64(trackLength))
		}
		if trackLength < minTrackLength {
			return TableOfContents{}, fmt.Errorf("%w: track length %s is shorter than 4 seconds",
				ErrInvalidTOC, trackLength)
		}
		prev := entries[len(entries)-1]
		entries = append(entries, Entry{
			TrackNumber: prev.TrackNumber + 1,
			Start:       prev.Start + trackLength,
		})
	}
	entries[len(entries)-1].TrackNumber = LeadOutTrack

	return TableOfContents{entries: entries}, nil
}

// FromTrackOffsets builds a table of contents from absolute track start
// offsets. The final element is taken as the lead-out position. Offsets
// must be strictly increasing; each derived track length is validated
// against the Red-Book minimum.
func FromTrackOffsets(trackOffsets []Time) (TableOfContents, error) {
	if len(trackOffsets) < 2 {
		return TableOfContents{}, fmt.Errorf(
			"%w: need at least 2 offsets (the start of at least 1 track, and the lead-out)",
			ErrInvalidTOC)
	}
	for i := 0; i+1 < len(trackOffsets); i++ {
		if trackOffsets[i+1] <= trackOffsets[i] {
			return TableOfContents{}, fmt.Errorf("%w: offsets not strictly increasing (%s then %s)",
				ErrInvalidTOC, trackOffsets[i], trackOffsets[i+1])
		}
	}
	trackLengths := make([]Time, len(trackOffsets)-1)
	for i := range trackLengths {
		trackLengths[i] = trackOffsets[i+1] - trackOffsets[i]
	}
	return FromTrackLengths(trackLengths, trackOffsets[0])
}

// NumEntries returns the number of entries including the lead-out.
func (t TableOfContents) NumEntries() int {
	return len(t.entries)
}

// Tracks returns the number of audio tracks (entries minus the lead-out).
func (t TableOfContents) Tracks() int {
	if len(t.entries) == 0 {
		return 0
	}
	return len(t.entries) - 1
}

// Entry returns the i-th entry. The lead-out is Entry(Tracks()).
func (t TableOfContents) Entry(i int) Entry {
	return t.entries[i]
}

// Entries returns a copy of all entries including the lead-out.
func (t TableOfContents) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// TrackLength returns the length of the given track (0-based index).
func (t TableOfContents) TrackLength(track int) Time {
	return t.entries[track+1].Start - t.entries[track].Start
}

// TotalLength returns the length of the audio area: lead-out minus the
// first track's start offset.
func (t TableOfContents) TotalLength() Time {
	return t.entries[len(t.entries)-1].Start - t.entries[0].Start
}

// LeadOut returns the absolute offset of the lead-out.
func (t TableOfContents) LeadOut() Time {
	return t.entries[len(t.entries)-1].Start
}
