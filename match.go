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
	"github.com/ZaparooProject/go-accuraterip/checksum"
	"github.com/ZaparooProject/go-accuraterip/response"
)

// TrackMatch describes how one ripped track compares against one
// reference pressing.
type TrackMatch struct {
	// Track is the 0-based track index.
	Track int

	// Confidence is the number of rippers backing the reference value.
	Confidence int

	// V2 reports an AccurateRip v2 match.
	V2 bool

	// V1 reports a v1 match at offset zero.
	V1 bool

	// OffsetFound reports a v1 match somewhere in the offset window;
	// Offset is the smallest-magnitude matching offset. A rip that
	// matches only at a non-zero offset was made on a drive with that
	// read offset.
	OffsetFound bool
	Offset      int

	// Frame450 reports a match of the single-frame probe checksum at
	// offset zero. It is false for tracks shorter than 451 frames.
	Frame450 bool
}

// Accurate reports whether the track matches the reference directly,
// with either checksum family.
func (m TrackMatch) Accurate() bool {
	return m.V1 || m.V2
}

// PressingMatch is the comparison of a rip against one pressing from the
// database response.
type PressingMatch struct {
	Disc   response.Disc
	Tracks []TrackMatch
}

// Accurate reports whether every track matched the pressing directly.
func (m PressingMatch) Accurate() bool {
	for _, track := range m.Tracks {
		if !track.Accurate() {
			return false
		}
	}
	return len(m.Tracks) > 0
}

// Match compares a finished generator against every pressing in the
// response. Pressings with a different track count are skipped. The
// generator must have consumed the whole disc.
func Match(gen *checksum.Generator, discs []response.Disc) ([]PressingMatch, error) {
	var matches []PressingMatch
	for _, disc := range discs {
		if len(disc.Tracks) != gen.Tracks() {
			continue
		}

		match := PressingMatch{Disc: disc, Tracks: make([]TrackMatch, 0, len(disc.Tracks))}
		for track, ref := range disc.Tracks {
			tm, err := matchTrack(gen, track, ref)
			if err != nil {
				return nil, err
			}
			match.Tracks = append(match.Tracks, tm)
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func matchTrack(gen *checksum.Generator, track int, ref response.Track) (TrackMatch, error) {
	tm := TrackMatch{Track: track, Confidence: int(ref.Confidence)}

	v2, err := gen.V2Checksum(track)
	if err != nil {
		return TrackMatch{}, err
	}
	tm.V2 = v2 == ref.CRC

	v1, err := gen.V1Checksum(track, 0)
	if err != nil {
		return TrackMatch{}, err
	}
	tm.V1 = v1 == ref.CRC

	if offset, found, err := searchOffset(gen, track, ref.CRC); err != nil {
		return TrackMatch{}, err
	} else if found {
		tm.OffsetFound = true
		tm.Offset = offset
	}

	if gen.HasV1Frame450Checksum(track) {
		probe, err := gen.V1Frame450Checksum(track, 0)
		if err != nil {
			return TrackMatch{}, err
		}
		tm.Frame450 = probe == ref.Frame450CRC
	}

	return tm, nil
}

// searchOffset scans the window outward from zero so the reported offset
// is the smallest-magnitude one that matches.
func searchOffset(gen *checksum.Generator, track int, want uint32) (int, bool, error) {
	span := gen.MaximumOffset()
	if -gen.MinimumOffset() > span {
		span = -gen.MinimumOffset()
	}
	for magnitude := 0; magnitude <= span; magnitude++ {
		for _, offset := range []int{magnitude, -magnitude} {
			if offset < gen.MinimumOffset() || offset > gen.MaximumOffset() {
				continue
			}
			crc, err := gen.V1Checksum(track, offset)
			if err != nil {
				return 0, false, err
			}
			if crc == want {
				return offset, true, nil
			}
			if magnitude == 0 {
				break
			}
		}
	}
	return 0, false, nil
}
