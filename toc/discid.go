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

import "fmt"

// The AccurateRip database keys a disc by three 32-bit identifiers
// derived from the table of contents: two AccurateRip-specific sums over
// the track start frames, and the classic CDDB/freedb disc ID. Together
// they name the dBAR response file for the disc.

// DiscID1 returns the first AccurateRip disc identifier: the sum of all
// track start frames including the lead-out, modulo 2^32.
func DiscID1(t TableOfContents) uint32 {
	var id uint32
	for _, e := range t.entries {
		id += uint32(e.Start.Frames())
	}
	return id
}

// DiscID2 returns the second AccurateRip disc identifier: the sum of all
// track start frames (clamped to at least 1) weighted by track position,
// with the lead-out weighted as position N+1.
func DiscID2(t TableOfContents) uint32 {
	var id uint32
	for i, e := range t.entries {
		frames := uint32(e.Start.Frames())
		if frames < 1 {
			frames = 1
		}
		weight := uint32(i + 1)
		if e.TrackNumber != LeadOutTrack {
			weight = uint32(e.TrackNumber)
		}
		id += frames * weight
	}
	return id
}

// CDDBID returns the classic CDDB/freedb disc ID:
// a digit-sum checksum byte, the disc duration in seconds, and the track
// count packed into one 32-bit value.
func CDDBID(t TableOfContents) uint32 {
	var checksum uint32
	for _, e := range t.entries {
		if e.TrackNumber == LeadOutTrack {
			continue
		}
		checksum += sumDigits(uint32(e.Start.Frames()/FramesPerSecond) + 2)
	}
	seconds := uint32(t.LeadOut().Seconds()) - uint32(t.entries[0].Start.Seconds())
	return (checksum%255)<<24 | seconds<<8 | uint32(t.Tracks())
}

// sumDigits returns the recursive decimal digit sum of x.
func sumDigits(x uint32) uint32 {
	if x == 0 {
		return 0
	}
	return x%10 + sumDigits(x/10)
}

// DataURL returns the URL of the AccurateRip dBAR response for the disc.
// The path spreads discs over directories named by the three trailing
// hex digits of DiscID1.
func DataURL(t TableOfContents) string {
	id1 := fmt.Sprintf("%08x", DiscID1(t))
	id2 := fmt.Sprintf("%08x", DiscID2(t))
	cddb := fmt.Sprintf("%08x", CDDBID(t))
	return fmt.Sprintf("http://www.accuraterip.com/accuraterip/%c/%c/%c/dBAR-%03d-%s-%s-%s.bin",
		id1[7], id1[6], id1[5], t.Tracks(), id1, id2, cddb)
}
