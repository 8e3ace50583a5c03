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

// v2Engine computes AccurateRip v2 checksums. The v2 sum uses the same
// ranges and multipliers as v1 but folds each 64-bit partial product
// back into 32 bits, and is not offset-searched.
type v2Engine struct {
	cursor   int64
	track    int
	segments []segment
	results  []uint32
}

func newV2Engine(startOffset int64, segments []segment) *v2Engine {
	return &v2Engine{
		cursor:   startOffset,
		segments: segments,
		results:  make([]uint32, len(segments)),
	}
}

func (e *v2Engine) processSample(sample uint32) {
	if e.track < len(e.segments) {
		seg := e.segments[e.track]
		if e.cursor >= seg.first && e.cursor <= seg.last {
			multiplier := seg.firstMult + uint32(e.cursor-seg.first)
			e.results[e.track] += fold(uint64(multiplier) * uint64(sample))
		}
		if e.track+1 < len(e.segments) && e.cursor == e.segments[e.track+1].first-1 {
			e.track++
		}
	}
	e.cursor++
}

func (e *v2Engine) checksum(track int) uint32 {
	return e.results[track]
}

// fold adds the high and low halves of a 64-bit product, wrapping.
func fold(x uint64) uint32 {
	return uint32(x>>32) + uint32(x)
}
