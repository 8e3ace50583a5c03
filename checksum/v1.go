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

// segment is the checksummed sample range of one track: absolute disc
// sample indexes of the first and last sample under the multiplier fence,
// and the multiplier applied at the first of them.
type segment struct {
	track     int
	first     int64
	last      int64
	firstMult uint32
}

// v1Engine computes AccurateRip v1-shape checksums for every offset in
// [minOffset, maxOffset] in a single pass.
//
// Two fronts advance through the sample stream per segment. The base
// front accumulates the checksum at minOffset while the cursor traverses
// [first+minOffset, last+minOffset]. Once the cursor passes that range
// the derived front emits the checksum for each further offset from the
// recurrence
//
//	C(k+1) = C(k) - windowSum - (firstMult-1)*departing + topMult*arriving
//
// where windowSum is the plain sum of the samples currently under the
// fence, departing is the sample that slides out at the bottom and
// arriving the one that slides in at the top. The FIFO holds exactly the
// samples between the two fronts, so the departing term is always its
// head. Consecutive segments overlap: the tail of one segment's derived
// front spans the head of the next segment's base front.
type v1Engine struct {
	minOffset int64
	maxOffset int64

	cursor  int64
	base    int
	derived int

	segments []segment
	window   *sampleFIFO
	sums     []uint32
	results  [][]uint32
	slots    []int // track index -> segment index, -1 when undefined
}

func newV1Engine(startOffset int64, tracks int, segments []segment, minOffset, maxOffset int) *v1Engine {
	width := maxOffset - minOffset

	e := &v1Engine{
		minOffset: int64(minOffset),
		maxOffset: int64(maxOffset),
		cursor:    startOffset,
		segments:  segments,
		window:    newSampleFIFO(width + 1),
		sums:      make([]uint32, len(segments)),
		results:   make([][]uint32, len(segments)),
		slots:     make([]int, tracks),
	}
	for i := range e.slots {
		e.slots[i] = -1
	}
	for i, seg := range segments {
		e.slots[seg.track] = i
		e.results[i] = make([]uint32, 1, width+1)
	}
	return e
}

// processSample advances both fronts by one sample. sample is the packed
// stereo value (right<<16 | left). All accumulator arithmetic wraps.
func (e *v1Engine) processSample(sample uint32) {
	if e.base < len(e.segments) {
		seg := e.segments[e.base]
		if e.cursor >= seg.first+e.minOffset {
			if e.cursor < seg.first+e.maxOffset {
				e.window.push(sample)
			}
			if e.cursor <= seg.last+e.minOffset {
				multiplier := seg.firstMult + uint32(e.cursor-e.minOffset-seg.first)
				e.results[e.base][0] += multiplier * sample
				e.sums[e.base] += sample
			}
		}
	}

	if e.derived < len(e.segments) {
		seg := e.segments[e.derived]
		if e.cursor > seg.last+e.minOffset && e.cursor <= seg.last+e.maxOffset {
			departing := e.window.pop()
			topMult := seg.firstMult + uint32(seg.last-seg.first)
			prev := e.results[e.derived][len(e.results[e.derived])-1]
			next := prev - e.sums[e.derived] - (seg.firstMult-1)*departing + topMult*sample
			e.results[e.derived] = append(e.results[e.derived], next)
			e.sums[e.derived] += sample - departing
		}
		if e.cursor == seg.last+e.maxOffset {
			e.derived++
		}
	}

	if e.base+1 < len(e.segments) && e.cursor == e.segments[e.base+1].first-1+e.minOffset {
		e.base++
	}

	e.cursor++
}

// defined reports whether a checksum range exists for the track.
func (e *v1Engine) defined(track int) bool {
	return e.slots[track] >= 0
}

// checksum returns the track's checksum at the given offset index
// (0 = minOffset). ok is false when the derived front for that index
// never completed, which happens only when the range plus offset extends
// past the end of the disc.
func (e *v1Engine) checksum(track, offsetIndex int) (crc uint32, ok bool) {
	slot := e.slots[track]
	if slot < 0 || offsetIndex >= len(e.results[slot]) {
		return 0, false
	}
	return e.results[slot][offsetIndex], true
}

// sampleFIFO is a growable ring buffer of packed samples. It carries the
// stretch of samples between the base and derived fronts.
type sampleFIFO struct {
	buf  []uint32
	head int
	n    int
}

func newSampleFIFO(capacity int) *sampleFIFO {
	if capacity < 1 {
		capacity = 1
	}
	return &sampleFIFO{buf: make([]uint32, capacity)}
}

func (q *sampleFIFO) push(sample uint32) {
	if q.n == len(q.buf) {
		grown := make([]uint32, 2*len(q.buf))
		for i := 0; i < q.n; i++ {
			grown[i] = q.buf[(q.head+i)%len(q.buf)]
		}
		q.buf = grown
		q.head = 0
	}
	q.buf[(q.head+q.n)%len(q.buf)] = sample
	q.n++
}

func (q *sampleFIFO) pop() uint32 {
	sample := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return sample
}

func (q *sampleFIFO) len() int {
	return q.n
}
