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

// Package checksum implements the AccurateRip checksum families over a
// single streaming pass of the disc audio.
//
// A [Generator] produces, for every track, the v1 checksum at every read
// offset in a configurable window, the v1 "Frame 450" probe checksum at
// every offset, and the v2 checksum. Feed it the decoded samples of the
// whole disc in order with [Generator.ProcessSamples], then query
// results. A Generator is not safe for concurrent use; independent
// generators are.
package checksum

import (
	"fmt"

	"github.com/ZaparooProject/go-accuraterip/toc"
)

// The edge exclusion drops five frames of audio at both ends of the
// disc, which is exactly the slack the offset window may shift into.
const (
	edgeExclusion = 5 * toc.SamplesPerFrame // 2940

	// MinSupportedOffset is the most negative usable read offset.
	MinSupportedOffset = -(edgeExclusion - 1)

	// MaxSupportedOffset is the most positive usable read offset.
	MaxSupportedOffset = edgeExclusion
)

// frame450Start is the first sample of the 451st frame of a track.
const frame450Start = 450 * toc.SamplesPerFrame

// minFrame450Length is the shortest track that has a Frame 450 checksum.
const minFrame450Length = 451 * toc.SamplesPerFrame

// Generator streams disc audio once and accumulates all three checksum
// families. Construct with [NewGenerator] or [NewGeneratorWindow].
type Generator struct {
	table     toc.TableOfContents
	url       string
	minOffset int
	maxOffset int

	v1       *v1Engine
	frame450 *v1Engine
	v2       *v2Engine

	processed int64
	total     int64
}

// NewGenerator returns a Generator over the default offset window,
// [MinSupportedOffset, MaxSupportedOffset].
func NewGenerator(table toc.TableOfContents) (*Generator, error) {
	return NewGeneratorWindow(table, MinSupportedOffset, MaxSupportedOffset)
}

// NewGeneratorWindow returns a Generator producing v1 checksums for
// every read offset in [minOffset, maxOffset]. The window must contain
// offset zero and stay within the five-frame slack of the edge
// exclusion.
func NewGeneratorWindow(table toc.TableOfContents, minOffset, maxOffset int) (*Generator, error) {
	if minOffset > 0 || maxOffset < 0 {
		return nil, fmt.Errorf("%w: [%d, %d] does not contain offset 0",
			ErrInvalidWindow, minOffset, maxOffset)
	}
	if minOffset < MinSupportedOffset {
		return nil, fmt.Errorf("%w: minimum offset %d is below %d (five frames less one sample)",
			ErrInvalidWindow, minOffset, MinSupportedOffset)
	}
	if maxOffset > MaxSupportedOffset {
		return nil, fmt.Errorf("%w: maximum offset %d is above %d (five frames)",
			ErrInvalidWindow, maxOffset, MaxSupportedOffset)
	}

	start := int64(table.Entry(0).Start)
	tracks := table.Tracks()
	v1Segs := v1Segments(table)

	return &Generator{
		table:     table,
		url:       toc.DataURL(table),
		minOffset: minOffset,
		maxOffset: maxOffset,
		v1:        newV1Engine(start, tracks, v1Segs, minOffset, maxOffset),
		frame450:  newV1Engine(start, tracks, frame450Segments(table), minOffset, maxOffset),
		v2:        newV2Engine(start, v1Segs),
		total:     int64(table.TotalLength()),
	}, nil
}

// v1Segments returns the checksummed range of each track for the v1 and
// v2 sums. The first five frames of track 1 and the last five frames of
// the final track are excluded; because of that the multiplier for the
// first considered sample of track 1 is 2940, not 1.
func v1Segments(table toc.TableOfContents) []segment {
	tracks := table.Tracks()
	segments := make([]segment, tracks)
	for track := 0; track < tracks; track++ {
		seg := segment{
			track:     track,
			first:     int64(table.Entry(track).Start),
			last:      int64(table.Entry(track+1).Start) - 1,
			firstMult: 1,
		}
		if track == 0 {
			seg.first += edgeExclusion - 1
			seg.firstMult = edgeExclusion
		}
		if track == tracks-1 {
			seg.last -= edgeExclusion
		}
		segments[track] = seg
	}
	return segments
}

// frame450Segments returns the 451st frame of each track. Tracks shorter
// than 451 frames have no Frame 450 checksum and get no segment.
func frame450Segments(table toc.TableOfContents) []segment {
	segments := make([]segment, 0, table.Tracks())
	for track := 0; track < table.Tracks(); track++ {
		if table.TrackLength(track) < minFrame450Length {
			continue
		}
		first := int64(table.Entry(track).Start) + frame450Start
		segments = append(segments, segment{
			track:     track,
			first:     first,
			last:      first + toc.SamplesPerFrame - 1,
			firstMult: 1,
		})
	}
	return segments
}

// ProcessSamples feeds the next run of decoded samples. left and right
// are parallel buffers whose low 16 bits hold the signed PCM value, in
// disc order starting at the first track's start offset. Delivering more
// samples than the table of contents describes fails with
// [ErrExcessInput] and processes none of the call's samples.
func (g *Generator) ProcessSamples(left, right []int32) error {
	if len(left) != len(right) {
		return fmt.Errorf("channel buffers differ in length: %d != %d", len(left), len(right))
	}

	g.processed += int64(len(left))
	if g.processed > g.total {
		return fmt.Errorf("%w: received %d samples, TOC describes %d",
			ErrExcessInput, g.processed, g.total)
	}

	for i := range left {
		sample := uint32(uint16(right[i]))<<16 | uint32(uint16(left[i]))
		g.v1.processSample(sample)
		g.frame450.processSample(sample)
		g.v2.processSample(sample)
	}
	return nil
}

// ensureDone gates result queries on the whole disc having streamed
// through.
func (g *Generator) ensureDone() error {
	if g.processed != g.total {
		return fmt.Errorf("%w: received %d of %d samples", ErrNotDone, g.processed, g.total)
	}
	return nil
}

func (g *Generator) checkTrack(track int) error {
	if track < 0 || track >= g.table.Tracks() {
		return fmt.Errorf("%w: track %d of %d", ErrTrackOutOfRange, track, g.table.Tracks())
	}
	return nil
}

func (g *Generator) checkOffset(offset int) error {
	if offset < g.minOffset || offset > g.maxOffset {
		return fmt.Errorf("%w: offset %d not in [%d, %d]",
			ErrOffsetOutOfRange, offset, g.minOffset, g.maxOffset)
	}
	return nil
}

// V1Checksum returns the v1 checksum of a track (0-based index) as it
// would read with the given drive offset.
func (g *Generator) V1Checksum(track, offset int) (uint32, error) {
	if err := g.ensureDone(); err != nil {
		return 0, err
	}
	if err := g.checkTrack(track); err != nil {
		return 0, err
	}
	if err := g.checkOffset(offset); err != nil {
		return 0, err
	}
	crc, ok := g.v1.checksum(track, offset-g.minOffset)
	if !ok {
		return 0, fmt.Errorf("%w: offset %d for track %d extends past the lead-out",
			ErrOffsetOutOfRange, offset, track)
	}
	return crc, nil
}

// HasV1Frame450Checksum reports whether the track is long enough (451
// frames) to carry a Frame 450 checksum.
func (g *Generator) HasV1Frame450Checksum(track int) bool {
	return g.table.TrackLength(track) >= minFrame450Length
}

// V1Frame450Checksum returns the v1-shape checksum of the 451st frame of
// a track at the given drive offset. Tracks shorter than 451 frames fail
// with [ErrFrameNotDefined].
func (g *Generator) V1Frame450Checksum(track, offset int) (uint32, error) {
	if err := g.ensureDone(); err != nil {
		return 0, err
	}
	if err := g.checkTrack(track); err != nil {
		return 0, err
	}
	if !g.HasV1Frame450Checksum(track) {
		return 0, fmt.Errorf("%w: track %d is %s long", ErrFrameNotDefined,
			track, g.table.TrackLength(track))
	}
	if err := g.checkOffset(offset); err != nil {
		return 0, err
	}
	crc, ok := g.frame450.checksum(track, offset-g.minOffset)
	if !ok {
		return 0, fmt.Errorf("%w: offset %d for track %d extends past the lead-out",
			ErrOffsetOutOfRange, offset, track)
	}
	return crc, nil
}

// V2Checksum returns the v2 checksum of a track. AccurateRip v2 values
// are not offset-searched.
func (g *Generator) V2Checksum(track int) (uint32, error) {
	if err := g.ensureDone(); err != nil {
		return 0, err
	}
	if err := g.checkTrack(track); err != nil {
		return 0, err
	}
	return g.v2.checksum(track), nil
}

// DataURL returns the AccurateRip dBAR response URL for the disc. It is
// available from construction.
func (g *Generator) DataURL() string {
	return g.url
}

// TOC returns the table of contents the generator was built from.
func (g *Generator) TOC() toc.TableOfContents {
	return g.table
}

// MinimumOffset returns the lower bound of the offset window.
func (g *Generator) MinimumOffset() int {
	return g.minOffset
}

// MaximumOffset returns the upper bound of the offset window.
func (g *Generator) MaximumOffset() int {
	return g.maxOffset
}

// Tracks returns the number of audio tracks.
func (g *Generator) Tracks() int {
	return g.table.Tracks()
}
