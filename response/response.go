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

// Package response decodes the binary dBAR blob served by the
// AccurateRip database.
//
// A response concatenates disc blocks, one per known pressing of the
// disc: a 13-byte little-endian header (track count and the three disc
// identifiers) followed by one 9-byte record per track (confidence
// count, track checksum, Frame 450 checksum).
package response

import (
	"errors"
	"fmt"
	"io"

	"github.com/ZaparooProject/go-accuraterip/internal/binary"
)

// ErrParse indicates a truncated or malformed response blob.
var ErrParse = errors.New("malformed AccurateRip response")

// Track is one reference track record: the checksum a number of
// independent rippers agreed on.
type Track struct {
	Confidence  uint8
	CRC         uint32
	Frame450CRC uint32
}

// Disc is one reference pressing: the disc identifiers echoed from the
// request plus one record per track.
type Disc struct {
	DiscID1 uint32
	DiscID2 uint32
	CDDBID  uint32
	Tracks  []Track
}

// Decode reads disc blocks until the stream ends. The stream may only
// end on a disc-block boundary; running out mid-header or mid-record
// fails with [ErrParse].
func Decode(r io.Reader) ([]Disc, error) {
	var discs []Disc
	for {
		trackCount, err := binary.ReadUint8(r)
		if errors.Is(err, io.EOF) {
			return discs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read disc info: %w", ErrParse, err)
		}

		disc := Disc{Tracks: make([]Track, 0, trackCount)}
		if disc.DiscID1, err = binary.ReadUint32LE(r); err != nil {
			return nil, fmt.Errorf("%w: failed to read disc info: %w", ErrParse, err)
		}
		if disc.DiscID2, err = binary.ReadUint32LE(r); err != nil {
			return nil, fmt.Errorf("%w: failed to read disc info: %w", ErrParse, err)
		}
		if disc.CDDBID, err = binary.ReadUint32LE(r); err != nil {
			return nil, fmt.Errorf("%w: failed to read disc info: %w", ErrParse, err)
		}

		for i := 0; i < int(trackCount); i++ {
			track, err := decodeTrack(r)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to read track info: %w", ErrParse, err)
			}
			disc.Tracks = append(disc.Tracks, track)
		}
		discs = append(discs, disc)
	}
}

func decodeTrack(r io.Reader) (Track, error) {
	var track Track
	var err error
	if track.Confidence, err = binary.ReadUint8(r); err != nil {
		return Track{}, err
	}
	if track.CRC, err = binary.ReadUint32LE(r); err != nil {
		return Track{}, err
	}
	if track.Frame450CRC, err = binary.ReadUint32LE(r); err != nil {
		return Track{}, err
	}
	return track, nil
}

// Encode writes discs in the wire format Decode reads. It is the exact
// inverse of Decode and is used for caching fetched responses.
func Encode(w io.Writer, discs []Disc) error {
	for _, disc := range discs {
		if len(disc.Tracks) > 0xFF {
			return fmt.Errorf("%w: disc has %d tracks", ErrParse, len(disc.Tracks))
		}
		if err := binary.WriteUint8(w, uint8(len(disc.Tracks))); err != nil {
			return err
		}
		if err := binary.WriteUint32LE(w, disc.DiscID1); err != nil {
			return err
		}
		if err := binary.WriteUint32LE(w, disc.DiscID2); err != nil {
			return err
		}
		if err := binary.WriteUint32LE(w, disc.CDDBID); err != nil {
			return err
		}
		for _, track := range disc.Tracks {
			if err := binary.WriteUint8(w, track.Confidence); err != nil {
				return err
			}
			if err := binary.WriteUint32LE(w, track.CRC); err != nil {
				return err
			}
			if err := binary.WriteUint32LE(w, track.Frame450CRC); err != nil {
				return err
			}
		}
	}
	return nil
}
