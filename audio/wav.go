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

package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ZaparooProject/go-accuraterip/toc"
)

// wavChunkSamples is how many stereo samples each decode call pulls.
const wavChunkSamples = 4096

// wavSource streams samples out of a WAV file.
type wavSource struct {
	closer io.Closer // underlying file, nil when fed a reader
	dec    *wav.Decoder
	buf    *gaudio.IntBuffer
	data   []int // interleaved samples of the current chunk
	pos    int
	total  toc.Time
}

// OpenWAV opens a WAV rip.
func OpenWAV(path string) (Source, error) {
	f, err := os.Open(path) //nolint:gosec // Path from user input is expected
	if err != nil {
		return nil, fmt.Errorf("open WAV: %w", err)
	}
	src, err := newWAVSource(f, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return src, nil
}

// NewWAVSource decodes a WAV rip from an already-open reader.
func NewWAVSource(r io.ReadSeeker) (Source, error) {
	return newWAVSource(r, nil)
}

func newWAVSource(r io.ReadSeeker, closer io.Closer) (*wavSource, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrUnsupportedFormat)
	}
	if int(dec.SampleRate) != SampleRate || int(dec.NumChans) != Channels || int(dec.BitDepth) != BitsPerSample {
		return nil, fmt.Errorf("%w: %dHz %d-channel %d-bit WAV, need %dHz stereo %d-bit",
			ErrUnsupportedFormat, dec.SampleRate, dec.NumChans, dec.BitDepth,
			SampleRate, BitsPerSample)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("seek WAV data chunk: %w", err)
	}

	return &wavSource{
		closer: closer,
		dec:    dec,
		buf: &gaudio.IntBuffer{
			Format: &gaudio.Format{
				NumChannels: Channels,
				SampleRate:  SampleRate,
			},
			Data:           make([]int, Channels*wavChunkSamples),
			SourceBitDepth: BitsPerSample,
		},
		total: toc.Time(dec.PCMSize / (Channels * BitsPerSample / 8)),
	}, nil
}

func (s *wavSource) SampleCount() toc.Time {
	return s.total
}

func (s *wavSource) ReadSamples(left, right []int32) (int, error) {
	if len(left) != len(right) {
		return 0, fmt.Errorf("channel buffers differ in length: %d != %d", len(left), len(right))
	}

	n := 0
	for n < len(left) {
		if s.pos >= len(s.data) {
			read, err := s.dec.PCMBuffer(s.buf)
			if err != nil && !errors.Is(err, io.EOF) {
				return n, fmt.Errorf("decode WAV samples: %w", err)
			}
			if read == 0 {
				if n == 0 {
					return 0, io.EOF
				}
				return n, nil
			}
			s.data = s.buf.Data[:read-read%Channels]
			s.pos = 0
		}

		for n < len(left) && s.pos+Channels <= len(s.data) {
			left[n] = int32(s.data[s.pos])
			right[n] = int32(s.data[s.pos+1])
			s.pos += Channels
			n++
		}
	}
	return n, nil
}

func (s *wavSource) Close() error {
	if s.closer != nil {
		return s.closer.Close() //nolint:wrapcheck // Close error passthrough is intentional
	}
	return nil
}
