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

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/ZaparooProject/go-accuraterip/toc"
)

// flacSource streams samples out of a FLAC file frame by frame.
type flacSource struct {
	stream  *flac.Stream
	current *frame.Frame
	pos     int
}

// OpenFLAC opens a FLAC rip.
func OpenFLAC(path string) (Source, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FLAC: %w", err)
	}
	if err := checkStreamInfo(stream.Info); err != nil {
		_ = stream.Close()
		return nil, err
	}
	return &flacSource{stream: stream}, nil
}

// NewFLACSource decodes a FLAC rip from an already-open reader.
func NewFLACSource(r io.Reader) (Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("open FLAC: %w", err)
	}
	if err := checkStreamInfo(stream.Info); err != nil {
		_ = stream.Close()
		return nil, err
	}
	return &flacSource{stream: stream}, nil
}

func checkStreamInfo(info *meta.StreamInfo) error {
	if info.SampleRate != SampleRate || info.NChannels != Channels || info.BitsPerSample != BitsPerSample {
		return fmt.Errorf("%w: %dHz %d-channel %d-bit FLAC, need %dHz stereo %d-bit",
			ErrUnsupportedFormat, info.SampleRate, info.NChannels, info.BitsPerSample,
			SampleRate, BitsPerSample)
	}
	return nil
}

func (s *flacSource) SampleCount() toc.Time {
	return toc.Time(s.stream.Info.NSamples)
}

func (s *flacSource) ReadSamples(left, right []int32) (int, error) {
	if len(left) != len(right) {
		return 0, fmt.Errorf("channel buffers differ in length: %d != %d", len(left), len(right))
	}

	n := 0
	for n < len(left) {
		if s.current == nil || s.pos >= s.current.Subframes[0].NSamples {
			audioFrame, err := s.stream.ParseNext()
			if err != nil {
				if errors.Is(err, io.EOF) {
					if n == 0 {
						return 0, io.EOF
					}
					return n, nil
				}
				return n, fmt.Errorf("parse FLAC frame: %w", err)
			}
			if len(audioFrame.Subframes) != Channels {
				return n, fmt.Errorf("%w: frame with %d subframes", ErrUnsupportedFormat, len(audioFrame.Subframes))
			}
			s.current, s.pos = audioFrame, 0
		}

		avail := s.current.Subframes[0].NSamples - s.pos
		if want := len(left) - n; avail > want {
			avail = want
		}
		leftSamples := s.current.Subframes[0].Samples
		rightSamples := s.current.Subframes[1].Samples
		for i := 0; i < avail; i++ {
			left[n+i] = leftSamples[s.pos+i]
			right[n+i] = rightSamples[s.pos+i]
		}
		s.pos += avail
		n += avail
	}
	return n, nil
}

func (s *flacSource) Close() error {
	return s.stream.Close() //nolint:wrapcheck // Close error passthrough is intentional
}
