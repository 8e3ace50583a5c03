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

// Package audio decodes ripped track files into the parallel channel
// buffers the checksum engine consumes. FLAC and WAV rips are supported.
package audio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/go-accuraterip/toc"
)

// Every source must decode to the CD-DA format.
const (
	SampleRate    = toc.SamplesPerSecond
	Channels      = 2
	BitsPerSample = 16
)

// ErrUnsupportedFormat indicates a file that is not 44.1kHz stereo
// 16-bit audio, or not a recognized container at all.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Source is decoded track audio. ReadSamples fills the parallel left and
// right buffers (which must be the same length) and returns the number
// of stereo samples written; it returns io.EOF once the audio is
// exhausted.
type Source interface {
	// SampleCount returns the total length of the audio.
	SampleCount() toc.Time

	ReadSamples(left, right []int32) (int, error)

	Close() error
}

// Open opens an audio file based on its extension.
// Supported formats: .flac, .wav
func Open(path string) (Source, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".flac":
		return OpenFLAC(path)
	case ".wav":
		return OpenWAV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// NewSource decodes audio from an already-open reader, dispatching on
// the file name's extension. It is used for rips inside archives.
func NewSource(name string, r io.ReadSeeker) (Source, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".flac":
		return NewFLACSource(r)
	case ".wav":
		return NewWAVSource(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// IsAudioExtension checks if an extension is a supported audio format.
func IsAudioExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".flac", ".wav":
		return true
	default:
		return false
	}
}
