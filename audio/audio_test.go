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
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// makeChannels returns n random stereo samples.
func makeChannels(rng *rand.Rand, n int) (left, right []int32) {
	left = make([]int32, n)
	right = make([]int32, n)
	for i := range left {
		left[i] = int32(int16(rng.Uint32()))
		right[i] = int32(int16(rng.Uint32()))
	}
	return left, right
}

// writeWAVFixture encodes interleaved PCM into a WAV file.
func writeWAVFixture(t *testing.T, path string, sampleRate int, left, right []int32) {
	t.Helper()

	f, err := os.Create(path) //nolint:gosec // Test fixture path
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer func() { _ = f.Close() }()

	enc := wav.NewEncoder(f, sampleRate, BitsPerSample, Channels, 1)
	data := make([]int, 0, 2*len(left))
	for i := range left {
		data = append(data, int(left[i]), int(right[i]))
	}
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: Channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: BitsPerSample,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close WAV encoder: %v", err)
	}
}

// writeFLACFixture encodes stereo PCM into a FLAC file using verbatim
// prediction.
func writeFLACFixture(t *testing.T, path string, left, right []int32) {
	t.Helper()

	f, err := os.Create(path) //nolint:gosec // Test fixture path
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer func() { _ = f.Close() }()

	info := &meta.StreamInfo{
		BlockSizeMin:  16,
		BlockSizeMax:  65535,
		SampleRate:    SampleRate,
		NChannels:     Channels,
		BitsPerSample: BitsPerSample,
	}
	enc, err := flac.NewEncoder(f, info)
	if err != nil {
		t.Fatalf("create FLAC encoder: %v", err)
	}

	const block = 588
	for off := 0; off < len(left); off += block {
		end := off + block
		if end > len(left) {
			end = len(left)
		}
		subframes := make([]*frame.Subframe, Channels)
		for ch := range subframes {
			src := left
			if ch == 1 {
				src = right
			}
			samples := make([]int32, end-off)
			copy(samples, src[off:end])
			subframes[ch] = &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   samples,
				NSamples:  len(samples),
			}
		}
		audioFrame := &frame.Frame{
			Header: frame.Header{
				BlockSize:     uint16(end - off),
				SampleRate:    SampleRate,
				Channels:      frame.ChannelsLR,
				BitsPerSample: BitsPerSample,
			},
			Subframes: subframes,
		}
		if err := enc.WriteFrame(audioFrame); err != nil {
			t.Fatalf("encode FLAC frame: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close FLAC encoder: %v", err)
	}
}

// drain reads a source to exhaustion with an awkward buffer size.
func drain(t *testing.T, src Source) (left, right []int32) {
	t.Helper()

	bufL := make([]int32, 601)
	bufR := make([]int32, 601)
	for {
		n, err := src.ReadSamples(bufL, bufR)
		left = append(left, bufL[:n]...)
		right = append(right, bufR[:n]...)
		if errors.Is(err, io.EOF) {
			return left, right
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
		if n == 0 {
			t.Fatal("ReadSamples() returned 0 samples without EOF")
		}
	}
}

func checkChannels(t *testing.T, gotL, gotR, wantL, wantR []int32) {
	t.Helper()

	if len(gotL) != len(wantL) {
		t.Fatalf("decoded %d samples, want %d", len(gotL), len(wantL))
	}
	for i := range wantL {
		if gotL[i] != wantL[i] || gotR[i] != wantR[i] {
			t.Fatalf("sample %d = (%d, %d), want (%d, %d)", i, gotL[i], gotR[i], wantL[i], wantR[i])
		}
	}
}

func TestWAVRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(10))
	wantL, wantR := makeChannels(rng, 5000)

	path := filepath.Join(t.TempDir(), "track01.wav")
	writeWAVFixture(t, path, SampleRate, wantL, wantR)

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = src.Close() }()

	if got := int64(src.SampleCount()); got != 5000 {
		t.Errorf("SampleCount() = %d, want 5000", got)
	}
	gotL, gotR := drain(t, src)
	checkChannels(t, gotL, gotR, wantL, wantR)
}

func TestFLACRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	wantL, wantR := makeChannels(rng, 3000)

	path := filepath.Join(t.TempDir(), "track01.flac")
	writeFLACFixture(t, path, wantL, wantR)

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = src.Close() }()

	gotL, gotR := drain(t, src)
	checkChannels(t, gotL, gotR, wantL, wantR)
}

func TestNewSourceFromReader(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(12))
	wantL, wantR := makeChannels(rng, 1000)

	path := filepath.Join(t.TempDir(), "rip.wav")
	writeWAVFixture(t, path, SampleRate, wantL, wantR)

	f, err := os.Open(path) //nolint:gosec // Test fixture path
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer func() { _ = f.Close() }()

	src, err := NewSource("rip.wav", f)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	gotL, gotR := drain(t, src)
	checkChannels(t, gotL, gotR, wantL, wantR)
}

func TestOpenUnsupported(t *testing.T) {
	t.Parallel()

	if _, err := Open("album.mp3"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Open(mp3) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestOpenWrongSampleRate(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(13))
	left, right := makeChannels(rng, 100)

	path := filepath.Join(t.TempDir(), "voice.wav")
	writeWAVFixture(t, path, 22050, left, right)

	if _, err := Open(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Open(22050Hz WAV) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestIsAudioExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want bool
	}{
		{".flac", true},
		{".FLAC", true},
		{".wav", true},
		{".mp3", false},
		{".bin", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsAudioExtension(tt.ext); got != tt.want {
			t.Errorf("IsAudioExtension(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}
