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

package archive

import "testing"

func TestIsAudioFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"track01.flac", true},
		{"TRACK01.FLAC", true},
		{"track01.wav", true},
		{"album.cue", false},
		{"cover.jpg", false},
		{"track01", false},
	}

	for _, tt := range tests {
		if got := IsAudioFile(tt.name); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsCueFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"album.cue", true},
		{"Album.CUE", true},
		{"album.cue.bak", false},
		{"track01.flac", false},
	}

	for _, tt := range tests {
		if got := IsCueFile(tt.name); got != tt.want {
			t.Errorf("IsCueFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestResolveTrack(t *testing.T) {
	t.Parallel()

	entries := []entry{
		{name: "album.cue"},
		{name: "CD1/track01.flac"},
		{name: "CD1/Track02.WAV"},
		{name: "notes.txt"},
	}

	tests := []struct {
		name   string
		ref    string
		want   string
		wantOK bool
	}{
		{"exact with directory", "CD1/track01.flac", "CD1/track01.flac", true},
		{"base name only", "track01.flac", "CD1/track01.flac", true},
		{"case folded", "cd1/TRACK02.wav", "CD1/Track02.WAV", true},
		{"swapped extension", "track01.wav", "CD1/track01.flac", true},
		{"stem of non-audio ignored", "notes.flac", "", false},
		{"missing", "track03.flac", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := resolveTrack(entries, tt.ref)
			if ok != tt.wantOK {
				t.Fatalf("resolveTrack(%q) ok = %v, want %v", tt.ref, ok, tt.wantOK)
			}
			if ok && got.name != tt.want {
				t.Errorf("resolveTrack(%q) = %q, want %q", tt.ref, got.name, tt.want)
			}
		})
	}
}
