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

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// writeCompressedFixture writes data to path compressed per the path's
// extension.
func writeCompressedFixture(t *testing.T, path string, data []byte) {
	t.Helper()

	f, err := os.Create(path) //nolint:gosec // Test fixture path
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer func() { _ = f.Close() }()

	var w io.WriteCloser
	switch filepath.Ext(path) {
	case ".gz":
		w = gzip.NewWriter(f)
	case ".xz":
		if w, err = xz.NewWriter(f); err != nil {
			t.Fatalf("create xz writer: %v", err)
		}
	case ".zst":
		if w, err = zstd.NewWriter(f); err != nil {
			t.Fatalf("create zstd writer: %v", err)
		}
	default:
		t.Fatalf("unsupported fixture extension %q", filepath.Ext(path))
	}

	if _, err := w.Write(data); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close compressor: %v", err)
	}
}

func TestOpenCompressed(t *testing.T) {
	t.Parallel()

	payload := []byte("RIFF pretend wav payload")
	for _, ext := range []string{".gz", ".xz", ".zst"} {
		ext := ext
		t.Run(ext, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "track01.wav"+ext)
			writeCompressedFixture(t, path, payload)

			rc, err := OpenCompressed(path)
			if err != nil {
				t.Fatalf("OpenCompressed() error = %v", err)
			}
			defer func() { _ = rc.Close() }()

			got, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read compressed file: %v", err)
			}
			if string(got) != string(payload) {
				t.Errorf("decompressed = %q, want %q", got, payload)
			}
		})
	}
}

func TestNewCompressedReaderUnsupported(t *testing.T) {
	t.Parallel()

	var formatErr FormatError
	if _, err := NewCompressedReader(".bz2", nil); !errors.As(err, &formatErr) {
		t.Errorf("NewCompressedReader(.bz2) error = %v, want FormatError", err)
	}
}

func TestInnerName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"track01.wav.gz", "track01.wav"},
		{"track01.flac.zst", "track01.flac"},
		{"rips/track01.wav.xz", "rips/track01.wav"},
	}

	for _, tt := range tests {
		if got := InnerName(tt.path); got != tt.want {
			t.Errorf("InnerName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsCompressedExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want bool
	}{
		{".gz", true},
		{".xz", true},
		{".zst", true},
		{".GZ", true},
		{".zip", false},
		{".flac", false},
	}

	for _, tt := range tests {
		if got := IsCompressedExtension(tt.ext); got != tt.want {
			t.Errorf("IsCompressedExtension(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}
