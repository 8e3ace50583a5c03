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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// IsCompressedExtension checks if an extension is a supported
// single-file compression format.
func IsCompressedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".gz", ".xz", ".zst":
		return true
	default:
		return false
	}
}

// InnerName strips the compression extension: "track01.wav.gz" names a
// WAV rip.
func InnerName(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// OpenCompressed opens a compressed rip file and returns the
// decompressing reader.
func OpenCompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided path is expected
	if err != nil {
		return nil, fmt.Errorf("open compressed file: %w", err)
	}

	rc, err := NewCompressedReader(filepath.Ext(path), f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &compressedFile{ReadCloser: rc, file: f}, nil
}

// NewCompressedReader wraps r with the decompressor named by ext.
func NewCompressedReader(ext string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(ext) {
	case ".gz":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		return gz, nil
	case ".xz":
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create xz reader: %w", err)
		}
		return io.NopCloser(xr), nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create zstd reader: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, FormatError{Format: ext}
	}
}

// compressedFile closes both the decompressor and the underlying file.
type compressedFile struct {
	io.ReadCloser
	file *os.File
}

func (c *compressedFile) Close() error {
	err := c.ReadCloser.Close()
	if ferr := c.file.Close(); err == nil {
		err = ferr
	}
	return err
}
