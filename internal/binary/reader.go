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

// Package binary provides utilities for reading and writing the
// little-endian wire format of the AccurateRip database.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadUint8 reads a single byte from r.
func ReadUint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("read uint8: %w", err)
	}
	return buf[0], nil
}

// ReadUint32LE reads a little-endian uint32 from r.
func ReadUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("read uint32 LE: %w", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteUint8 writes a single byte to w.
func WriteUint8(w io.Writer, v uint8) error {
	if _, err := w.Write([]byte{v}); err != nil {
		return fmt.Errorf("write uint8: %w", err)
	}
	return nil
}

// WriteUint32LE writes a little-endian uint32 to w.
func WriteUint32LE(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("write uint32 LE: %w", err)
	}
	return nil
}
