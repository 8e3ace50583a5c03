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

// Package cue parses cue sheets and derives the track layout a table of
// contents is built from.
package cue

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ZaparooProject/go-accuraterip/toc"
)

// ErrParse indicates a malformed cue sheet.
var ErrParse = errors.New("malformed cue sheet")

// File is one FILE entry of a cue sheet.
type File struct {
	Path string // as written in the sheet
	Type string // WAVE, BINARY, ...
}

// Index is one INDEX entry of a track. File is the position of the
// enclosing FILE entry in the sheet's file list; Offset is relative to
// the start of that file.
type Index struct {
	Number int
	File   int
	Offset toc.Time
}

// Track is one TRACK entry with its indexes and CD-TEXT fields.
type Track struct {
	Number     int
	DataType   string
	Title      string
	Performer  string
	Songwriter string
	ISRC       string
	Flags      string
	Pregap     *toc.Time
	Postgap    *toc.Time
	Indexes    []Index
	Comments   []string
}

// Index01 returns the track's INDEX 01 entry, the start of the track
// audio proper.
func (t *Track) Index01() (Index, bool) {
	for _, idx := range t.Indexes {
		if idx.Number == 1 {
			return idx, true
		}
	}
	return Index{}, false
}

// Sheet is a parsed cue sheet.
type Sheet struct {
	Files      []File
	Catalog    string
	CDTextFile string
	Title      string
	Performer  string
	Songwriter string
	Comments   []string
	Tracks     []Track
}

// ParseFile parses the cue sheet at path.
func ParseFile(path string) (*Sheet, error) {
	f, err := os.Open(path) //nolint:gosec // Path from user input is expected
	if err != nil {
		return nil, fmt.Errorf("open cue sheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse parses a cue sheet from r.
//
//nolint:gocognit // One case per cue sheet command keeps the grammar in one place
func Parse(r io.Reader) (*Sheet, error) {
	sheet := &Sheet{}
	var track *Track // current TRACK, nil while in the sheet header

	lineNo := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		fields, err := splitFields(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, lineNo, err)
		}
		if len(fields) == 0 {
			continue
		}
		command, args := strings.ToUpper(fields[0]), fields[1:]

		switch command {
		case "REM":
			comment := strings.Join(args, " ")
			if track != nil {
				track.Comments = append(track.Comments, comment)
			} else {
				sheet.Comments = append(sheet.Comments, comment)
			}

		case "CATALOG":
			if err := oneArg(args, &sheet.Catalog); err != nil {
				return nil, parseErr(lineNo, "CATALOG", err)
			}

		case "CDTEXTFILE":
			if err := oneArg(args, &sheet.CDTextFile); err != nil {
				return nil, parseErr(lineNo, "CDTEXTFILE", err)
			}

		case "TITLE":
			dst := &sheet.Title
			if track != nil {
				dst = &track.Title
			}
			if err := oneArg(args, dst); err != nil {
				return nil, parseErr(lineNo, "TITLE", err)
			}

		case "PERFORMER":
			dst := &sheet.Performer
			if track != nil {
				dst = &track.Performer
			}
			if err := oneArg(args, dst); err != nil {
				return nil, parseErr(lineNo, "PERFORMER", err)
			}

		case "SONGWRITER":
			dst := &sheet.Songwriter
			if track != nil {
				dst = &track.Songwriter
			}
			if err := oneArg(args, dst); err != nil {
				return nil, parseErr(lineNo, "SONGWRITER", err)
			}

		case "ISRC":
			if track == nil {
				return nil, parseErr(lineNo, "ISRC", errors.New("outside a TRACK"))
			}
			if err := oneArg(args, &track.ISRC); err != nil {
				return nil, parseErr(lineNo, "ISRC", err)
			}

		case "FLAGS":
			if track == nil {
				return nil, parseErr(lineNo, "FLAGS", errors.New("outside a TRACK"))
			}
			track.Flags = strings.Join(args, " ")

		case "FILE":
			if len(args) != 2 {
				return nil, parseErr(lineNo, "FILE", fmt.Errorf("want 2 arguments, got %d", len(args)))
			}
			sheet.Files = append(sheet.Files, File{Path: args[0], Type: args[1]})

		case "TRACK":
			if len(args) != 2 {
				return nil, parseErr(lineNo, "TRACK", fmt.Errorf("want 2 arguments, got %d", len(args)))
			}
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, parseErr(lineNo, "TRACK", fmt.Errorf("bad track number %q", args[0]))
			}
			sheet.Tracks = append(sheet.Tracks, Track{Number: number, DataType: args[1]})
			track = &sheet.Tracks[len(sheet.Tracks)-1]

		case "INDEX":
			if track == nil {
				return nil, parseErr(lineNo, "INDEX", errors.New("outside a TRACK"))
			}
			if len(sheet.Files) == 0 {
				return nil, parseErr(lineNo, "INDEX", errors.New("no FILE declared"))
			}
			if len(args) != 2 {
				return nil, parseErr(lineNo, "INDEX", fmt.Errorf("want 2 arguments, got %d", len(args)))
			}
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, parseErr(lineNo, "INDEX", fmt.Errorf("bad index number %q", args[0]))
			}
			offset, err := parseMSF(args[1])
			if err != nil {
				return nil, parseErr(lineNo, "INDEX", err)
			}
			track.Indexes = append(track.Indexes, Index{
				Number: number,
				File:   len(sheet.Files) - 1,
				Offset: offset,
			})

		case "PREGAP", "POSTGAP":
			if track == nil {
				return nil, parseErr(lineNo, command, errors.New("outside a TRACK"))
			}
			if len(args) != 1 {
				return nil, parseErr(lineNo, command, fmt.Errorf("want 1 argument, got %d", len(args)))
			}
			gap, err := parseMSF(args[0])
			if err != nil {
				return nil, parseErr(lineNo, command, err)
			}
			if command == "PREGAP" {
				track.Pregap = &gap
			} else {
				track.Postgap = &gap
			}

		default:
			return nil, parseErr(lineNo, command, errors.New("unknown command"))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read cue sheet: %w", err)
	}

	return sheet, nil
}

func parseErr(line int, command string, err error) error {
	return fmt.Errorf("%w: line %d: %s: %v", ErrParse, line, command, err)
}

func oneArg(args []string, dst *string) error {
	if len(args) != 1 {
		return fmt.Errorf("want 1 argument, got %d", len(args))
	}
	*dst = args[0]
	return nil
}

// parseMSF parses a MM:SS:FF timestamp.
func parseMSF(s string) (toc.Time, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("bad timestamp %q", s)
	}
	var msf [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("bad timestamp %q", s)
		}
		msf[i] = v
	}
	return toc.MSF(msf[0], msf[1], msf[2]), nil
}

// splitFields splits a cue sheet line into fields, honoring double
// quotes.
func splitFields(line string) ([]string, error) {
	var fields []string
	rest := strings.TrimSpace(line)
	for rest != "" {
		if rest[0] == '"' {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return nil, errors.New("unterminated quote")
			}
			fields = append(fields, rest[1:1+end])
			rest = strings.TrimLeft(rest[end+2:], " \t")
			continue
		}
		cut := strings.IndexAny(rest, " \t")
		if cut < 0 {
			fields = append(fields, rest)
			break
		}
		fields = append(fields, rest[:cut])
		rest = strings.TrimLeft(rest[cut+1:], " \t")
	}
	return fields, nil
}

// TrackOffsets lays the sheet's files out back-to-back on the disc
// timeline and returns the absolute INDEX 01 offset of every track plus
// the lead-out — the list [toc.FromTrackOffsets] consumes. fileLengths
// must hold the decoded length of each FILE entry in sheet order.
func (s *Sheet) TrackOffsets(fileLengths []toc.Time) ([]toc.Time, error) {
	if len(fileLengths) != len(s.Files) {
		return nil, fmt.Errorf("%w: %d file lengths for %d FILE entries",
			ErrParse, len(fileLengths), len(s.Files))
	}
	if len(s.Tracks) == 0 {
		return nil, fmt.Errorf("%w: no tracks", ErrParse)
	}

	fileStart := make([]toc.Time, len(s.Files))
	var total toc.Time
	for i, length := range fileLengths {
		fileStart[i] = total
		total += length
	}

	offsets := make([]toc.Time, 0, len(s.Tracks)+1)
	for i := range s.Tracks {
		track := &s.Tracks[i]
		idx, ok := track.Index01()
		if !ok {
			return nil, fmt.Errorf("%w: track %d has no INDEX 01", ErrParse, track.Number)
		}
		offsets = append(offsets, fileStart[idx.File]+idx.Offset)
	}
	offsets = append(offsets, total)
	return offsets, nil
}
