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

// Package accuraterip verifies ripped audio CDs against the AccurateRip
// database. It ties the subpackages together: the cue sheet names the
// track layout, the audio files supply the samples, the checksum engine
// produces every checksum family, and the response packages fetch and
// decode the reference data to match against.
package accuraterip

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/go-accuraterip/archive"
	"github.com/ZaparooProject/go-accuraterip/audio"
	"github.com/ZaparooProject/go-accuraterip/checksum"
	"github.com/ZaparooProject/go-accuraterip/cue"
	"github.com/ZaparooProject/go-accuraterip/toc"
)

// streamChunk is how many stereo samples are pushed into the generator
// per call while streaming a rip.
const streamChunk = 32 * toc.SamplesPerFrame

// Rip holds the computed checksums of one ripped disc.
type Rip struct {
	// Generator has consumed the whole disc; all checksum queries are
	// valid.
	Generator *checksum.Generator

	// Sheet is the parsed cue sheet the layout came from.
	Sheet *cue.Sheet

	// Paths are the resolved audio files, one per FILE entry.
	Paths []string
}

// ProcessCue parses the cue sheet at cuePath, locates the rip files next
// to it, and streams them through a checksum generator over the default
// offset window.
func ProcessCue(cuePath string) (*Rip, error) {
	return ProcessCueWindow(cuePath, checksum.MinSupportedOffset, checksum.MaxSupportedOffset)
}

// ProcessCueWindow is ProcessCue over an explicit offset window.
func ProcessCueWindow(cuePath string, minOffset, maxOffset int) (*Rip, error) {
	sheet, err := cue.ParseFile(cuePath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(cuePath)
	sources := make([]audio.Source, 0, len(sheet.Files))
	paths := make([]string, 0, len(sheet.Files))
	defer closeSources(sources)

	for _, file := range sheet.Files {
		src, path, err := openTrackFile(dir, file.Path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
		paths = append(paths, path)
	}

	return process(sheet, sources, paths, minOffset, maxOffset)
}

// ProcessArchive opens an archive holding a cue sheet and its rips and
// streams it through a checksum generator over the default offset
// window.
func ProcessArchive(path string) (*Rip, error) {
	return ProcessArchiveWindow(path, checksum.MinSupportedOffset, checksum.MaxSupportedOffset)
}

// ProcessArchiveWindow is ProcessArchive over an explicit offset window.
func ProcessArchiveWindow(path string, minOffset, maxOffset int) (*Rip, error) {
	arc, err := archive.OpenRip(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = arc.Close() }()

	cueReader, err := arc.CueSheet()
	if err != nil {
		return nil, err
	}
	sheet, err := cue.Parse(cueReader)
	_ = cueReader.Close()
	if err != nil {
		return nil, err
	}

	sources := make([]audio.Source, 0, len(sheet.Files))
	paths := make([]string, 0, len(sheet.Files))
	defer closeSources(sources)

	for _, file := range sheet.Files {
		entryName, data, err := arc.OpenTrack(file.Path)
		if err != nil {
			return nil, err
		}
		src, err := audio.NewSource(entryName, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entryName, err)
		}
		sources = append(sources, src)
		paths = append(paths, path+"/"+entryName)
	}

	return process(sheet, sources, paths, minOffset, maxOffset)
}

// process builds the table of contents from the sheet and the decoded
// file lengths, then streams every source through one generator.
func process(sheet *cue.Sheet, sources []audio.Source, paths []string, minOffset, maxOffset int) (*Rip, error) {
	lengths := make([]toc.Time, len(sources))
	for i, src := range sources {
		lengths[i] = src.SampleCount()
	}
	offsets, err := sheet.TrackOffsets(lengths)
	if err != nil {
		return nil, err
	}
	table, err := toc.FromTrackOffsets(offsets)
	if err != nil {
		return nil, err
	}
	gen, err := checksum.NewGeneratorWindow(table, minOffset, maxOffset)
	if err != nil {
		return nil, err
	}

	left := make([]int32, streamChunk)
	right := make([]int32, streamChunk)
	for i, src := range sources {
		for {
			n, err := src.ReadSamples(left, right)
			if n > 0 {
				if perr := gen.ProcessSamples(left[:n], right[:n]); perr != nil {
					return nil, fmt.Errorf("%s: %w", paths[i], perr)
				}
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("%s: %w", paths[i], err)
			}
		}
	}

	return &Rip{Generator: gen, Sheet: sheet, Paths: paths}, nil
}

func closeSources(sources []audio.Source) {
	for _, src := range sources {
		_ = src.Close()
	}
}

// openTrackFile resolves one FILE entry of a cue sheet against the
// directory the sheet lives in. Sheets routinely name a WAVE file while
// the rip on disk is FLAC (or compressed), so the lookup falls back to
// swapped extensions and compressed variants.
func openTrackFile(dir, name string) (audio.Source, string, error) {
	base := name
	if !filepath.IsAbs(base) {
		base = filepath.Join(dir, name)
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	var candidates []string
	if audio.IsAudioExtension(filepath.Ext(base)) {
		candidates = append(candidates, base)
	}
	candidates = append(candidates, stem+".flac", stem+".wav")
	for _, compressExt := range []string{".gz", ".xz", ".zst"} {
		candidates = append(candidates,
			base+compressExt,
			stem+".flac"+compressExt,
			stem+".wav"+compressExt)
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if archive.IsCompressedExtension(filepath.Ext(candidate)) {
			src, err := openCompressedSource(candidate)
			return src, candidate, err
		}
		src, err := audio.Open(candidate)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", candidate, err)
		}
		return src, candidate, nil
	}

	return nil, "", fmt.Errorf("no audio file found for %q in %s", name, dir)
}

// openCompressedSource inflates a compressed rip into memory and decodes
// from there. WAV decoding needs random access, which the decompressors
// cannot provide.
func openCompressedSource(path string) (audio.Source, error) {
	rc, err := archive.OpenCompressed(path)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	src, err := audio.NewSource(archive.InnerName(path), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}
