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

// Package toc models Red-Book audio CD timing and tables of contents,
// and derives the AccurateRip disc identity from them.
package toc

import "fmt"

// FramesPerSecond is the number of CD frames (sectors) in one second of
// audio. Red-Book track offsets are specified in MM:SS:FF where FF counts
// these frames.
const FramesPerSecond = 75

// SamplesPerFrame is the number of stereo samples in one CD frame (588).
const SamplesPerFrame = SamplesPerSecond / FramesPerSecond

// SamplesPerSecond is the number of stereo samples per second. All
// Red-Book audio CDs use 44.1KHz.
const SamplesPerSecond = 44100

// Time is a position or duration on an audio CD, counted in stereo
// samples from some origin. Being an integer type it supports ordinary
// arithmetic and ordering.
type Time int64

// MSF returns the Time for a minutes/seconds/frames triple as written in
// cue sheets and subcode timecodes.
func MSF(m, s, f int) Time {
	return Time(((int64(m)*60+int64(s))*FramesPerSecond + int64(f)) * SamplesPerFrame)
}

// IsFrameBoundary reports whether t falls exactly on a CD frame boundary.
func (t Time) IsFrameBoundary() bool {
	return t%SamplesPerFrame == 0
}

// Frames returns the number of whole CD frames in t.
func (t Time) Frames() int64 {
	return int64(t) / SamplesPerFrame
}

// Seconds returns the number of whole seconds in t.
func (t Time) Seconds() int64 {
	return int64(t) / SamplesPerSecond
}

// MSF splits t into the minutes/seconds/frames triple. The split uses
// integer division, so a Time that is not frame-aligned truncates to the
// frame that contains it.
func (t Time) MSF() (m, s, f int) {
	frames := int64(t) / SamplesPerFrame
	seconds := frames / FramesPerSecond
	minutes := seconds / 60
	return int(minutes), int(seconds - minutes*60), int(frames - seconds*FramesPerSecond)
}

// String renders t in the cue sheet MM:SS:FF notation.
func (t Time) String() string {
	m, s, f := t.MSF()
	return fmt.Sprintf("%02d:%02d:%02d", m, s, f)
}
