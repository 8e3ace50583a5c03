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

package toc

import (
	"errors"
	"testing"
)

func checkEntry(t *testing.T, got, want Entry) {
	t.Helper()

	if got.TrackNumber != want.TrackNumber {
		t.Errorf("TrackNumber = %d, want %d", got.TrackNumber, want.TrackNumber)
	}
	if got.Start != want.Start {
		t.Errorf("Start = %s (%d samples), want %s", got.Start, int64(got.Start), want.Start)
	}
}

func TestFromTrackLengths(t *testing.T) {
	t.Parallel()

	lengths := []Time{MSF(0, 5, 0), MSF(0, 10, 0), MSF(1, 0, 0)}
	table, err := FromTrackLengths(lengths, MSF(0, 4, 0))
	if err != nil {
		t.Fatalf("FromTrackLengths() error = %v", err)
	}

	if got := table.NumEntries(); got != 4 {
		t.Fatalf("NumEntries() = %d, want 4", got)
	}
	checkEntry(t, table.Entry(0), Entry{1, MSF(0, 4, 0)})
	checkEntry(t, table.Entry(1), Entry{2, MSF(0, 9, 0)})
	checkEntry(t, table.Entry(2), Entry{3, MSF(0, 19, 0)})
	checkEntry(t, table.Entry(3), Entry{LeadOutTrack, MSF(1, 19, 0)})

	// Round-trip: adjacent differences must reproduce the lengths.
	for i, want := range lengths {
		if got := table.TrackLength(i); got != want {
			t.Errorf("TrackLength(%d) = %s, want %s", i, got, want)
		}
	}
	if got, want := table.TotalLength(), MSF(1, 15, 0); got != want {
		t.Errorf("TotalLength() = %s, want %s", got, want)
	}
}

func TestFromTrackLengthsDefaultOffset(t *testing.T) {
	t.Parallel()

	table, err := FromTrackLengths([]Time{MSF(0, 4, 0), MSF(0, 6, 0)}, 0)
	if err != nil {
		t.Fatalf("FromTrackLengths() error = %v", err)
	}

	checkEntry(t, table.Entry(0), Entry{1, 0})
	checkEntry(t, table.Entry(1), Entry{2, MSF(0, 4, 0)})
	checkEntry(t, table.Entry(2), Entry{LeadOutTrack, MSF(0, 10, 0)})
}

func TestFromTrackOffsets(t *testing.T) {
	t.Parallel()

	offsets := []Time{0, MSF(1, 0, 0), MSF(2, 0, 0)}
	table, err := FromTrackOffsets(offsets)
	if err != nil {
		t.Fatalf("FromTrackOffsets() error = %v", err)
	}

	if got := table.Tracks(); got != 2 {
		t.Fatalf("Tracks() = %d, want 2", got)
	}
	checkEntry(t, table.Entry(0), Entry{1, 0})
	checkEntry(t, table.Entry(1), Entry{2, MSF(1, 0, 0)})
	checkEntry(t, table.Entry(2), Entry{LeadOutTrack, MSF(2, 0, 0)})
	if got, want := table.LeadOut(), MSF(2, 0, 0); got != want {
		t.Errorf("LeadOut() = %s, want %s", got, want)
	}
}

func TestTOCValidation(t *testing.T) {
	t.Parallel()

	longEnough := MSF(0, 5, 0)

	tests := []struct {
		name string
		err  error
	}{
		{"track shorter than 4 seconds", func() error {
			_, err := FromTrackLengths([]Time{longEnough, MSF(0, 3, 0)}, 0)
			return err
		}()},
		{"first offset not frame aligned", func() error {
			_, err := FromTrackLengths([]Time{longEnough}, 1)
			return err
		}()},
		{"length not frame aligned", func() error {
			_, err := FromTrackLengths([]Time{longEnough + 1}, 0)
			return err
		}()},
		{"no tracks", func() error {
			_, err := FromTrackLengths(nil, 0)
			return err
		}()},
		{"too many tracks", func() error {
			lengths := make([]Time, 100)
			for i := range lengths {
				lengths[i] = longEnough
			}
			_, err := FromTrackLengths(lengths, 0)
			return err
		}()},
		{"single offset", func() error {
			_, err := FromTrackOffsets([]Time{0})
			return err
		}()},
		{"empty offsets", func() error {
			_, err := FromTrackOffsets(nil)
			return err
		}()},
		{"non-monotonic offsets", func() error {
			_, err := FromTrackOffsets([]Time{MSF(1, 0, 0), MSF(0, 30, 0), MSF(2, 0, 0)})
			return err
		}()},
		{"misaligned offset", func() error {
			_, err := FromTrackOffsets([]Time{0, MSF(1, 0, 0), MSF(2, 0, 0) + 1})
			return err
		}()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !errors.Is(tt.err, ErrInvalidTOC) {
				t.Errorf("error = %v, want ErrInvalidTOC", tt.err)
			}
		})
	}
}

func TestTOCValid(t *testing.T) {
	t.Parallel()

	// 99 tracks is the Red-Book maximum and must be accepted.
	lengths := make([]Time, 99)
	for i := range lengths {
		lengths[i] = MSF(0, 4, 0)
	}
	table, err := FromTrackLengths(lengths, 0)
	if err != nil {
		t.Fatalf("FromTrackLengths() error = %v", err)
	}
	if got := table.NumEntries(); got != 100 {
		t.Errorf("NumEntries() = %d, want 100", got)
	}
}
