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

package accuraterip

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZaparooProject/go-accuraterip/response"
)

func TestFetch(t *testing.T) {
	t.Parallel()

	want := []response.Disc{{
		DiscID1: 0xDDCCBBAA,
		DiscID2: 0x44332211,
		CDDBID:  0x88776655,
		Tracks:  []response.Track{{Confidence: 1, CRC: 0xAAAAAAAA, Frame450CRC: 0xBBBBBBBB}},
	}}
	var blob bytes.Buffer
	if err := response.Encode(&blob, want); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(blob.Bytes())
	}))
	defer srv.Close()

	discs, err := Fetch(context.Background(), srv.Client(), srv.URL+"/dBAR-001.bin")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(discs) != 1 || discs[0].DiscID1 != want[0].DiscID1 {
		t.Errorf("Fetch() = %+v, want %+v", discs, want)
	}
}

func TestFetchNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.Client(), srv.URL); !errors.Is(err, ErrNotInDatabase) {
		t.Errorf("Fetch() error = %v, want ErrNotInDatabase", err)
	}
}

func TestFetchServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Error("Fetch() with 500 response succeeded")
	}
}

func TestFetchTruncatedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{0x02, 0xAA, 0xBB})
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.Client(), srv.URL); !errors.Is(err, response.ErrParse) {
		t.Errorf("Fetch() error = %v, want response.ErrParse", err)
	}
}
