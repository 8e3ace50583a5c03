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
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ZaparooProject/go-accuraterip/response"
)

// ErrNotInDatabase indicates the database has no entry for the disc.
var ErrNotInDatabase = errors.New("disc not present in the AccurateRip database")

// Fetch retrieves and decodes the dBAR response at url, which normally
// comes from the generator's DataURL. A nil client uses
// http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, url string) ([]response.Disc, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		return response.Decode(resp.Body)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotInDatabase, url)
	default:
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
}
