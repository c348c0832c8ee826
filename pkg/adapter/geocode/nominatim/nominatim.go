// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package nominatim adapts the OpenStreetMap Nominatim search API to
// the geocode.Geocoder interface. It needs no API key, but its usage
// policy requires a descriptive User-Agent header.
package nominatim

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dwarthen/coffeeshops/pkg/core/geocode"
	"github.com/dwarthen/coffeeshops/pkg/core/model"
	"github.com/goccy/go-json"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Geocoder resolves addresses using a Nominatim instance.
type Geocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

var _ geocode.Geocoder = (*Geocoder)(nil)

// searchResult is the subset of a Nominatim search result which is
// needed for geocoding. Nominatim encodes coordinates as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// New creates a Geocoder. Empty baseURL selects the DefaultBaseURL and
// a nil client selects the http.DefaultClient.
func New(baseURL, userAgent string, client *http.Client) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Geocoder{baseURL: baseURL, userAgent: userAgent, client: client}
}

// Geocode searches for address and returns the coordinate of the best
// match. An empty result set is reported as geocode.ErrAddressNotFound.
func (g *Geocoder) Geocode(ctx context.Context, address string) (model.Coordinate, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")
	u := fmt.Sprintf("%s/search?%s", g.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("creating request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("searching %q: %w", address, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.Coordinate{}, fmt.Errorf(
			"unexpected status: %s", resp.Status,
		)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return model.Coordinate{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(results) == 0 {
		return model.Coordinate{}, fmt.Errorf(
			"%q: %w", address, geocode.ErrAddressNotFound,
		)
	}
	return results[0].coordinate()
}

func (r searchResult) coordinate() (c model.Coordinate, err error) {
	c.Lat, err = strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return c, fmt.Errorf("parsing lat of %q: %w", r.DisplayName, err)
	}
	c.Lon, err = strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return c, fmt.Errorf("parsing lon of %q: %w", r.DisplayName, err)
	}
	return c, nil
}
