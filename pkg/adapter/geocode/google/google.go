// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package google adapts the Google Maps Geocoding API to the
// geocode.Geocoder interface.
package google

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dwarthen/coffeeshops/pkg/core/geocode"
	"github.com/dwarthen/coffeeshops/pkg/core/model"
	"googlemaps.github.io/maps"
)

// Geocoder resolves addresses using the Google Maps Geocoding API.
type Geocoder struct {
	client *maps.Client
}

var _ geocode.Geocoder = (*Geocoder)(nil)

// New creates a Geocoder which authenticates with the apiKey API key.
// A non-empty baseURL replaces the https://maps.googleapis.com host
// (e.g., for a proxy or a test server) and a nil hc asks for the
// default HTTP client.
func New(apiKey, baseURL string, hc *http.Client) (*Geocoder, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}
	if hc != nil {
		opts = append(opts, maps.WithHTTPClient(hc))
	}
	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("maps.NewClient: %w", err)
	}
	return &Geocoder{client: c}, nil
}

// Geocode returns the location of the first (best) geocoding result.
// An empty result set is reported as geocode.ErrAddressNotFound.
func (g *Geocoder) Geocode(ctx context.Context, address string) (model.Coordinate, error) {
	res, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
	})
	switch {
	case err != nil && strings.Contains(err.Error(), "ZERO_RESULTS"):
		return model.Coordinate{}, fmt.Errorf(
			"%q: %w", address, geocode.ErrAddressNotFound,
		)
	case err != nil:
		return model.Coordinate{}, fmt.Errorf("geocoding %q: %w", address, err)
	case len(res) == 0:
		return model.Coordinate{}, fmt.Errorf(
			"%q: %w", address, geocode.ErrAddressNotFound,
		)
	}
	loc := res[0].Geometry.Location
	return model.Coordinate{Lat: loc.Lat, Lon: loc.Lng}, nil
}
