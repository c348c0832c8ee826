// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package geocode specifies the expected interface of a geocoding
// provider, resolving free-form addresses to geographical coordinates.
// Concrete providers are implemented in the adapters layer (see the
// pkg/adapter/geocode sub-packages) and are injected into the shops
// use case, keeping the use cases independent of their HTTP APIs.
package geocode

import (
	"context"
	"errors"

	"github.com/dwarthen/coffeeshops/pkg/core/model"
)

// ErrAddressNotFound indicates that a provider could answer the
// geocoding request, but it found no location matching the address.
// Providers should wrap it, so callers can detect it by errors.Is and
// distinguish it from transport or quota failures.
var ErrAddressNotFound = errors.New("address could not be resolved")

// Geocoder resolves an address string to a coordinate. When multiple
// locations match, the provider's best match is returned.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (model.Coordinate, error)
}

// GeocoderFunc adapts an ordinary function to the Geocoder interface.
type GeocoderFunc func(ctx context.Context, address string) (model.Coordinate, error)

// Geocode calls f(ctx, address).
func (f GeocoderFunc) Geocode(ctx context.Context, address string) (model.Coordinate, error) {
	return f(ctx, address)
}
