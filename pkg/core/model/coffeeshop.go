// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by JSON or ORM
// libraries) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import "log/slog"

// AutoID may be passed as a CoffeeShop ID in order to ask the shops
// registry to assign the next free identifier. Any negative ID has
// the same meaning, but AutoID makes the intention explicit.
const AutoID = -1

// CoffeeShop models one coffee shop location which is kept by the
// shops registry. The ID is assigned once (either explicitly by the
// seed data or automatically by the registry) and never changes while
// all other fields may be replaced by an update operation.
type CoffeeShop struct {
	ID      int    `json:"id"`      // unique non-negative ID
	Name    string `json:"name"`    // name of the coffee shop
	Address string `json:"address"` // human readable address

	// Coordinate is embedded, so lat and lon are (de)serialized as
	// top-level fields of a coffee shop.
	Coordinate
}

// LogValue implements slog.LogValuer, so a CoffeeShop may be passed
// to the log package functions using the log.Valuer helper.
func (s CoffeeShop) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("id", s.ID),
		slog.String("name", s.Name),
		slog.String("address", s.Address),
		slog.Float64("lat", s.Lat),
		slog.Float64("lon", s.Lon),
	)
}
