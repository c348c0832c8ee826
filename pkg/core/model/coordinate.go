// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"log/slog"
	"math"
)

// Coordinate represents a geographical location with a latitude and
// longitude in degrees. It is embedded in the CoffeeShop struct, so
// its fields are (de)serialized as top-level lat and lon fields.
type Coordinate struct {
	Lat float64 `json:"lat" gorm:"type:double precision"` // latitude, in [-90, 90]
	Lon float64 `json:"lon" gorm:"type:double precision"` // longitude, in [-180, 180]
}

// LogValue implements slog.LogValuer for Coordinate.
func (c Coordinate) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("lat", c.Lat), slog.Float64("lon", c.Lon),
	)
}

// PlanarDistance computes the Euclidean distance between c and o
// after converting both of them from degrees to radians.
// It is not a great-circle distance. Lat/lon differences are treated
// as orthogonal axes of a flat plane and nearest shop queries depend
// on this exact metric, so it must not be replaced by haversine.
func (c Coordinate) PlanarDistance(o Coordinate) float64 {
	dLon := deg2Rad(o.Lon) - deg2Rad(c.Lon)
	dLat := deg2Rad(o.Lat) - deg2Rad(c.Lat)
	return math.Sqrt(dLon*dLon + dLat*dLat)
}

func deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}
