// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package shopsuc

import (
	"math"

	"github.com/dwarthen/coffeeshops/pkg/core/model"
)

// Lister is the read-only part of the repo.Shops which is needed by
// a Locator.
type Lister interface {
	All() []model.CoffeeShop
}

// Locator answers nearest coffee shop queries by scanning all records
// of a shops registry. It never modifies the registry.
type Locator struct {
	shops Lister
}

// NewLocator creates a Locator which scans the l registry.
func NewLocator(l Lister) *Locator {
	return &Locator{shops: l}
}

// FindNearest returns the name of the record which has the smallest
// model.Coordinate.PlanarDistance from the c coordinate.
// Ties are resolved in favor of the first record in insertion order.
// An empty string is returned when there is no record.
func (l *Locator) FindNearest(c model.Coordinate) string {
	shortest := math.Inf(1)
	closest := ""
	for _, s := range l.shops.All() {
		if d := c.PlanarDistance(s.Coordinate); d < shortest {
			shortest = d
			closest = s.Name
		}
	}
	return closest
}
