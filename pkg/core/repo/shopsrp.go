// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the repository interfaces which are required
// by the use cases layer. Each interface is implemented by one or more
// packages in the adapters layer, e.g., the in-memory shops registry
// or the PostgreSQL based seeds repository.
package repo

import (
	"context"

	"github.com/dwarthen/coffeeshops/pkg/core/model"
)

// Shops is the coffee shops registry. It owns the set of coffee shop
// records and the identifier allocation state. Its methods never
// block and report a missing record with a false ok flag instead of
// an error, so they are total for any well-typed argument.
// Implementations must be safe for concurrent use.
type Shops interface {
	// Add appends s to the registry and returns its final ID.
	// A negative s.ID asks the registry to assign the next free ID,
	// while a non-negative s.ID is used verbatim without any
	// uniqueness check.
	Add(s model.CoffeeShop) int

	// Lookup returns a copy of the first record having the id ID.
	Lookup(id int) (s model.CoffeeShop, ok bool)

	// Update replaces the name, address, and coordinate of the first
	// record having the s.ID identifier and returns that ID.
	Update(s model.CoffeeShop) (id int, ok bool)

	// Delete removes the first record having the id ID.
	Delete(id int) (deleted int, ok bool)

	// All returns a snapshot of all records in their insertion order.
	All() []model.CoffeeShop

	// InitNextID moves the ID allocator after the largest ID which is
	// held by the registry. It must be called once, after the seed
	// records are added and before the first auto-assigned Add.
	InitNextID()
}

// Seeds is a read-only source of the initial coffee shop records.
// Returned records carry their own (possibly sparse) IDs and are
// passed to the Shops.Add method as is, in the returned order.
type Seeds interface {
	Load(ctx context.Context) ([]model.CoffeeShop, error)
}
