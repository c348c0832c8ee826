// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package shopsuc contains the coffee shops UseCase which supports
// the coffee shops related use cases:
//  1. Seeding the registry at startup,
//  2. Looking up, creating, updating, and deleting a coffee shop,
//  3. Finding the coffee shop which is nearest to an address.
//
// Inputs are expected to be validated by the caller (e.g., the REST
// adapters bind requests with range-checking tags), so use cases only
// report the not-found and upstream failure conditions.
package shopsuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwarthen/coffeeshops/pkg/core/cerr"
	"github.com/dwarthen/coffeeshops/pkg/core/geocode"
	"github.com/dwarthen/coffeeshops/pkg/core/log"
	"github.com/dwarthen/coffeeshops/pkg/core/model"
	"github.com/dwarthen/coffeeshops/pkg/core/repo"
)

// ErrShopNotFound indicates that no coffee shop has the requested ID.
var ErrShopNotFound = errors.New("no coffee shop with the given ID was found")

// UseCase represents the coffee shops use case. It holds the shops
// registry, the Locator which scans it, and the geocoding provider
// which resolves addresses for the nearest shop queries.
type UseCase struct {
	shops    repo.Shops
	locator  *Locator
	geocoder geocode.Geocoder

	geocodeTimeout time.Duration
}

// New instantiates a coffee shops use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(s repo.Shops, g geocode.Geocoder, opts ...Option) (*UseCase, error) {
	if s == nil {
		return nil, errors.New("shops registry is nil")
	}
	if g == nil {
		return nil, errors.New("geocoder is nil")
	}
	uc := &UseCase{shops: s, locator: NewLocator(s), geocoder: g}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.geocodeTimeout == 0 {
		uc.geocodeTimeout = 5 * time.Second
	}
	return uc, nil
}

// Seed loads all records from the seeds repository, adds them to the
// registry with their own IDs, and finally initializes the registry
// ID allocator, so auto-assigned IDs never collide with seed IDs.
// Seed must be called once, before serving any create request.
// It returns the number of loaded records.
func (shops *UseCase) Seed(ctx context.Context, seeds repo.Seeds) (int, error) {
	records, err := seeds.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading seeds: %w", err)
	}
	for _, s := range records {
		shops.shops.Add(s)
	}
	shops.shops.InitNextID()
	log.Info(ctx, "coffee shops registry is seeded",
		slog.Int("count", len(records)),
	)
	return len(records), nil
}

// Lookup use case finds the coffee shop having the id ID.
func (shops *UseCase) Lookup(ctx context.Context, id int) (*model.CoffeeShop, error) {
	s, ok := shops.shops.Lookup(id)
	if !ok {
		return nil, cerr.NotFound(ErrShopNotFound)
	}
	return &s, nil
}

// Create use case adds a new coffee shop with an auto-assigned ID.
// The ID of s is ignored and the assigned ID is returned.
func (shops *UseCase) Create(ctx context.Context, s model.CoffeeShop) (int, error) {
	s.ID = model.AutoID
	id := shops.shops.Add(s)
	s.ID = id
	log.Debug(ctx, "coffee shop is created", log.Valuer("shop", s))
	return id, nil
}

// Update use case replaces the name, address, and coordinate of the
// coffee shop which has the s.ID identifier. Its ID is returned.
func (shops *UseCase) Update(ctx context.Context, s model.CoffeeShop) (int, error) {
	id, ok := shops.shops.Update(s)
	if !ok {
		return 0, cerr.NotFound(ErrShopNotFound)
	}
	log.Debug(ctx, "coffee shop is updated", log.Valuer("shop", s))
	return id, nil
}

// Delete use case removes the coffee shop having the id ID.
// The removed ID is returned.
func (shops *UseCase) Delete(ctx context.Context, id int) (int, error) {
	deleted, ok := shops.shops.Delete(id)
	if !ok {
		return 0, cerr.NotFound(ErrShopNotFound)
	}
	log.Debug(ctx, "coffee shop is deleted", slog.Int("id", deleted))
	return deleted, nil
}

// Nearest use case resolves the address using the geocoding provider
// and returns the name of the coffee shop which is nearest to it.
// An empty name is returned (with no error) if the registry is empty.
// Unresolvable addresses are reported as bad requests while other
// geocoding failures are reported as bad gateway errors.
func (shops *UseCase) Nearest(ctx context.Context, address string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, shops.geocodeTimeout)
	defer cancel()
	c, err := shops.geocoder.Geocode(ctx, address)
	switch {
	case errors.Is(err, geocode.ErrAddressNotFound):
		return "", cerr.BadRequest(err)
	case err != nil:
		log.Warn(ctx, "geocoding failed",
			slog.String("address", address), log.Err("error", err),
		)
		return "", cerr.BadGateway(fmt.Errorf("geocoding: %w", err))
	}
	return shops.FindNearest(c), nil
}

// FindNearest returns the name of the coffee shop which is nearest to
// the c coordinate, or an empty string if the registry is empty.
func (shops *UseCase) FindNearest(c model.Coordinate) string {
	return shops.locator.FindNearest(c)
}
