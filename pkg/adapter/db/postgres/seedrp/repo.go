// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package seedrp implements the repo.Seeds interface on top of a
// PostgreSQL table having the id, name, address, lat, and lon columns.
// The same table may be filled from another seed source by Import.
package seedrp

import (
	"context"

	"github.com/dwarthen/coffeeshops/pkg/adapter/db/postgres"
	"github.com/dwarthen/coffeeshops/pkg/core/model"
	"github.com/dwarthen/coffeeshops/pkg/core/repo"
)

// Repo reads the seed records using connections of a pool.
type Repo struct {
	pool repo.Pool
}

var _ repo.Seeds = (*Repo)(nil)

// New instantiates a seeds repository which acquires its connections
// from the p pool.
func New(p repo.Pool) *Repo {
	return &Repo{pool: p}
}

// Load fetches all seed records on one connection.
func (r *Repo) Load(ctx context.Context) (shops []model.CoffeeShop, err error) {
	err = r.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		shops, err = LoadAll(ctx, c.(*postgres.Conn))
		return err
	})
	if err != nil {
		shops = nil
	}
	return
}

// Import writes shops into the seeds table on one connection, creating
// the table if it does not exist yet.
func (r *Repo) Import(ctx context.Context, shops []model.CoffeeShop) error {
	return r.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return SaveAll(ctx, c.(*postgres.Conn), shops)
	})
}
