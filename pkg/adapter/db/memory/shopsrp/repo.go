// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package shopsrp implements the repo.Shops registry in memory.
// Records are kept in an insertion-ordered slice and all operations
// scan it linearly, so the first record wins whenever two explicit
// seed IDs collide. Nothing is persisted beyond the process lifetime.
package shopsrp

import (
	"sync"

	"github.com/dwarthen/coffeeshops/pkg/core/model"
	"github.com/dwarthen/coffeeshops/pkg/core/repo"
)

// Repo is an in-memory coffee shops registry. It owns the records
// and the nextID counter which is used for auto-assigned IDs.
// A single rwlock serializes all mutations, so a Repo may be shared
// by concurrent request handlers.
type Repo struct {
	rwlock sync.RWMutex
	shops  []model.CoffeeShop
	nextID int
}

var _ repo.Shops = (*Repo)(nil)

// New instantiates an empty registry. Its ID counter starts from zero
// until InitNextID is called.
func New() *Repo {
	return &Repo{}
}

// Add appends s to the registry. If s.ID is negative, the current
// nextID value is consumed and assigned to the new record. Otherwise,
// s.ID is kept as is and nextID is not advanced (so seed data can
// carry its own sparse IDs). The final ID is returned.
func (r *Repo) Add(s model.CoffeeShop) int {
	r.rwlock.Lock()
	defer r.rwlock.Unlock()
	if s.ID < 0 {
		s.ID = r.nextID
		r.nextID++
	}
	r.shops = append(r.shops, s)
	return s.ID
}

// Lookup returns a copy of the first record which has the id ID.
// The ok flag is false if no such record exists.
func (r *Repo) Lookup(id int) (model.CoffeeShop, bool) {
	r.rwlock.RLock()
	defer r.rwlock.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.shops[i], true
	}
	return model.CoffeeShop{}, false
}

// Update overwrites all fields of the first record which has the
// s.ID identifier, except the ID itself, and returns s.ID.
// The ok flag is false (and registry is left intact) if no record
// has the s.ID identifier.
func (r *Repo) Update(s model.CoffeeShop) (int, bool) {
	r.rwlock.Lock()
	defer r.rwlock.Unlock()
	i := r.indexOf(s.ID)
	if i < 0 {
		return 0, false
	}
	shop := &r.shops[i]
	shop.Name = s.Name
	shop.Address = s.Address
	shop.Coordinate = s.Coordinate
	return shop.ID, true
}

// Delete removes the first record which has the id ID permanently
// and returns that ID. The ok flag is false if no record was found.
func (r *Repo) Delete(id int) (int, bool) {
	r.rwlock.Lock()
	defer r.rwlock.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return 0, false
	}
	r.shops = append(r.shops[:i], r.shops[i+1:]...)
	return id, true
}

// All returns a copy of the held records in their insertion order.
func (r *Repo) All() []model.CoffeeShop {
	r.rwlock.RLock()
	defer r.rwlock.RUnlock()
	shops := make([]model.CoffeeShop, len(r.shops))
	copy(shops, r.shops)
	return shops
}

// InitNextID sets nextID to one more than the largest ID which is
// seen among the held records (or the current nextID if it is larger).
// An empty registry obtains 1 as its next ID.
func (r *Repo) InitNextID() {
	r.rwlock.Lock()
	defer r.rwlock.Unlock()
	for _, s := range r.shops {
		if r.nextID < s.ID {
			r.nextID = s.ID
		}
	}
	r.nextID++
}

// Len returns the number of held records.
func (r *Repo) Len() int {
	r.rwlock.RLock()
	defer r.rwlock.RUnlock()
	return len(r.shops)
}

// NextID returns the ID which will be assigned to the next record
// that is added with an auto ID.
func (r *Repo) NextID() int {
	r.rwlock.RLock()
	defer r.rwlock.RUnlock()
	return r.nextID
}

// indexOf must be called while rwlock is held (for reading at least).
func (r *Repo) indexOf(id int) int {
	for i := range r.shops {
		if r.shops[i].ID == id {
			return i
		}
	}
	return -1
}
