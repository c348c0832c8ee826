// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package shopsrp_test

import (
	"sync"
	"testing"

	"github.com/dwarthen/coffeeshops/pkg/adapter/db/memory/shopsrp"
	"github.com/dwarthen/coffeeshops/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shop(id int, name string, lat, lon float64) model.CoffeeShop {
	return model.CoffeeShop{
		ID:         id,
		Name:       name,
		Address:    name + " Street",
		Coordinate: model.Coordinate{Lat: lat, Lon: lon},
	}
}

func seeded(t *testing.T, ids ...int) *shopsrp.Repo {
	t.Helper()
	r := shopsrp.New()
	for _, id := range ids {
		require.Equal(t, id, r.Add(shop(id, "seed", 1, 2)))
	}
	r.InitNextID()
	return r
}

func TestAutoAssignedIDsIncrease(t *testing.T) {
	r := seeded(t, 4, 2)
	last := 4
	for i := 0; i < 10; i++ {
		id := r.Add(shop(model.AutoID, "auto", 0, 0))
		assert.Greater(t, id, last, "auto IDs must increase")
		last = id
	}
	seen := make(map[int]bool)
	for _, s := range r.All() {
		assert.False(t, seen[s.ID], "duplicate id %d", s.ID)
		seen[s.ID] = true
	}
	assert.Len(t, seen, 12)
}

func TestInitNextID(t *testing.T) {
	for _, tc := range []struct {
		name string
		ids  []int
		next int
	}{
		{name: "sparse seeds", ids: []int{3, 7, 1}, next: 8},
		{name: "no seeds", ids: nil, next: 1},
		{name: "zero seed", ids: []int{0}, next: 1},
		{name: "sequential seeds", ids: []int{1, 2, 3}, next: 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := seeded(t, tc.ids...)
			assert.Equal(t, tc.next, r.Add(shop(-7, "new", 0, 0)))
			assert.Equal(t, tc.next+1, r.Add(shop(model.AutoID, "new", 0, 0)))
		})
	}
}

func TestExplicitIDDoesNotAdvanceCounter(t *testing.T) {
	r := seeded(t)
	assert.Equal(t, 42, r.Add(shop(42, "explicit", 0, 0)))
	assert.Equal(t, 1, r.Add(shop(model.AutoID, "auto", 0, 0)))
}

func TestLookupAfterAdd(t *testing.T) {
	r := seeded(t)
	id := r.Add(model.CoffeeShop{
		ID:         model.AutoID,
		Name:       "A",
		Address:    "123 Main St",
		Coordinate: model.Coordinate{Lat: 10.0, Lon: 20.0},
	})
	s, ok := r.Lookup(id)
	require.True(t, ok, "added shop must be found")
	assert.Equal(t, model.CoffeeShop{
		ID:         id,
		Name:       "A",
		Address:    "123 Main St",
		Coordinate: model.Coordinate{Lat: 10.0, Lon: 20.0},
	}, s)

	_, ok = r.Lookup(id + 1)
	assert.False(t, ok, "missing id must not be found")
}

func TestLookupReturnsCopy(t *testing.T) {
	r := seeded(t, 5)
	s, ok := r.Lookup(5)
	require.True(t, ok)
	s.Name = "mutated"
	s2, _ := r.Lookup(5)
	assert.Equal(t, "seed", s2.Name)
}

func TestUpdateMissingLeavesRegistryUnchanged(t *testing.T) {
	r := seeded(t, 1, 2, 3)
	before := r.All()
	_, ok := r.Update(shop(9, "ghost", 5, 5))
	assert.False(t, ok)
	assert.Equal(t, before, r.All())
	assert.Equal(t, 3, r.Len())
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	r := seeded(t, 1, 2, 3)
	id, ok := r.Delete(2)
	require.True(t, ok)
	assert.Equal(t, 2, id)
	assert.Equal(t, 2, r.Len())
	_, ok = r.Lookup(2)
	assert.False(t, ok, "deleted shop must not be found")
	for _, want := range []int{1, 3} {
		_, ok = r.Lookup(want)
		assert.True(t, ok, "shop %d must survive", want)
	}

	_, ok = r.Delete(2)
	assert.False(t, ok, "second delete must report not found")
	assert.Equal(t, 2, r.Len())
}

func TestDeleteZeroID(t *testing.T) {
	r := seeded(t, 0)
	id, ok := r.Delete(0)
	assert.True(t, ok)
	assert.Equal(t, 0, id)
}

func TestAddUpdateLookupRoundTrip(t *testing.T) {
	r := seeded(t, 10)
	id := r.Add(shop(model.AutoID, "before", 1, 1))
	updated := shop(id, "after", -33.5, 151.25)
	updated.Address = "1 George St"
	got, ok := r.Update(updated)
	require.True(t, ok)
	assert.Equal(t, id, got)

	s, ok := r.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, updated, s)
	assert.Equal(t, 11, s.ID, "id must not change")
}

func TestDuplicateExplicitIDsFirstWins(t *testing.T) {
	// Colliding explicit IDs are accepted silently. Lookups resolve
	// to the earliest inserted record having that ID.
	r := shopsrp.New()
	r.Add(shop(1, "first", 0, 0))
	r.Add(shop(1, "second", 0, 0))
	assert.Equal(t, 2, r.Len())
	s, ok := r.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "first", s.Name)

	_, ok = r.Delete(1)
	require.True(t, ok)
	s, ok = r.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "second", s.Name)
}

func TestAllKeepsInsertionOrder(t *testing.T) {
	r := seeded(t, 9, 3, 6)
	var ids []int
	for _, s := range r.All() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{9, 3, 6}, ids)
}

func TestConcurrentAdds(t *testing.T) {
	r := seeded(t, 100)
	const n = 64
	ids := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = r.Add(shop(model.AutoID, "parallel", 0, 0))
		}(i)
	}
	wg.Wait()
	seen := make(map[int]bool, n)
	for _, id := range ids {
		assert.GreaterOrEqual(t, id, 101)
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Equal(t, n+1, r.Len())
}

func TestNextIDReportsUpcomingID(t *testing.T) {
	r := seeded(t, 3, 7, 1)
	assert.Equal(t, 8, r.NextID())
	assert.Equal(t, 8, r.Add(shop(model.AutoID, "auto", 0, 0)))
	assert.Equal(t, 9, r.NextID())
}
