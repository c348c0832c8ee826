// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package csvseed reads the initial coffee shop records from comma
// separated lines having five fields each:
//
//	id,name,address,lat,lon
//
// Blank lines are skipped. A line which cannot be parsed fails the
// whole load, so the server never starts with partially loaded seeds.
package csvseed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dwarthen/coffeeshops/pkg/core/model"
	"github.com/dwarthen/coffeeshops/pkg/core/repo"
)

// FieldsPerRecord is the number of fields of each seed line.
const FieldsPerRecord = 5

// File is a repo.Seeds implementation which reads a local CSV file.
type File struct {
	Path string
}

var _ repo.Seeds = File{}

// Load opens and parses the seed file.
func (f File) Load(ctx context.Context) ([]model.CoffeeShop, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer file.Close()
	shops, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", f.Path, err)
	}
	return shops, nil
}

// Parse reads all seed records from r in their order of appearance.
// Fields are trimmed from surrounding spaces and the numeric fields
// are parsed as an integer ID and float lat/lon degrees.
func Parse(r io.Reader) ([]model.CoffeeShop, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = FieldsPerRecord
	cr.TrimLeadingSpace = true
	var shops []model.CoffeeShop
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return shops, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		s, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		shops = append(shops, s)
	}
}

func parseRecord(rec []string) (s model.CoffeeShop, err error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	if s.ID, err = strconv.Atoi(rec[0]); err != nil {
		return s, fmt.Errorf("parsing id: %w", err)
	}
	s.Name, s.Address = rec[1], rec[2]
	if s.Lat, err = strconv.ParseFloat(rec[3], 64); err != nil {
		return s, fmt.Errorf("parsing lat: %w", err)
	}
	if s.Lon, err = strconv.ParseFloat(rec[4], 64); err != nil {
		return s, fmt.Errorf("parsing lon: %w", err)
	}
	return s, nil
}
