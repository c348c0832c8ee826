// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dwarthen/coffeeshops/pkg/adapter/db/memory/shopsrp"
	"github.com/dwarthen/coffeeshops/pkg/adapter/restful/gin"
	"github.com/dwarthen/coffeeshops/pkg/adapter/restful/gin/routes"
	"github.com/dwarthen/coffeeshops/pkg/core/geocode"
	"github.com/dwarthen/coffeeshops/pkg/core/model"
	"github.com/dwarthen/coffeeshops/pkg/core/usecase/shopsuc"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"
)

type seedsFunc func(ctx context.Context) ([]model.CoffeeShop, error)

func (f seedsFunc) Load(ctx context.Context) ([]model.CoffeeShop, error) {
	return f(ctx)
}

var seeds = []model.CoffeeShop{
	{
		ID:         1,
		Name:       "Stumptown",
		Address:    "128 SW 3rd Ave",
		Coordinate: model.Coordinate{Lat: 45.5219, Lon: -122.6735},
	},
	{
		ID:         4,
		Name:       "Blue Bottle",
		Address:    "66 Mint St",
		Coordinate: model.Coordinate{Lat: 37.7823, Lon: -122.4072},
	},
}

// addresses known by the fake geocoder
var addresses = map[string]model.Coordinate{
	"Portland, OR":      {Lat: 45.52, Lon: -122.68},
	"San Francisco, CA": {Lat: 37.77, Lon: -122.42},
}

var errUpstream = errors.New("upstream is down")

type GinTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Shops *shopsrp.Repo
	Gin   *gin.Engine

	geocodes int // number of geocoding requests
}

func TestGinTestSuite(t *testing.T) {
	suite.Run(t, &GinTestSuite{Ctx: context.Background()})
}

func (gts *GinTestSuite) SetupTest() {
	gts.Shops = shopsrp.New()
	gts.geocodes = 0
	g := geocode.GeocoderFunc(
		func(_ context.Context, address string) (model.Coordinate, error) {
			gts.geocodes++
			if address == "unavailable" {
				return model.Coordinate{}, errUpstream
			}
			c, ok := addresses[address]
			if !ok {
				return c, geocode.ErrAddressNotFound
			}
			return c, nil
		},
	)
	uc, err := shopsuc.New(gts.Shops, g)
	gts.Require().NoError(err, "cannot instantiate shops use case")
	_, err = uc.Seed(gts.Ctx, seedsFunc(
		func(context.Context) ([]model.CoffeeShop, error) {
			return seeds, nil
		},
	))
	gts.Require().NoError(err, "cannot seed shops use case")

	gts.Gin = gin.New(gin.RequestID(), gin.CORS(), gin.Recovery())
	gts.Require().NotNil(gts.Gin, "cannot instantiate Gin engine")
	routes.Register(gts.Gin, uc)
}

func jsonBody(v any) io.Reader {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bytes.NewReader(b)
}

func (gts *GinTestSuite) sendReqRecvResp(
	method, op string, body any, res any,
) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		method, routes.BasePath+"/"+op, jsonBody(body),
	)
	gts.Require().NoError(err, "cannot create %s request", method)
	req.Header.Add("Content-Type", "application/json")
	gts.Gin.ServeHTTP(w, req)
	if res != nil {
		b := w.Body.Bytes()
		gts.NoError(json.Unmarshal(b, res), "body is not json: %s", b)
	}
	return w
}

type idResp struct {
	ID int `json:"id"`
}

type detailResp struct {
	Detail string `json:"detail"`
}

func (gts *GinTestSuite) TestLookup() {
	res := &model.CoffeeShop{}
	w := gts.sendReqRecvResp(
		http.MethodPost, "lookup", map[string]any{"id": 4}, res,
	)
	gts.Equal(200, w.Code)
	gts.Equal(seeds[1], *res, "unexpected coffee shop")
}

func (gts *GinTestSuite) TestCreateAssignsNextID() {
	body := map[string]any{
		"name":    "Heart",
		"address": "2211 E Burnside St",
		"lat":     45.5231,
		"lon":     -122.6433,
	}
	res := &idResp{}
	w := gts.sendReqRecvResp(http.MethodPost, "create", body, res)
	gts.Equal(200, w.Code)
	gts.Equal(5, res.ID, "next ID must follow the max seed ID")

	w = gts.sendReqRecvResp(http.MethodPost, "create", body, res)
	gts.Equal(200, w.Code)
	gts.Equal(6, res.ID)

	shop := &model.CoffeeShop{}
	w = gts.sendReqRecvResp(
		http.MethodPost, "lookup", map[string]any{"id": 5}, shop,
	)
	gts.Equal(200, w.Code)
	gts.Equal("Heart", shop.Name)
	gts.InDelta(45.5231, shop.Lat, 1e-9)
	gts.InDelta(-122.6433, shop.Lon, 1e-9)
}

func (gts *GinTestSuite) TestUpdateThenLookup() {
	res := &idResp{}
	w := gts.sendReqRecvResp(http.MethodPut, "update", map[string]any{
		"id":      1,
		"name":    "Stumptown Downtown",
		"address": "128 SW 3rd Ave, Portland",
		"lat":     0,
		"lon":     0,
	}, res)
	gts.Equal(200, w.Code)
	gts.Equal(1, res.ID)

	shop := &model.CoffeeShop{}
	gts.sendReqRecvResp(
		http.MethodPost, "lookup", map[string]any{"id": 1}, shop,
	)
	gts.Equal(model.CoffeeShop{
		ID:      1,
		Name:    "Stumptown Downtown",
		Address: "128 SW 3rd Ave, Portland",
	}, *shop, "zero lat/lon must be accepted")
}

func (gts *GinTestSuite) TestDelete() {
	res := &idResp{}
	w := gts.sendReqRecvResp(
		http.MethodDelete, "delete", map[string]any{"id": 1}, res,
	)
	gts.Equal(200, w.Code)
	gts.Equal(1, res.ID)
	gts.Equal(1, gts.Shops.Len(), "exactly one shop must be removed")

	w = gts.sendReqRecvResp(
		http.MethodPost, "lookup", map[string]any{"id": 1}, &detailResp{},
	)
	gts.Equal(404, w.Code)
}

func (gts *GinTestSuite) TestNotFound() {
	for _, tc := range []struct {
		name   string
		method string
		op     string
		body   map[string]any
	}{
		{
			name:   "lookup",
			method: http.MethodPost,
			op:     "lookup",
			body:   map[string]any{"id": 99},
		},
		{
			name:   "update",
			method: http.MethodPut,
			op:     "update",
			body: map[string]any{
				"id":      99,
				"name":    "Nowhere",
				"address": "nowhere",
				"lat":     1,
				"lon":     1,
			},
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			op:     "delete",
			body:   map[string]any{"id": 99},
		},
	} {
		gts.Run(tc.name, func() {
			res := &detailResp{}
			w := gts.sendReqRecvResp(tc.method, tc.op, tc.body, res)
			gts.Equal(404, w.Code)
			gts.Equal(shopsuc.ErrShopNotFound.Error(), res.Detail)
			gts.Equal(2, gts.Shops.Len(), "registry must be unchanged")
		})
	}
}

func validShop() map[string]any {
	return map[string]any{
		"name":    "Ritual",
		"address": "1026 Valencia St",
		"lat":     37.7565,
		"lon":     -122.4216,
	}
}

func withID(m map[string]any) map[string]any {
	m["id"] = 1
	return m
}

func (gts *GinTestSuite) TestBadRequest() {
	for _, tc := range []struct {
		name   string
		method string
		op     string
		body   map[string]any
		field  string
		tag    string
	}{
		{
			name:   "create missing name",
			method: http.MethodPost,
			op:     "create",
			body:   without(validShop(), "name"),
			field:  "name",
			tag:    "required",
		},
		{
			name:   "create short address",
			method: http.MethodPost,
			op:     "create",
			body:   with(validShop(), "address", "ab"),
			field:  "address",
			tag:    "min",
		},
		{
			name:   "create missing lat",
			method: http.MethodPost,
			op:     "create",
			body:   without(validShop(), "lat"),
			field:  "lat",
			tag:    "required",
		},
		{
			name:   "create lat too large",
			method: http.MethodPost,
			op:     "create",
			body:   with(validShop(), "lat", 90.5),
			field:  "lat",
			tag:    "max",
		},
		{
			name:   "create lon too small",
			method: http.MethodPost,
			op:     "create",
			body:   with(validShop(), "lon", -180.5),
			field:  "lon",
			tag:    "min",
		},
		{
			name:   "update missing id",
			method: http.MethodPut,
			op:     "update",
			body:   validShop(),
			field:  "id",
			tag:    "required",
		},
		{
			name:   "update empty name",
			method: http.MethodPut,
			op:     "update",
			body:   with(withID(validShop()), "name", ""),
			field:  "name",
			tag:    "required",
		},
		{
			name:   "update lon too large",
			method: http.MethodPut,
			op:     "update",
			body:   with(withID(validShop()), "lon", 181),
			field:  "lon",
			tag:    "max",
		},
		{
			name:   "lookup missing id",
			method: http.MethodPost,
			op:     "lookup",
			body:   map[string]any{},
			field:  "id",
			tag:    "required",
		},
		{
			name:   "delete missing id",
			method: http.MethodDelete,
			op:     "delete",
			body:   map[string]any{},
			field:  "id",
			tag:    "required",
		},
		{
			name:   "nearest missing address",
			method: http.MethodPost,
			op:     "nearest",
			body:   map[string]any{},
			field:  "address",
			tag:    "required",
		},
		{
			name:   "nearest short address",
			method: http.MethodPost,
			op:     "nearest",
			body:   map[string]any{"address": "ab"},
			field:  "address",
			tag:    "min",
		},
	} {
		gts.Run(tc.name, func() {
			res := map[string][]string{}
			w := gts.sendReqRecvResp(tc.method, tc.op, tc.body, &res)
			gts.Equal(400, w.Code)
			gts.Require().Len(res[tc.field], 1, "errors: %v", res)
			gts.Contains(
				res[tc.field][0], "failed on the '"+tc.tag+"' tag",
			)
			gts.Equal(2, gts.Shops.Len(), "registry must be unchanged")
			s, ok := gts.Shops.Lookup(1)
			gts.True(ok)
			gts.Equal(seeds[0], s, "seed shop must be unchanged")
			gts.Zero(gts.geocodes, "invalid requests must not be geocoded")
		})
	}
}

func with(m map[string]any, key string, v any) map[string]any {
	m[key] = v
	return m
}

func without(m map[string]any, key string) map[string]any {
	delete(m, key)
	return m
}

func (gts *GinTestSuite) TestNonIntegerID() {
	for _, body := range []string{
		`{"id": "one"}`,
		`{"id": 1.5}`,
		`{"id": 1.0}`,
	} {
		gts.Run(body, func() {
			w := httptest.NewRecorder()
			req, err := http.NewRequest(
				http.MethodPost, routes.BasePath+"/lookup",
				bytes.NewReader([]byte(body)),
			)
			gts.Require().NoError(err)
			req.Header.Add("Content-Type", "application/json")
			gts.Gin.ServeHTTP(w, req)
			gts.Equal(400, w.Code)
			res := &detailResp{}
			gts.NoError(json.Unmarshal(w.Body.Bytes(), res))
			gts.NotEmpty(res.Detail)
		})
	}
}

func (gts *GinTestSuite) TestNearest() {
	for _, tc := range []struct {
		address string
		code    int
		name    string
	}{
		{address: "Portland, OR", code: 200, name: "Stumptown"},
		{address: "San Francisco, CA", code: 200, name: "Blue Bottle"},
		{address: "Atlantis", code: 400},
		{address: "unavailable", code: 502},
	} {
		gts.Run(tc.address, func() {
			res := &struct {
				Name   string `json:"name"`
				Detail string `json:"detail"`
			}{}
			w := gts.sendReqRecvResp(
				http.MethodPost, "nearest",
				map[string]any{"address": tc.address}, res,
			)
			gts.Equal(tc.code, w.Code)
			gts.Equal(tc.name, res.Name)
			if tc.code != 200 {
				gts.NotEmpty(res.Detail)
			}
		})
	}
}

func (gts *GinTestSuite) TestNearestOnEmptyRegistry() {
	for _, s := range seeds {
		_, ok := gts.Shops.Delete(s.ID)
		gts.Require().True(ok)
	}
	res := &struct {
		Name *string `json:"name"`
	}{}
	w := gts.sendReqRecvResp(
		http.MethodPost, "nearest",
		map[string]any{"address": "Portland, OR"}, res,
	)
	gts.Equal(200, w.Code)
	gts.Require().NotNil(res.Name, "name must be present")
	gts.Empty(*res.Name)
}

func (gts *GinTestSuite) TestCORSPreflight() {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodOptions, routes.BasePath+"/create", nil,
	)
	gts.Require().NoError(err)
	gts.Gin.ServeHTTP(w, req)
	gts.Equal(http.StatusNoContent, w.Code)
	h := w.Result().Header
	gts.Equal("*", h.Get("Access-Control-Allow-Origin"))
	gts.Equal(
		"GET, POST, OPTIONS, PUT, PATCH, DELETE",
		h.Get("Access-Control-Allow-Methods"),
	)
	gts.Equal(
		"X-Requested-With,content-type",
		h.Get("Access-Control-Allow-Headers"),
	)
	gts.Equal("true", h.Get("Access-Control-Allow-Credentials"))
	gts.Equal(2, gts.Shops.Len())
}

func (gts *GinTestSuite) TestRequestID() {
	w := gts.sendReqRecvResp(
		http.MethodPost, "lookup", map[string]any{"id": 1}, nil,
	)
	gts.NotEmpty(w.Result().Header.Get(gin.RequestIDHeader))

	w = httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodPost, routes.BasePath+"/lookup",
		jsonBody(map[string]any{"id": 1}),
	)
	gts.Require().NoError(err)
	req.Header.Set(gin.RequestIDHeader, "client-given")
	gts.Gin.ServeHTTP(w, req)
	gts.Equal("client-given", w.Result().Header.Get(gin.RequestIDHeader))
}
