// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package shopsrs realizes the coffee shops resource, allowing the
// coffee shops manipulation REST APIs to be accepted and delegated to
// the coffee shops use cases respectively.
package shopsrs

import (
	"net/http"

	"github.com/dwarthen/coffeeshops/pkg/adapter/restful/gin/serdser"
	"github.com/dwarthen/coffeeshops/pkg/core/usecase/shopsuc"
	"github.com/gin-gonic/gin"
)

type resource struct {
	shops *shopsuc.UseCase
}

// Register instantiates a resource adapting the coffee shops use case
// instance with the relevant REST APIs including:
//  1. POST request to lookup in order to fetch a coffee shop by ID,
//  2. POST request to create in order to add a new coffee shop,
//  3. PUT request to update in order to replace a coffee shop,
//  4. DELETE request to delete in order to remove a coffee shop,
//  5. POST request to nearest in order to find the name of the coffee
//     shop which is nearest to an address.
//
// All requests and responses carry JSON bodies. Paths are relative to
// the r router group, e.g., /api/coffeeshop/lookup.
func Register(r *gin.RouterGroup, shops *shopsuc.UseCase) {
	rs := &resource{shops: shops}
	r.POST("lookup", rs.Lookup)
	r.POST("create", rs.Create)
	r.PUT("update", rs.Update)
	r.DELETE("delete", rs.Delete)
	r.POST("nearest", rs.Nearest)
}

func (rs *resource) Lookup(c *gin.Context) {
	req := rs.DserIDReq(c)
	if req == nil {
		return
	}
	s, err := rs.shops.Lookup(c.Request.Context(), *req.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (rs *resource) Create(c *gin.Context) {
	req := rs.DserCreateReq(c)
	if req == nil {
		return
	}
	id, err := rs.shops.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, idResp{ID: id})
}

func (rs *resource) Update(c *gin.Context) {
	req := rs.DserUpdateReq(c)
	if req == nil {
		return
	}
	id, err := rs.shops.Update(c.Request.Context(), req.ToModel())
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, idResp{ID: id})
}

func (rs *resource) Delete(c *gin.Context) {
	req := rs.DserIDReq(c)
	if req == nil {
		return
	}
	id, err := rs.shops.Delete(c.Request.Context(), *req.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, idResp{ID: id})
}

func (rs *resource) Nearest(c *gin.Context) {
	req := rs.DserNearestReq(c)
	if req == nil {
		return
	}
	name, err := rs.shops.Nearest(c.Request.Context(), req.Address)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, nameResp{Name: name})
}
