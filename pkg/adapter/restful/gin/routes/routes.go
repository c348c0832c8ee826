// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// registration of them on a gin-gonic engine.
package routes

import (
	"github.com/dwarthen/coffeeshops/pkg/adapter/restful/gin/shopsrs"
	"github.com/dwarthen/coffeeshops/pkg/core/usecase/shopsuc"
	"github.com/gin-gonic/gin"
)

// BasePath is the path prefix of all coffee shops REST APIs.
const BasePath = "/api/coffeeshop"

// Register instantiates a series of "resource" structs, from packages
// which are named like shopsrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// Instantiation and seeding of the use cases are delegated to the
// caller, so the same use case may be inspected by other commands too.
func Register(e *gin.Engine, shops *shopsuc.UseCase) {
	r := e.Group(BasePath)
	shopsrs.Register(r, shops)
}
