// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine and provides the middlewares
// which are shared by all resources, so other packages do not need to
// depend on the gin-gonic, ginslog, and uuid packages directly for the
// engine instantiation.
package gin

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	ginslog "github.com/FabienMht/ginslog/logger"
	"github.com/dwarthen/coffeeshops/pkg/core/log"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RequestIDHeader is the header which carries the request identifier.
// A client provided value is preserved, otherwise a new UUID is set.
const RequestIDHeader = "X-Request-ID"

type (
	HandlerFunc = gin.HandlerFunc
	Engine      = gin.Engine
)

func init() {
	// report validation errors with the json field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// New instantiates a gin-gonic engine and installs the given
// middlewares on it in order.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a middleware which writes one access log record per
// request using the default slog logger.
func Logger() HandlerFunc {
	return ginslog.New(slog.Default())
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// RequestID returns a middleware which ensures that each request has
// an identifier. It is echoed in the response header and is attached
// to the request context, so log records of that request carry it.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(
			log.WithAttrs(c.Request.Context(), log.RequestID(id)),
		)
		c.Next()
	}
}

// CORS returns a middleware which allows cross-origin requests from
// any origin. Preflight requests are answered with 204 directly.
func CORS() HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods",
			"GET, POST, OPTIONS, PUT, PATCH, DELETE",
		)
		h.Set("Access-Control-Allow-Headers", "X-Requested-With,content-type")
		h.Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
