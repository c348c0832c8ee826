package shopsrs

import (
	"github.com/dwarthen/coffeeshops/pkg/adapter/restful/gin/serdser"
	"github.com/dwarthen/coffeeshops/pkg/core/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Pointers are used for numeric fields, so a missing field can be told
// apart from a zero value by the required tag.

type idReq struct {
	ID *int `json:"id" binding:"required"`
}

type shopReq struct {
	Name    string   `json:"name" binding:"required"`
	Address string   `json:"address" binding:"required,min=3"`
	Lat     *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Lon     *float64 `json:"lon" binding:"required,min=-180,max=180"`
}

type updateReq struct {
	idReq
	shopReq
}

type nearestReq struct {
	Address string `json:"address" binding:"required,min=3"`
}

type idResp struct {
	ID int `json:"id"`
}

type nameResp struct {
	Name string `json:"name"`
}

func (sr shopReq) ToModel() model.CoffeeShop {
	return model.CoffeeShop{
		ID:         model.AutoID,
		Name:       sr.Name,
		Address:    sr.Address,
		Coordinate: model.Coordinate{Lat: *sr.Lat, Lon: *sr.Lon},
	}
}

func (ur updateReq) ToModel() model.CoffeeShop {
	s := ur.shopReq.ToModel()
	s.ID = *ur.ID
	return s
}

func (rs *resource) DserIDReq(c *gin.Context) *idReq {
	req := &idReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserCreateReq(c *gin.Context) *shopReq {
	req := &shopReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserUpdateReq(c *gin.Context) *updateReq {
	req := &updateReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserNearestReq(c *gin.Context) *nearestReq {
	req := &nearestReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}
