package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/solat/internal/http/api"
	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

type ZoneListResponse struct {
	Data []zone.Info `json:"data"`
}

type ResolveResponse struct {
	Data  zone.Info `json:"data"`
	State string    `json:"state"`
	City  string    `json:"city"`
}

func ZonesModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/zones", listZones)
		c.GET("/zones/resolve", resolveZone)
		c.GET("/zones/:code", getZone)
	})
}

// GET /api/zones
func listZones(_ *gin.Context) (any, *api.APIError) {
	return ZoneListResponse{Data: zone.All()}, nil
}

// GET /api/zones/:code
func getZone(ctx *gin.Context) (any, *api.APIError) {
	code, err := zone.Parse(ctx.Param("code"))
	if err != nil {
		return nil, api.NewError(http.StatusNotFound, err.Error())
	}
	info, _ := zone.Lookup(code)
	return info, nil
}

// GET /api/zones/resolve?state=&city=
func resolveZone(ctx *gin.Context) (any, *api.APIError) {
	state, city := ctx.Query("state"), ctx.Query("city")
	if state == "" && city == "" {
		return nil, api.NewError(http.StatusBadRequest, "state or city is required")
	}
	info, _ := zone.Lookup(zone.Resolve(state, city))
	return ResolveResponse{Data: info, State: state, City: city}, nil
}
