package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/solat/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/solat/internal/model"
)

// Module is a pluggable feature that attaches its endpoints to a Controller (a gin group).
type Module interface {
	Mount(c *Controller)
}

// ModuleFunc lets you define a Module with a simple function.
type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// Controller is the router group a Module registers its routes on. Handlers
// may be plain gin handlers, HandlerFunc or HandlerFuncWithAuth.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h any)    { c.Group.GET(path, wrap(h)) }
func (c *Controller) PUT(path string, h any)    { c.Group.PUT(path, wrap(h)) }
func (c *Controller) DELETE(path string, h any) { c.Group.DELETE(path, wrap(h)) }

func wrap(h any) gin.HandlerFunc {
	switch fn := h.(type) {
	case gin.HandlerFunc:
		return fn
	case func(*gin.Context):
		return fn
	case HandlerFunc:
		return ResolveEndpoint(fn)
	case func(*gin.Context) (any, *APIError):
		return ResolveEndpoint(fn)
	case HandlerFuncWithAuth:
		return ResolveEndpointWithAuth(fn)
	case func(*gin.Context, *model.User) (any, *APIError):
		return ResolveEndpointWithAuth(fn)
	}
	log.Fatal().Str("type", fmt.Sprintf("%T", h)).Msg("api.Controller: unsupported handler type")
	return nil
}

// GroupConfig tells the api package how to mount a group.
type GroupConfig struct {
	Prefix     string
	Auth       bool
	SecretKey  string            // required if Auth == true
	Middleware []gin.HandlerFunc // optional additional middleware, run after auth
}

// MountGroup mounts one or more Modules under a prefix with optional auth.
func MountGroup(parent gin.IRoutes, cfg GroupConfig, modules ...Module) {
	var grp *gin.RouterGroup

	switch v := parent.(type) {
	case *gin.Engine:
		grp = v.Group(cfg.Prefix)
	case *gin.RouterGroup:
		if cfg.Prefix != "" {
			grp = v.Group(cfg.Prefix)
		} else {
			grp = v
		}
	default:
		log.Fatal().Str("type", fmt.Sprintf("%T", parent)).Msg("api.MountGroup: unsupported router type")
	}

	if cfg.Auth {
		if cfg.SecretKey == "" {
			log.Fatal().Msg("api.MountGroup: Auth enabled but SecretKey is empty")
		}
		grp.Use(middleware.JWTMiddleware(cfg.SecretKey))
	}
	for _, mw := range cfg.Middleware {
		grp.Use(mw)
	}

	controller := &Controller{Group: grp}

	for _, m := range modules {
		m.Mount(controller)
	}
}
