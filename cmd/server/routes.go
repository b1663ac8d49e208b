package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/solat/internal/config"
	"github.com/Nixie-Tech-LLC/solat/internal/db"
	"github.com/Nixie-Tech-LLC/solat/internal/display"
	"github.com/Nixie-Tech-LLC/solat/internal/http/api"
	adminapi "github.com/Nixie-Tech-LLC/solat/internal/http/api/admin/endpoints"
	clientapi "github.com/Nixie-Tech-LLC/solat/internal/http/api/tv/endpoints"
	zoneapi "github.com/Nixie-Tech-LLC/solat/internal/http/api/zones/endpoints"
	"github.com/Nixie-Tech-LLC/solat/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/solat/internal/http/templates"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
	"github.com/Nixie-Tech-LLC/solat/internal/refresh"
)


// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, displays *display.Service, refresher *refresh.Refresher) {
	r.SetHTMLTemplate(templates.Load())
	r.Use(middleware.RequestID(), middleware.RequestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			middleware.RequestIDHeader,
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Retry-After",
			"X-Prayer-Source",
			"X-Last-Fetched",
			"X-Zone-Code",
			middleware.RequestIDHeader,
		},
		AllowCredentials: false,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		zoneapi.ZonesModule(),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/admin",
		Auth:       true,
		SecretKey:  cfg.JWTSecret,
		Middleware: []gin.HandlerFunc{middleware.RequireMasjidAdmin(store)},
	},
		adminapi.PrayerTimesModule(store, pushOnChange(refresher)),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/tv",
	},
		clientapi.PrayerTimesModule(displays, prayer.SystemClock{}),
		clientapi.IntegrationsModule(displays, prayer.SystemClock{}),
	)
}

// pushOnChange re-pushes schedules after an admin edit instead of waiting for
// the next cron tick. Bursts of edits share one pass.
func pushOnChange(refresher *refresh.Refresher) adminapi.ChangeHook {
	if refresher == nil {
		return nil
	}
	return func(masjidID string) {
		log.Info().Str("masjid_id", masjidID).Msg("prayer times changed, push requested")
		refresher.Trigger()
	}
}
