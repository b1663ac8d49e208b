package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/solat/internal/config"
	"github.com/Nixie-Tech-LLC/solat/internal/db"
	"github.com/Nixie-Tech-LLC/solat/internal/display"
	"github.com/Nixie-Tech-LLC/solat/internal/jakim"
	"github.com/Nixie-Tech-LLC/solat/internal/mqtt"
	"github.com/Nixie-Tech-LLC/solat/internal/prayer"
	"github.com/Nixie-Tech-LLC/solat/internal/redis"
	"github.com/Nixie-Tech-LLC/solat/internal/refresh"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("failed to read .env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	defer conn.Close()

	if err := db.RunMigrations(conn, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	store := db.NewStore(conn)

	client := jakim.NewClientWithTimeout(cfg.JakimBaseURL, cfg.JakimTimeout)
	prayers := prayer.NewService(client,
		prayer.WithMaxAge(cfg.CacheMaxAge),
		prayer.WithCache(prayer.NewCache(prayer.SystemClock{}, cfg.StaleRetention)),
		prayer.WithRangeConcurrency(cfg.RangeConcurrency),
	)
	displays := display.NewService(store, prayers, prayer.SystemClock{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresher, closePush := startRefresher(ctx, cfg, store, displays)

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, store, displays, refresher)

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: r}
	go func() {
		log.Info().Str("address", cfg.ServerAddress).Str("jakim", cfg.JakimBaseURL).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// Let an in-flight pass finish before its broker goes away.
	if refresher != nil {
		refresher.Stop()
	}
	closePush()
}

// startRefresher wires the MQTT push job. It returns a nil refresher when no
// broker is configured; Redis is optional and only deduplicates pushes. The
// returned func closes the connections and must run after Refresher.Stop.
func startRefresher(ctx context.Context, cfg *config.Config, store db.Store, displays *display.Service) (*refresh.Refresher, func()) {
	if cfg.MQTTBrokerURL == "" {
		log.Info().Msg("MQTT_BROKER_URL not set, TV push disabled")
		return nil, func() {}
	}

	publisher, err := mqtt.Connect(cfg.MQTTBrokerURL, cfg.MQTTClientID)
	if err != nil {
		log.Error().Err(err).Msg("mqtt connect failed, TV push disabled")
		return nil, func() {}
	}

	var digests refresh.DigestStore
	var rdb *redis.Client
	if cfg.RedisAddress != "" {
		rdb = redis.New(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err := rdb.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, pushing every run")
			_ = rdb.Close()
			rdb = nil
		} else {
			digests = rdb
		}
	}

	closeAll := func() {
		publisher.Close()
		if rdb != nil {
			_ = rdb.Close()
		}
	}

	refresher := refresh.New(store, displays, digests, publisher)
	if err := refresher.Start(cfg.RefreshCron); err != nil {
		log.Error().Err(err).Str("cron", cfg.RefreshCron).Msg("refresh schedule rejected, TV push disabled")
		closeAll()
		return nil, func() {}
	}
	return refresher, closeAll
}
