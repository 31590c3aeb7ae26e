package main

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"

	"fomezero/internal/api"
	"fomezero/internal/config"
	"fomezero/internal/engine"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warnf("could not load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	// 1. Initialize Echo (starts instantly)
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.LogLevel)
	e.JSONSerializer = api.JSONSerializer{}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS))))

	// 2. Handler starts without a session and answers 503 until the load finishes
	h := api.NewHandler(nil)
	h.RegisterRoutes(e)

	// 3. Load, normalize and enrich in the background
	go func() {
		log.Info("BACKGROUND: Starting dataset pipeline...")
		t0 := time.Now()

		session, err := engine.LoadSession(cfg.DatasetPath, engine.DefaultLookups())
		if err != nil {
			log.Errorf("BACKGROUND: pipeline failed: %v", err)
			h.SetError(err)
			return
		}
		h.SetSession(session)

		log.Infof("BACKGROUND: Pipeline complete in %v. API is fully ready.", time.Since(t0))
	}()

	// 4. Start server
	log.Infof("Server ready on %s (data loading in background...)", cfg.ListenAddr)
	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}
