package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/foodcourt-admin/internal/backend"
	"github.com/Skotchmaster/foodcourt-admin/internal/config"
	"github.com/Skotchmaster/foodcourt-admin/internal/httpserver"
	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/Skotchmaster/foodcourt-admin/internal/querycache"
	"github.com/Skotchmaster/foodcourt-admin/internal/session"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	api := backend.NewClient(cfg.APIURL)
	cache := querycache.New()
	sess := session.New(api)

	// a 401 from any in-flight request means our session state is stale in a
	// way local recovery can't fix: drop everything and start over from login
	api.OnUnauthorized = func() {
		sess.Clear()
		cache.Clear()
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Validator = transport.NewValidator()
	e.Use(logging.RequestLogger(logger))

	srv := &httpserver.Server{
		Backend:   api,
		Session:   sess,
		Cache:     cache,
		AssetRoot: cfg.AssetRoot,
	}
	srv.Register(e)

	go func() {
		if err := e.Start(cfg.AdminAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()
	logger.Info("admin panel started", "addr", cfg.AdminAddr, "api_url", cfg.APIURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
