package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/foodcourt-admin/internal/config"
	"github.com/Skotchmaster/foodcourt-admin/internal/devbackend"
	"github.com/Skotchmaster/foodcourt-admin/internal/logging"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	db, err := devbackend.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	store := &devbackend.Store{DB: db}
	if err := store.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Validator = transport.NewValidator()
	e.Use(logging.RequestLogger(logger))

	srv := &devbackend.Server{
		Store:     store,
		JWTSecret: cfg.JWTSecret,
		UploadDir: cfg.UploadDir,
	}
	srv.Register(e)

	go func() {
		if err := e.Start(cfg.BackendAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()
	logger.Info("dev backend started", "addr", cfg.BackendAddr, "admin_email", cfg.AdminEmail)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
