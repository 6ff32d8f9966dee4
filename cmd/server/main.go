package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	gorillahandlers "github.com/gorilla/handlers"
	"video-sharing/cmd/config"
	"video-sharing/pkg/auth"
	"video-sharing/pkg/database"
	"video-sharing/pkg/handlers"
	"video-sharing/pkg/logger"
	"video-sharing/pkg/media"
	"video-sharing/pkg/repository"
	"video-sharing/pkg/videos"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Error loading config", err)
		return err
	}
	log = logger.New(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Error("Failed to open database", err, slog.String("driver", cfg.Database.Driver))
		return err
	}
	defer db.Close()

	mediaStore, err := newMediaStore(cfg)
	if err != nil {
		log.Error("Failed to set up media store", err, slog.String("backend", cfg.Media.Backend))
		return err
	}

	store := repository.New(log, db)
	svc := videos.NewService(log, store.Videos, store.Users, store)
	h := handlers.New(log, svc, store.Users, mediaStore,
		auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		auth.NewSessions(cfg.Auth.SessionSecret, cfg.Auth.SessionName))

	// Set up Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	h.Routes(r)

	var accessLog io.Writer = os.Stdout
	if cfg.Log.AccessFile != "" {
		accessLog = logger.RotatingFile(cfg.Log.AccessFile, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	}
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           gorillahandlers.CombinedLoggingHandler(accessLog, r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server started", slog.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server stopped", err)
			return err
		}
		return nil
	case <-sc:
	}

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Failed to shut down cleanly", err)
		return err
	}
	return nil
}

func newMediaStore(cfg *config.Config) (media.Store, error) {
	if cfg.Media.Backend == "s3" {
		return media.NewS3Store(cfg.AWS.Region, cfg.AWS.S3Bucket)
	}
	return media.NewFSStore(cfg.Media.Dir, cfg.Media.URLPrefix), nil
}
