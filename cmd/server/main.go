package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"briscola-game/internal/config"
	"briscola-game/internal/game"
	"briscola-game/internal/server"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	logger := config.NewLogger(cfg)
	logger.WithFields(logrus.Fields{
		"addr":       cfg.Addr,
		"difficulty": cfg.Difficulty.String(),
	}).Info("Starting Briscola server...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := server.NewHub(cfg.Difficulty, logger, server.WithGameOptions(game.WithLogger(logger)))
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.NewRouter(hub, cfg.StaticDir),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("Server failed")
	}
	logger.Info("Server stopped")
}
