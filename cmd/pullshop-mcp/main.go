package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/qyinm/pullshop/catalog"
	"github.com/qyinm/pullshop/config"
	"github.com/qyinm/pullshop/logger"
	"github.com/qyinm/pullshop/mcpsrv"
	"github.com/qyinm/pullshop/theme"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		logger.New(logger.Options{Output: os.Stderr}).WithComponent("main").WithError(err).Fatal("load .env")
	}
	cfg := mcpsrv.LoadConfig()

	log := logger.New(logger.Options{Level: cfg.LogLevel, Output: os.Stderr})
	entry := log.WithComponent("main")

	store, err := theme.LoadFile(cfg.ThemeFile)
	if err != nil {
		entry.WithError(err).Fatal("load theme")
	}

	server := mcpsrv.NewServer(store, catalog.New(), "dev", &mcpsrv.ServerOptions{Logger: log})

	httpServer := &http.Server{
		Addr:              ":" + strings.TrimSpace(cfg.Port),
		Handler:           mcpsrv.NewMux(server, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			entry.WithError(err).Error("shutdown")
		}
	}()

	entry.WithField("addr", httpServer.Addr).Info("pullshop-mcp listening")
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		entry.WithError(err).Fatal("server failed")
	}
}
