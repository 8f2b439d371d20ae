package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
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

	// stdout carries the protocol, so logs go to stderr only.
	log := logger.New(logger.Options{Level: cfg.LogLevel, Output: os.Stderr})
	entry := log.WithComponent("main")

	store, err := theme.LoadFile(cfg.ThemeFile)
	if err != nil {
		entry.WithError(err).Fatal("load theme")
	}

	server := mcpsrv.NewServer(store, catalog.New(), "dev", &mcpsrv.ServerOptions{Logger: log})
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		entry.WithError(err).Fatal("stdio mcp server failed")
	}
}
