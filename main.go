package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/pullshop/catalog"
	"github.com/qyinm/pullshop/config"
	"github.com/qyinm/pullshop/logger"
	"github.com/qyinm/pullshop/nav"
	"github.com/qyinm/pullshop/theme"
	"github.com/qyinm/pullshop/ui"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()

	flag.StringVar(&cfg.Category, "category", cfg.Category, "startup category: fresh|digital|clothing")
	flag.StringVar(&cfg.ThemeFile, "theme", cfg.ThemeFile, "YAML theme overlay file")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file path")
	flag.Parse()

	log := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	store, err := theme.LoadFile(cfg.ThemeFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	history := nav.Parse(cfg.StartURL())
	model, err := ui.NewModel(store, catalog.New(), ui.Options{
		Category: history.Category(),
		History:  history,
		RowPx:    cfg.RowPx,
		Logger:   log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.WithComponent("main").WithField("url", history.URL()).Info("starting")
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
