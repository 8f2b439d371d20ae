// Package config reads the terminal app's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the terminal app settings.
type Config struct {
	// Category is the raw startup category; unknown values default later.
	Category  string
	URL       string
	ThemeFile string
	LogFile   string
	LogLevel  string
	// RowPx is how many pixels one terminal row stands for in the gesture.
	RowPx float64
}

// LoadDotEnv loads a .env file if present. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads the configuration from environment variables.
func Load() Config {
	cfg := Config{
		Category:  strings.TrimSpace(os.Getenv("PULLSHOP_CATEGORY")),
		URL:       strings.TrimSpace(os.Getenv("PULLSHOP_URL")),
		ThemeFile: strings.TrimSpace(os.Getenv("PULLSHOP_THEME_FILE")),
		LogFile:   strings.TrimSpace(os.Getenv("PULLSHOP_LOG_FILE")),
		LogLevel:  strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		RowPx:     parseFloat(os.Getenv("PULLSHOP_ROW_PX"), 20),
	}

	if cfg.LogFile == "" {
		cfg.LogFile = "pullshop.log"
	}
	if cfg.RowPx <= 0 {
		cfg.RowPx = 20
	}

	return cfg
}

// StartURL returns the URL the navigation history starts from. An explicit
// category wins over the one carried by URL.
func (c Config) StartURL() string {
	u, err := url.Parse(c.URL)
	if err != nil || c.URL == "" {
		u = &url.URL{Path: "/"}
	}
	if c.Category != "" {
		q := u.Query()
		q.Set("category", c.Category)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func parseFloat(raw string, fallback float64) float64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}
