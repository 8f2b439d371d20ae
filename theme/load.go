package theme

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/qyinm/pullshop/types"
	"gopkg.in/yaml.v3"
)

// ErrUnknownCategory is returned when an overlay names a category that
// has no built-in config.
var ErrUnknownCategory = errors.New("unknown category")

type overlayFile struct {
	Categories map[string]overlayEntry `yaml:"categories"`
}

type overlayEntry struct {
	Label             string      `yaml:"label"`
	Theme             string      `yaml:"theme"`
	Color             string      `yaml:"color"`
	Icon              string      `yaml:"icon"`
	Text              overlayText `yaml:"text"`
	AnimationDuration *int        `yaml:"animation_duration"`
	Threshold         *float64    `yaml:"threshold"`
}

type overlayText struct {
	Pulling string `yaml:"pulling"`
	Loosing string `yaml:"loosing"`
	Loading string `yaml:"loading"`
}

// LoadFile reads a YAML overlay from path. An empty path returns Default().
func LoadFile(path string) (*Store, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open theme file: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Load applies a YAML overlay on top of the built-in configs. Fields left
// empty keep their built-in value.
func Load(r io.Reader) (*Store, error) {
	var file overlayFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode theme yaml: %w", err)
	}

	merged := make([]types.CategoryConfig, 0, len(builtin))
	for _, base := range builtin {
		entry, ok := file.Categories[string(base.Key())]
		if !ok {
			merged = append(merged, base)
			continue
		}
		cfg, err := apply(base, entry)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", base.Key(), err)
		}
		merged = append(merged, cfg)
	}

	for key := range file.Categories {
		if !types.Category(key).Known() {
			return nil, fmt.Errorf("%w %q", ErrUnknownCategory, key)
		}
	}

	return newStore(merged), nil
}

func apply(base types.CategoryConfig, e overlayEntry) (types.CategoryConfig, error) {
	label := pick(e.Label, base.Label())
	themeName := pick(e.Theme, base.Theme())
	color := pick(e.Color, base.Color())

	icon := base.Icon()
	if e.Icon != "" {
		icon = types.IconKind(e.Icon)
		if !icon.Valid() {
			return types.CategoryConfig{}, fmt.Errorf("invalid icon %q; expected droplet|gear|clothes", e.Icon)
		}
	}

	text := base.Texts()
	text.Pulling = pick(e.Text.Pulling, text.Pulling)
	text.Loosing = pick(e.Text.Loosing, text.Loosing)
	text.Loading = pick(e.Text.Loading, text.Loading)

	duration := base.AnimationDurationMs()
	if e.AnimationDuration != nil {
		if *e.AnimationDuration < 0 {
			return types.CategoryConfig{}, fmt.Errorf("invalid animation_duration %d", *e.AnimationDuration)
		}
		duration = *e.AnimationDuration
	}

	threshold := base.ThresholdPx()
	if e.Threshold != nil {
		if *e.Threshold <= 0 {
			return types.CategoryConfig{}, fmt.Errorf("invalid threshold %v; must be positive", *e.Threshold)
		}
		threshold = *e.Threshold
	}

	return types.NewCategoryConfig(base.Key(), label, themeName, color, icon, text, duration, threshold), nil
}

func pick(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
