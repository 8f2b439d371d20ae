package types

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/shopspring/decimal"
)

// Category is the key of a product category
type Category string

const (
	Fresh    Category = "fresh"
	Digital  Category = "digital"
	Clothing Category = "clothing"

	// DefaultCategory is used whenever a key is missing or unknown
	DefaultCategory = Fresh
)

// AllCategories lists the recognized categories in tab order
var AllCategories = []Category{Fresh, Digital, Clothing}

// Known reports whether c is one of the recognized categories
func (c Category) Known() bool {
	for _, k := range AllCategories {
		if c == k {
			return true
		}
	}
	return false
}

// ParseCategory returns the category named by raw, or DefaultCategory
func ParseCategory(raw string) Category {
	c := Category(strings.TrimSpace(strings.ToLower(raw)))
	if c.Known() {
		return c
	}
	return DefaultCategory
}

// Status is the pull-to-refresh status
type Status int

const (
	StatusNormal Status = iota
	StatusPulling
	StatusLoosing
	StatusLoading
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusPulling:
		return "pulling"
	case StatusLoosing:
		return "loosing"
	case StatusLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// ParseStatus parses the string form of a status
func ParseStatus(raw string) (Status, error) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "", "normal":
		return StatusNormal, nil
	case "pulling":
		return StatusPulling, nil
	case "loosing":
		return StatusLoosing, nil
	case "loading":
		return StatusLoading, nil
	default:
		return StatusNormal, fmt.Errorf("invalid status %q; expected normal|pulling|loosing|loading", raw)
	}
}

// IconKind selects the refresh icon animation
type IconKind string

const (
	IconDroplet IconKind = "droplet"
	IconGear    IconKind = "gear"
	IconClothes IconKind = "clothes"
)

// Valid reports whether k names a known icon renderer
func (k IconKind) Valid() bool {
	switch k {
	case IconDroplet, IconGear, IconClothes:
		return true
	}
	return false
}

// Copy holds the header text shown for each active status
type Copy struct {
	Pulling string
	Loosing string
	Loading string
}

// CategoryConfig is the theme, copy and threshold of one category
type CategoryConfig struct {
	key                 Category
	label               string
	theme               string
	color               string
	icon                IconKind
	copy                Copy
	animationDurationMs int
	thresholdPx         float64
}

// NewCategoryConfig creates a new CategoryConfig with the given fields
func NewCategoryConfig(key Category, label, theme, color string, icon IconKind, copy Copy, animationDurationMs int, thresholdPx float64) CategoryConfig {
	return CategoryConfig{
		key:                 key,
		label:               label,
		theme:               theme,
		color:               color,
		icon:                icon,
		copy:                copy,
		animationDurationMs: animationDurationMs,
		thresholdPx:         thresholdPx,
	}
}

// Getters for CategoryConfig fields
func (c CategoryConfig) Key() Category            { return c.key }
func (c CategoryConfig) Label() string            { return c.label }
func (c CategoryConfig) Theme() string            { return c.theme }
func (c CategoryConfig) Color() string            { return c.color }
func (c CategoryConfig) Icon() IconKind           { return c.icon }
func (c CategoryConfig) Texts() Copy              { return c.copy }
func (c CategoryConfig) AnimationDurationMs() int { return c.animationDurationMs }
func (c CategoryConfig) ThresholdPx() float64     { return c.thresholdPx }

// Copy returns the header text for status; empty for StatusNormal
func (c CategoryConfig) Copy(status Status) string {
	switch status {
	case StatusPulling:
		return c.copy.Pulling
	case StatusLoosing:
		return c.copy.Loosing
	case StatusLoading:
		return c.copy.Loading
	default:
		return ""
	}
}

// Product is one entry of the product list
type Product struct {
	id    int64
	name  string
	price decimal.Decimal
	glyph string
}

// NewProduct creates a new Product. Prices are stored rounded to 2 places.
func NewProduct(id int64, name string, price decimal.Decimal, glyph string) Product {
	return Product{
		id:    id,
		name:  name,
		price: price.Round(2),
		glyph: glyph,
	}
}

// Getters for Product fields
func (p Product) ID() int64              { return p.id }
func (p Product) Name() string           { return p.name }
func (p Product) Price() decimal.Decimal { return p.price }
func (p Product) Glyph() string          { return p.glyph }

// PriceText formats the price with exactly two decimals
func (p Product) PriceText() string { return p.price.StringFixed(2) }

// list.Item interface implementation
func (p Product) Title() string       { return p.glyph + " " + p.name }
func (p Product) Description() string { return "¥" + p.PriceText() }
func (p Product) FilterValue() string { return p.name }

// Compile-time check that Product implements list.Item
var _ list.Item = Product{}

// Template is one entry of a category's regeneration pool
type Template struct {
	Name     string
	PriceMin decimal.Decimal
	PriceMax decimal.Decimal
	Glyph    string
}

// Contains reports whether price lies in the template's inclusive range
func (t Template) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(t.PriceMin) && price.LessThanOrEqual(t.PriceMax)
}

// GestureState is a snapshot of the pull gesture
type GestureState struct {
	Status         Status
	IsPulling      bool
	IsRefreshing   bool
	PullDistancePx float64
	TouchStartY    float64
	TouchCurrentY  float64
}

// CatalogSource is the core abstraction for product data.
// Sync methods only, no bubbletea dependency.
type CatalogSource interface {
	Initial(category Category) []Product
	Regenerate(category Category) []Product
}

// ConfigSource resolves category configs; unknown keys resolve to the default.
type ConfigSource interface {
	Get(category string) CategoryConfig
	Categories() []CategoryConfig
}
