// Package catalog supplies the product lists shown for each category.
package catalog

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/qyinm/pullshop/types"
	"github.com/shopspring/decimal"
)

// BatchSize is the number of products in every list.
const BatchSize = 6

// IDSource hands out product ids. Ids must never repeat.
type IDSource interface {
	NextID() int64
}

// Counter is a monotonic IDSource, safe for concurrent use.
type Counter struct {
	next atomic.Int64
}

// NewCounter returns a Counter whose first id is start.
func NewCounter(start int64) *Counter {
	c := &Counter{}
	c.next.Store(start)
	return c
}

// NextID returns the next id.
func (c *Counter) NextID() int64 {
	return c.next.Add(1) - 1
}

// Generator implements types.CatalogSource.
type Generator struct {
	ids IDSource

	mu  sync.Mutex
	rng *rand.Rand
}

// Compile-time interface check
var _ types.CatalogSource = (*Generator)(nil)

// Option configures a Generator.
type Option func(*Generator)

// WithIDSource replaces the default time-seeded counter.
func WithIDSource(ids IDSource) Option {
	return func(g *Generator) { g.ids = ids }
}

// WithRand replaces the default random source, e.g. with a seeded one in tests.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.ids == nil {
		g.ids = NewCounter(time.Now().UnixMilli())
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Initial returns the fixed product list for category.
func (g *Generator) Initial(category types.Category) []types.Product {
	list, ok := seeds[category]
	if !ok {
		list = seeds[types.DefaultCategory]
	}
	out := make([]types.Product, 0, len(list))
	for _, s := range list {
		out = append(out, types.NewProduct(s.id, s.name, decimal.RequireFromString(s.price), s.glyph))
	}
	return out
}

// Regenerate returns BatchSize freshly generated products for category.
// Each slot draws a template uniformly from the category's pool and a price
// uniformly from the template's range.
func (g *Generator) Regenerate(category types.Category) []types.Product {
	pool := Pool(category)
	out := make([]types.Product, 0, BatchSize)

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := 0; i < BatchSize; i++ {
		t := pool[g.rng.Intn(len(pool))]
		id := g.ids.NextID()
		out = append(out, types.NewProduct(id, fmt.Sprintf("%s %d", t.Name, id), g.price(t), t.Glyph))
	}
	return out
}

func (g *Generator) price(t types.Template) decimal.Decimal {
	span := t.PriceMax.Sub(t.PriceMin)
	p := t.PriceMin.Add(span.Mul(decimal.NewFromFloat(g.rng.Float64()))).Round(2)
	if p.LessThan(t.PriceMin) {
		return t.PriceMin
	}
	if p.GreaterThan(t.PriceMax) {
		return t.PriceMax
	}
	return p
}

// Pool returns the regeneration templates of category, falling back to the
// default category's pool.
func Pool(category types.Category) []types.Template {
	pool, ok := pools[category]
	if !ok {
		pool = pools[types.DefaultCategory]
	}
	return append([]types.Template(nil), pool...)
}

// TemplateFor finds the template a generated product was drawn from. The
// generated name is the template name followed by the product id.
func TemplateFor(category types.Category, p types.Product) (types.Template, bool) {
	for _, t := range Pool(category) {
		if p.Name() == fmt.Sprintf("%s %d", t.Name, p.ID()) {
			return t, true
		}
	}
	return types.Template{}, false
}
