// Package view binds the gesture machine, config store and catalog into
// the outputs a host draws: header copy, header style and icon markup.
package view

import (
	"errors"
	"time"

	"github.com/qyinm/pullshop/gesture"
	"github.com/qyinm/pullshop/logger"
	"github.com/qyinm/pullshop/types"
	"github.com/sirupsen/logrus"
)

// ErrAlreadyMounted is returned by Mount when the page is already bound
// to a surface.
var ErrAlreadyMounted = errors.New("page already mounted")

// TouchHandler receives raw touch events from a Surface.
type TouchHandler interface {
	TouchStart(y, scrollY float64) bool
	// TouchMove returns true when default scrolling should be suppressed.
	TouchMove(y, scrollY float64) bool
	TouchEnd()
}

// Surface is the scrollable root that produces touch events.
type Surface interface {
	Subscribe(h TouchHandler) (unsubscribe func())
}

// Scheduler defers f by d on the host's event loop. The returned stop
// function cancels f if it has not run yet.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// Router is told about category switches so it can update shareable state.
type Router interface {
	CategoryChanged(c types.Category)
}

type noopRouter struct{}

func (noopRouter) CategoryChanged(types.Category) {}

// Page is the pull-to-refresh product list. It is not safe for concurrent
// use; drive it from one event loop.
type Page struct {
	store   types.ConfigSource
	catalog types.CatalogSource
	sched   Scheduler
	router  Router
	log     *logrus.Entry

	category types.Category
	config   types.CategoryConfig
	products []types.Product
	machine  *gesture.Machine

	unsubscribe func()
	stopRefresh func() bool
}

// Compile-time interface check
var _ TouchHandler = (*Page)(nil)

// Option configures a Page.
type Option func(*Page)

// WithCategory sets the startup category. Unknown keys resolve to the
// store's default.
func WithCategory(c types.Category) Option {
	return func(p *Page) { p.category = c }
}

// WithRouter sets the collaborator notified on category switches.
func WithRouter(r Router) Option {
	return func(p *Page) { p.router = r }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Log) Option {
	return func(p *Page) { p.log = l.WithComponent("view") }
}

// NewPage creates a Page showing the initial list of its category.
func NewPage(store types.ConfigSource, catalog types.CatalogSource, sched Scheduler, opts ...Option) *Page {
	p := &Page{
		store:    store,
		catalog:  catalog,
		sched:    sched,
		router:   noopRouter{},
		category: types.DefaultCategory,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Discard().WithComponent("view")
	}

	p.config = store.Get(string(p.category))
	p.category = p.config.Key()
	p.products = catalog.Initial(p.category)
	p.machine = gesture.New(p.config.ThresholdPx())
	return p
}

// Mount subscribes the page to surface for its lifetime.
func (p *Page) Mount(surface Surface) error {
	if p.unsubscribe != nil {
		return ErrAlreadyMounted
	}
	p.unsubscribe = surface.Subscribe(p)
	p.log.WithField("category", p.category).Debug("mounted")
	return nil
}

// Unmount detaches from the surface and drops any pending refresh.
func (p *Page) Unmount() {
	if p.unsubscribe == nil {
		return
	}
	p.unsubscribe()
	p.unsubscribe = nil
	p.cancelRefresh()
	p.machine.Cancel()
	p.log.Debug("unmounted")
}

// Mounted reports whether the page is bound to a surface.
func (p *Page) Mounted() bool { return p.unsubscribe != nil }

// TouchStart forwards to the gesture machine.
func (p *Page) TouchStart(y, scrollY float64) bool {
	return p.machine.TouchStart(y, scrollY)
}

// TouchMove forwards to the gesture machine.
func (p *Page) TouchMove(y, scrollY float64) bool {
	return p.machine.TouchMove(y, scrollY)
}

// TouchEnd releases the pull and schedules the refresh when it started one.
func (p *Page) TouchEnd() {
	ticket, ok := p.machine.TouchEnd()
	if !ok {
		return
	}
	p.log.WithField("category", p.category).Info("refresh started")
	p.stopRefresh = p.sched.AfterFunc(gesture.RefreshDelay, func() {
		p.completeRefresh(ticket)
	})
}

func (p *Page) completeRefresh(ticket gesture.Ticket) {
	if !p.machine.Pending(ticket) {
		p.log.Debug("stale refresh ignored")
		return
	}
	p.products = p.catalog.Regenerate(p.category)
	p.machine.Complete(ticket)
	p.stopRefresh = nil
	p.log.WithFields(logrus.Fields{
		"category": p.category,
		"products": len(p.products),
	}).Info("refresh completed")
}

func (p *Page) cancelRefresh() {
	if p.stopRefresh != nil {
		p.stopRefresh()
		p.stopRefresh = nil
	}
}

// SwitchCategory activates c. Switching to the active category is a no-op.
// Any gesture or refresh in flight is cancelled so its result cannot land
// on the new category.
func (p *Page) SwitchCategory(c types.Category) bool {
	cfg := p.store.Get(string(c))
	if cfg.Key() == p.category {
		return false
	}

	if p.machine.Refreshing() {
		p.log.WithField("category", p.category).Info("refresh cancelled by category switch")
	}
	p.cancelRefresh()
	p.machine.Cancel()

	p.category = cfg.Key()
	p.config = cfg
	p.machine.SetThreshold(cfg.ThresholdPx())
	p.products = p.catalog.Initial(p.category)
	p.router.CategoryChanged(p.category)

	p.log.WithFields(logrus.Fields{
		"category":  p.category,
		"threshold": cfg.ThresholdPx(),
	}).Info("category switched")
	return true
}

// Category returns the active category.
func (p *Page) Category() types.Category { return p.category }

// Config returns the active category config.
func (p *Page) Config() types.CategoryConfig { return p.config }

// Products returns a copy of the current product list.
func (p *Page) Products() []types.Product {
	return append([]types.Product(nil), p.products...)
}

// Gesture returns the gesture state snapshot.
func (p *Page) Gesture() types.GestureState { return p.machine.State() }

// DisplayCopy returns the header text for the current status.
func (p *Page) DisplayCopy() string {
	return DisplayCopy(p.config, p.machine.State())
}

// HeaderStyle returns the header style for the current pull distance.
func (p *Page) HeaderStyle() HeaderStyle {
	return StyleFor(p.machine.State())
}

// IconMarkup returns the active category's icon for the current status.
func (p *Page) IconMarkup() string {
	return IconMarkup(p.config.Icon(), p.machine.State().Status)
}

// Snapshot returns all render outputs for the current state.
func (p *Page) Snapshot() Render {
	r := Preview(p.config, p.machine.State())
	r.Products = p.Products()
	return r
}
