package view

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/qyinm/pullshop/catalog"
	"github.com/qyinm/pullshop/gesture"
	"github.com/qyinm/pullshop/theme"
	"github.com/qyinm/pullshop/types"
)

type fakeJob struct {
	delay   time.Duration
	fn      func()
	stopped bool
	ran     bool
}

type fakeScheduler struct {
	jobs []*fakeJob
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	j := &fakeJob{delay: d, fn: f}
	s.jobs = append(s.jobs, j)
	return func() bool {
		if j.ran || j.stopped {
			return false
		}
		j.stopped = true
		return true
	}
}

// fireAll runs queued jobs. With ignoreStop it also runs stopped ones, like
// a timer that fired just before its stop call.
func (s *fakeScheduler) fireAll(ignoreStop bool) {
	jobs := s.jobs
	s.jobs = nil
	for _, j := range jobs {
		if j.stopped && !ignoreStop {
			continue
		}
		j.ran = true
		j.fn()
	}
}

type fakeSurface struct {
	handler      TouchHandler
	unsubscribes int
}

func (s *fakeSurface) Subscribe(h TouchHandler) func() {
	s.handler = h
	return func() {
		s.handler = nil
		s.unsubscribes++
	}
}

type fakeRouter struct {
	changes []types.Category
}

func (r *fakeRouter) CategoryChanged(c types.Category) {
	r.changes = append(r.changes, c)
}

func newTestPage(t *testing.T, opts ...Option) (*Page, *fakeScheduler, *fakeRouter) {
	t.Helper()
	sched := &fakeScheduler{}
	router := &fakeRouter{}
	gen := catalog.New(catalog.WithIDSource(catalog.NewCounter(1)), catalog.WithRand(rand.New(rand.NewSource(1))))
	opts = append([]Option{WithRouter(router)}, opts...)
	return NewPage(theme.Default(), gen, sched, opts...), sched, router
}

func pullTo(p *Page, y float64) {
	p.TouchStart(100, 0)
	p.TouchMove(y, 0)
}

func TestNewPageDefaults(t *testing.T) {
	p, _, _ := newTestPage(t)
	if p.Category() != types.Fresh {
		t.Errorf("category = %q, want fresh", p.Category())
	}
	if len(p.Products()) != 6 || p.Products()[0].Name() != "新鲜草莓" {
		t.Errorf("unexpected initial list: %v", p.Products())
	}

	p, _, _ = newTestPage(t, WithCategory("toys"))
	if p.Category() != types.Fresh {
		t.Errorf("unknown startup category should fall back to fresh, got %q", p.Category())
	}

	p, _, _ = newTestPage(t, WithCategory(types.Digital))
	if p.Config().Icon() != types.IconGear {
		t.Errorf("icon = %q, want gear", p.Config().Icon())
	}
}

func TestMountLifecycle(t *testing.T) {
	p, _, _ := newTestPage(t)
	surface := &fakeSurface{}

	if err := p.Mount(surface); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if surface.handler == nil || !p.Mounted() {
		t.Fatal("page should be subscribed after mount")
	}
	if err := p.Mount(surface); !errors.Is(err, ErrAlreadyMounted) {
		t.Fatalf("second mount err = %v, want ErrAlreadyMounted", err)
	}

	surface.handler.TouchStart(100, 0)
	if !surface.handler.TouchMove(150, 0) {
		t.Fatal("move through the surface should suppress scrolling")
	}

	p.Unmount()
	if surface.handler != nil || surface.unsubscribes != 1 || p.Mounted() {
		t.Fatal("unmount should unsubscribe once")
	}
	if p.Gesture().IsPulling {
		t.Fatal("unmount should reset the gesture")
	}
	p.Unmount()
	if surface.unsubscribes != 1 {
		t.Fatal("second unmount must be a no-op")
	}
}

func TestScenarioBRefreshCycle(t *testing.T) {
	p, sched, _ := newTestPage(t)
	initial := p.Products()

	pullTo(p, 220)
	if p.Gesture().Status != types.StatusLoosing {
		t.Fatalf("status = %v, want loosing", p.Gesture().Status)
	}
	if p.DisplayCopy() != "松开刷新啦~" {
		t.Errorf("copy = %q", p.DisplayCopy())
	}

	p.TouchEnd()
	st := p.Gesture()
	if st.Status != types.StatusLoading || !st.IsRefreshing || st.PullDistancePx != 80 {
		t.Fatalf("unexpected state after release: %+v", st)
	}
	if len(sched.jobs) != 1 || sched.jobs[0].delay != gesture.RefreshDelay {
		t.Fatalf("expected one job after %v, got %+v", gesture.RefreshDelay, sched.jobs)
	}
	if p.HeaderStyle().Transition != "none" {
		t.Error("transition should be suppressed while loading")
	}

	sched.fireAll(false)

	if p.Gesture() != (types.GestureState{}) {
		t.Fatalf("state not reset: %+v", p.Gesture())
	}
	got := p.Products()
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	if got[0].Name() == initial[0].Name() {
		t.Error("refresh should replace the list with generated products")
	}
	for _, prod := range got {
		if _, ok := catalog.TemplateFor(types.Fresh, prod); !ok {
			t.Errorf("product %q not from the fresh pool", prod.Name())
		}
	}
}

func TestReleaseBelowThresholdSchedulesNothing(t *testing.T) {
	p, sched, _ := newTestPage(t)
	pullTo(p, 170)
	p.TouchEnd()
	if len(sched.jobs) != 0 {
		t.Fatal("no refresh should be scheduled below threshold")
	}
	if p.Gesture().Status != types.StatusNormal {
		t.Fatalf("status = %v", p.Gesture().Status)
	}
}

func TestSwitchCategory(t *testing.T) {
	p, _, router := newTestPage(t)

	if p.SwitchCategory(types.Fresh) {
		t.Fatal("switching to the active category must be a no-op")
	}
	if len(router.changes) != 0 {
		t.Fatal("no-op switch must not notify the router")
	}

	if !p.SwitchCategory(types.Clothing) {
		t.Fatal("switch to clothing should succeed")
	}
	if p.Category() != types.Clothing || p.Config().Color() != "#ff2d55" {
		t.Errorf("config not swapped: %q %q", p.Category(), p.Config().Color())
	}
	if p.Products()[0].Name() != "时尚T恤" {
		t.Errorf("list should be the initial clothing list, got %q", p.Products()[0].Name())
	}
	if len(router.changes) != 1 || router.changes[0] != types.Clothing {
		t.Errorf("router changes = %v", router.changes)
	}
}

func TestSwitchIsIdempotentAfterRefresh(t *testing.T) {
	p, sched, _ := newTestPage(t)
	pullTo(p, 220)
	p.TouchEnd()
	sched.fireAll(false)
	refreshed := p.Products()

	p.SwitchCategory(types.Fresh)
	if p.Products()[0].Name() != refreshed[0].Name() {
		t.Fatal("switching to the same category must not reload the list")
	}
}

func TestSwitchCancelsPendingRefresh(t *testing.T) {
	p, sched, _ := newTestPage(t)
	pullTo(p, 220)
	p.TouchEnd()

	p.SwitchCategory(types.Digital)
	if p.Gesture().IsRefreshing {
		t.Fatal("switch should cancel the refresh")
	}
	if !sched.jobs[0].stopped {
		t.Fatal("pending job should be stopped")
	}

	// even a completion that raced the stop must not replace the list
	sched.fireAll(true)
	if p.Products()[0].Name() != "智能手机" {
		t.Errorf("stale refresh replaced the digital list: %q", p.Products()[0].Name())
	}
}

func TestUnmountCancelsPendingRefresh(t *testing.T) {
	p, sched, _ := newTestPage(t)
	surface := &fakeSurface{}
	if err := p.Mount(surface); err != nil {
		t.Fatal(err)
	}
	pullTo(p, 220)
	p.TouchEnd()
	before := p.Products()

	p.Unmount()
	sched.fireAll(true)
	if p.Products()[0].Name() != before[0].Name() {
		t.Fatal("refresh completed after unmount")
	}
}

func TestSwitchUsesNewThreshold(t *testing.T) {
	store, err := theme.Load(stringsReader("categories:\n  digital:\n    threshold: 120\n"))
	if err != nil {
		t.Fatal(err)
	}
	p := NewPage(store, catalog.New(), &fakeScheduler{})
	p.SwitchCategory(types.Digital)

	p.TouchStart(0, 0)
	p.TouchMove(180, 0) // 50 + 65 = 115
	if p.Gesture().Status != types.StatusPulling {
		t.Fatalf("115 < 120 should still be pulling, got %v", p.Gesture().Status)
	}
	p.TouchMove(200, 0) // 50 + 75 = 125
	if p.Gesture().Status != types.StatusLoosing {
		t.Fatalf("125 >= 120 should be loosing, got %v", p.Gesture().Status)
	}
}

func TestSnapshot(t *testing.T) {
	p, _, _ := newTestPage(t, WithCategory(types.Digital))
	pullTo(p, 170)

	r := p.Snapshot()
	if r.Copy != "下拉探索黑科技..." {
		t.Errorf("copy = %q", r.Copy)
	}
	if r.Style.TranslateYPx != 0 {
		t.Errorf("translateY = %v, want 0 at distance 60", r.Style.TranslateYPx)
	}
	if len(r.Products) != 6 || r.Config.Key() != types.Digital {
		t.Errorf("unexpected snapshot: %+v", r)
	}
}
