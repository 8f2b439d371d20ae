// Package gesture turns raw touch coordinates into a pull-to-refresh
// lifecycle: normal → pulling ⇄ loosing → loading → normal.
//
// A Machine is not safe for concurrent use; all calls are expected to come
// from the host's single event loop.
package gesture

import (
	"math"
	"time"

	"github.com/qyinm/pullshop/types"
)

const (
	// DampingBudgetPx is the travel that maps 1:1 to pull distance.
	DampingBudgetPx = 50.0
	// DampingFactor scales travel beyond the budget.
	DampingFactor = 0.5
	// RefreshDelay is the simulated refresh latency.
	RefreshDelay = 1500 * time.Millisecond
)

// Damp converts raw downward travel into pull distance, clamped to
// [0, 2×threshold].
func Damp(deltaY, threshold float64) float64 {
	d := deltaY
	if deltaY > DampingBudgetPx {
		d = DampingBudgetPx + (deltaY-DampingBudgetPx)*DampingFactor
	}
	return math.Max(0, math.Min(d, threshold*2))
}

// TravelFor is the inverse of Damp below the clamp: the raw travel that
// produces distance.
func TravelFor(distance float64) float64 {
	if distance <= DampingBudgetPx {
		return distance
	}
	return DampingBudgetPx + (distance-DampingBudgetPx)/DampingFactor
}

// Ticket identifies one in-flight refresh. Completing with a stale ticket
// is a no-op.
type Ticket uint64

// Machine is the pull gesture state machine.
type Machine struct {
	threshold float64
	state     types.GestureState
	ticket    Ticket
	inFlight  bool
}

// New creates a Machine with the given refresh threshold in pixels.
func New(threshold float64) *Machine {
	return &Machine{threshold: threshold}
}

// Threshold returns the current refresh threshold.
func (m *Machine) Threshold() float64 { return m.threshold }

// SetThreshold changes the threshold. It is ignored while a gesture or
// refresh is in progress.
func (m *Machine) SetThreshold(threshold float64) bool {
	if m.state.IsPulling || m.state.IsRefreshing {
		return false
	}
	m.threshold = threshold
	return true
}

// State returns a snapshot of the gesture state.
func (m *Machine) State() types.GestureState { return m.state }

// Refreshing reports whether a refresh is in flight.
func (m *Machine) Refreshing() bool { return m.state.IsRefreshing }

// TouchStart begins a pull. It is accepted only at the top of the page and
// when no gesture or refresh is active.
func (m *Machine) TouchStart(y, scrollY float64) bool {
	if scrollY > 0 || m.state.IsRefreshing || m.state.IsPulling {
		return false
	}
	m.state.TouchStartY = y
	m.state.TouchCurrentY = y
	m.state.IsPulling = true
	m.state.Status = types.StatusPulling
	return true
}

// TouchMove updates the pull distance. It returns true when the host should
// suppress default scrolling. Any upward or zero movement, or a scrolled
// page, aborts the gesture.
func (m *Machine) TouchMove(y, scrollY float64) bool {
	if !m.state.IsPulling || m.state.IsRefreshing {
		return false
	}
	if scrollY > 0 {
		m.reset()
		return false
	}

	m.state.TouchCurrentY = y
	deltaY := y - m.state.TouchStartY
	if deltaY <= 0 {
		m.reset()
		return false
	}

	m.state.PullDistancePx = Damp(deltaY, m.threshold)
	if m.state.PullDistancePx >= m.threshold {
		m.state.Status = types.StatusLoosing
	} else {
		m.state.Status = types.StatusPulling
	}
	return true
}

// TouchEnd releases the pull. Past the threshold it enters loading and
// returns the ticket the caller must complete after RefreshDelay.
func (m *Machine) TouchEnd() (Ticket, bool) {
	if !m.state.IsPulling || m.state.IsRefreshing {
		return 0, false
	}
	if m.state.PullDistancePx < m.threshold {
		m.reset()
		return 0, false
	}

	m.state.Status = types.StatusLoading
	m.state.IsRefreshing = true
	m.state.PullDistancePx = m.threshold
	m.ticket++
	m.inFlight = true
	return m.ticket, true
}

// Pending reports whether t is the in-flight refresh.
func (m *Machine) Pending(t Ticket) bool {
	return m.inFlight && t == m.ticket
}

// Complete finishes the refresh identified by t and resets to normal.
func (m *Machine) Complete(t Ticket) bool {
	if !m.Pending(t) {
		return false
	}
	m.reset()
	return true
}

// Cancel resets from any state and invalidates an in-flight ticket.
func (m *Machine) Cancel() {
	m.reset()
}

func (m *Machine) reset() {
	m.state = types.GestureState{}
	m.inFlight = false
}
