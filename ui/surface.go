package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/pullshop/view"
)

// mouseSurface turns left-button drags into touch events. One terminal row
// stands for rowPx pixels.
type mouseSurface struct {
	handler view.TouchHandler
	rowPx   float64
	down    bool
}

// Compile-time interface check
var _ view.Surface = (*mouseSurface)(nil)

func newMouseSurface(rowPx float64) *mouseSurface {
	return &mouseSurface{rowPx: rowPx}
}

func (s *mouseSurface) Subscribe(h view.TouchHandler) func() {
	s.handler = h
	return func() {
		s.handler = nil
		s.down = false
	}
}

// handle dispatches msg and reports whether default handling (list
// scrolling) should be suppressed.
func (s *mouseSurface) handle(msg tea.MouseMsg, scrollY float64) bool {
	if s.handler == nil {
		return false
	}
	y := float64(msg.Y) * s.rowPx

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return false
		}
		s.down = true
		return s.handler.TouchStart(y, scrollY)
	case tea.MouseActionMotion:
		if !s.down {
			return false
		}
		return s.handler.TouchMove(y, scrollY)
	case tea.MouseActionRelease:
		if !s.down {
			return false
		}
		s.down = false
		s.handler.TouchEnd()
		return true
	}
	return false
}
