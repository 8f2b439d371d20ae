package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/pullshop/view"
)

// Message types for deferred work

type deferredMsg struct {
	id int
}

type queuedJob struct {
	id    int
	delay time.Duration
}

// loopScheduler implements view.Scheduler on top of the Bubble Tea loop:
// jobs are turned into tea.Tick commands and run when their message comes
// back through Update, so callbacks never leave the event loop.
type loopScheduler struct {
	nextID  int
	pending map[int]func()
	queued  []queuedJob
}

// Compile-time interface check
var _ view.Scheduler = (*loopScheduler)(nil)

func newLoopScheduler() *loopScheduler {
	return &loopScheduler{pending: make(map[int]func())}
}

func (s *loopScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	s.nextID++
	id := s.nextID
	s.pending[id] = f
	s.queued = append(s.queued, queuedJob{id: id, delay: d})
	return func() bool {
		if _, ok := s.pending[id]; !ok {
			return false
		}
		delete(s.pending, id)
		return true
	}
}

// drain returns the tick commands for jobs scheduled since the last call.
func (s *loopScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.queued))
	for _, q := range s.queued {
		cmds = append(cmds, tickJob(q))
	}
	s.queued = nil
	return tea.Batch(cmds...)
}

func tickJob(q queuedJob) tea.Cmd {
	return tea.Tick(q.delay, func(time.Time) tea.Msg {
		return deferredMsg{id: q.id}
	})
}

// fire runs job id unless it was stopped.
func (s *loopScheduler) fire(id int) bool {
	f, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	f()
	return true
}
