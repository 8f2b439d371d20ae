package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/pullshop/gesture"
	"github.com/qyinm/pullshop/logger"
	"github.com/qyinm/pullshop/nav"
	"github.com/qyinm/pullshop/types"
	"github.com/qyinm/pullshop/view"
	"github.com/sirupsen/logrus"
)

// Model is the main TUI model
type Model struct {
	page    *view.Page
	store   types.ConfigSource
	history *nav.History
	surface *mouseSurface
	sched   *loopScheduler
	log     *logrus.Entry

	list     list.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	rowPx    float64
	width    int
	height   int
	lastList string
}

// Options configures NewModel.
type Options struct {
	Category types.Category
	History  *nav.History
	RowPx    float64
	Logger   *logger.Log
}

// NewModel builds the page, mounts it on the terminal surface and returns
// the model driving both.
func NewModel(store types.ConfigSource, source types.CatalogSource, opts Options) (Model, error) {
	if opts.RowPx <= 0 {
		opts.RowPx = 20
	}
	if opts.History == nil {
		opts.History = nav.Parse("/")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	sched := newLoopScheduler()
	page := view.NewPage(store, source, sched,
		view.WithCategory(opts.Category),
		view.WithRouter(opts.History),
		view.WithLogger(opts.Logger),
	)
	surface := newMouseSurface(opts.RowPx)
	if err := page.Mount(surface); err != nil {
		return Model{}, fmt.Errorf("mount page: %w", err)
	}

	l := list.New(nil, ProductDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		page:    page,
		store:   store,
		history: opts.History,
		surface: surface,
		sched:   sched,
		log:     opts.Logger.WithComponent("ui"),
		list:    l,
		spinner: s,
		help:    help.New(),
		keys:    keys,
		rowPx:   opts.RowPx,
	}
	m.syncList()
	return m, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Page exposes the bound page, mainly for tests and embedding hosts.
func (m Model) Page() *view.Page { return m.page }

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	wasLoading := m.page.Gesture().IsRefreshing
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.page.Unmount()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resizePanes()
		case key.Matches(msg, m.keys.NextTab):
			m.switchBy(1)
		case key.Matches(msg, m.keys.PrevTab):
			m.switchBy(-1)
		case key.Matches(msg, m.keys.Fresh):
			m.page.SwitchCategory(types.Fresh)
		case key.Matches(msg, m.keys.Digital):
			m.page.SwitchCategory(types.Digital)
		case key.Matches(msg, m.keys.Clothing):
			m.page.SwitchCategory(types.Clothing)
		case key.Matches(msg, m.keys.Pull):
			m.keyboardPull()
		default:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		if !m.surface.handle(msg, m.scrollOffset()) {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			cmds = append(cmds, cmd)
		}

	case deferredMsg:
		m.sched.fire(msg.id)

	case spinner.TickMsg:
		if m.page.Gesture().IsRefreshing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
	}

	m.syncList()
	cmds = append(cmds, m.sched.drain())
	if !wasLoading && m.page.Gesture().IsRefreshing {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// switchBy moves the active category by delta tabs, wrapping around.
func (m *Model) switchBy(delta int) {
	configs := m.store.Categories()
	if len(configs) == 0 {
		return
	}
	idx := 0
	for i, c := range configs {
		if c.Key() == m.page.Category() {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(configs)) % len(configs)
	m.page.SwitchCategory(configs[idx].Key())
}

// keyboardPull replays a full drag past the threshold.
func (m *Model) keyboardPull() {
	travel := gesture.TravelFor(m.page.Config().ThresholdPx())
	scrollY := m.scrollOffset()
	if !m.page.TouchStart(0, scrollY) {
		return
	}
	m.page.TouchMove(travel, scrollY)
	m.page.TouchEnd()
}

// scrollOffset is the list's scroll position in gesture pixels.
func (m Model) scrollOffset() float64 {
	return float64(m.list.Paginator.Page*m.list.Height()) * m.rowPx
}

// syncList pushes the page's products into the list when they changed.
func (m *Model) syncList() {
	products := m.page.Products()
	stamp := listStamp(m.page.Category(), products)
	if stamp == m.lastList {
		return
	}
	m.lastList = stamp

	items := make([]list.Item, 0, len(products))
	for _, p := range products {
		items = append(items, p)
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
	m.log.WithField("items", len(items)).Debug("list updated")
}

// listStamp identifies a product list by category and ids.
func listStamp(c types.Category, products []types.Product) string {
	var b strings.Builder
	b.WriteString(string(c))
	for _, p := range products {
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(p.ID(), 10))
	}
	return b.String()
}

// headerRows is the number of rows reserved for the refresh header.
func (m Model) headerRows() int {
	return int(math.Ceil(view.HeaderHeightPx / m.rowPx))
}

// resizePanes adjusts the list to the window size
func (m *Model) resizePanes() {
	tabHeight := 1
	statusHeight := 1
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	availableHeight := m.height - tabHeight - m.headerRows() - statusHeight - helpHeight
	if availableHeight < 0 {
		availableHeight = 0
	}
	m.list.SetSize(m.width, availableHeight)
	m.help.Width = m.width
}

// View renders the current view
func (m Model) View() string {
	sections := []string{
		m.renderTabs(),
		m.renderHeader(),
		m.list.View(),
		StatusBarStyle.Render(m.history.URL()),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	var tabs []string
	for _, c := range m.store.Categories() {
		if c.Key() == m.page.Category() {
			tabs = append(tabs, themed(ActiveTabStyle, c.Color()).Render(c.Label()))
			continue
		}
		tabs = append(tabs, InactiveTabStyle.Render(c.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderHeader draws the refresh header inside its reserved rows. The
// header slides down with the pull like the translateY of the web style.
func (m Model) renderHeader() string {
	rows := m.headerRows()
	lines := make([]string, rows)

	style := m.page.HeaderStyle()
	if style.Visible {
		revealed := int(math.Ceil((style.HeightPx + style.TranslateYPx) / m.rowPx))
		if revealed > rows {
			revealed = rows
		}
		if revealed > 0 {
			cfg := m.page.Config()
			text := iconGlyph(cfg.Icon(), m.page.Gesture().Status, m.spinner.View()) + " " + m.page.DisplayCopy()
			lines[revealed-1] = themed(HeaderStyle, cfg.Color()).Width(m.width).Render(text)
		}
	}
	return strings.Join(lines, "\n")
}

// iconGlyph is the terminal stand-in for the animated SVG icons.
func iconGlyph(kind types.IconKind, status types.Status, spin string) string {
	if status == types.StatusLoading {
		return spin
	}
	switch kind {
	case types.IconGear:
		if status == types.StatusLoosing {
			return "⚙↻"
		}
		return "⚙"
	case types.IconClothes:
		if status == types.StatusLoosing {
			return "👕↻"
		}
		return "👕"
	default:
		if status == types.StatusLoosing {
			return "💧↓"
		}
		return "💧"
	}
}
