// Package tui is the interactive dashboard: a station list, the departure
// board of the selected station and a status line, driven by bubbletea.
package tui

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/abfahrt/internal/models"
	"github.com/mobil-koeln/abfahrt/internal/nav"
	"github.com/mobil-koeln/abfahrt/internal/refresh"
)

// modeChips are the transport types that can be hidden from the departure
// board, in key order (1-4).
var modeChips = models.KnownProducts

// Options configures the dashboard
type Options struct {
	AutoRefresh         bool
	AutoRefreshInterval time.Duration
	// Timeout bounds each provider call
	Timeout time.Duration
	Logger  *log.Logger
}

// frame is the last rendered view and the size it was rendered for
type frame struct {
	view          string
	width, height int
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	state *nav.State
	orch  *refresh.Orchestrator

	width  int
	height int
	frame  *frame

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	// Station filter; allStations is the unfiltered directory
	filter      textinput.Model
	allStations []models.Station

	// Departure board chips, indexed like modeChips
	modeFilters []bool

	loadingStations   bool
	loadingDepartures bool
	lastUpdate        time.Time

	autoRefresh         bool
	autoRefreshInterval time.Duration
	autoRefreshGen      int
}

// New creates a new TUI model.
func New(p refresh.Provider, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter stations..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleLoading

	h := help.New()
	h.Styles.ShortKey = styleMuted.Bold(true)
	h.Styles.ShortDesc = styleMuted
	h.Styles.ShortSeparator = styleMuted

	interval := opts.AutoRefreshInterval
	if interval <= 0 {
		interval = defaultAutoRefreshInterval
	}

	filters := make([]bool, len(modeChips))
	for i := range filters {
		filters[i] = true
	}

	return Model{
		state:               nav.New(),
		orch:                refresh.New(p, refresh.WithTimeout(opts.Timeout), refresh.WithLogger(opts.Logger)),
		frame:               &frame{},
		keys:                defaultKeyMap,
		help:                h,
		spinner:             sp,
		filter:              ti,
		modeFilters:         filters,
		loadingStations:     true,
		autoRefresh:         opts.AutoRefresh,
		autoRefreshInterval: interval,
	}
}

// Init loads the station directory and starts the clocks.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.orch.Stations(), m.spinner.Tick, clockTick()}
	if m.autoRefresh {
		cmds = append(cmds, autoRefreshTick(m.autoRefreshInterval, m.autoRefreshGen))
	}
	return tea.Batch(cmds...)
}

// loading reports whether a fetch is in flight
func (m Model) loading() bool {
	return m.loadingStations || m.loadingDepartures
}

// filterQuery returns the active station filter
func (m Model) filterQuery() string {
	return strings.TrimSpace(m.filter.Value())
}

// applyFilter shows the stations matching the filter
func (m *Model) applyFilter() {
	q := m.filterQuery()
	if q == "" {
		m.state.ShowStations(m.allStations)
		return
	}
	matches := make([]models.Station, 0, len(m.allStations))
	for i := range m.allStations {
		if m.allStations[i].Matches(q) {
			matches = append(matches, m.allStations[i])
		}
	}
	m.state.ShowStations(matches)
}
