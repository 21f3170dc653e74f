package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/abfahrt/internal/nav"
	"github.com/mobil-koeln/abfahrt/internal/refresh"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refresh.StationsMsg:
		return m.handleStations(msg)

	case refresh.DeparturesMsg:
		return m.handleDepartures(msg)

	case clockTickMsg:
		m.state.MarkRedraw()
		return m, clockTick()

	case autoRefreshTickMsg:
		return m.handleAutoRefreshTick(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.loading() {
			m.state.MarkRedraw()
		}
		return m, cmd

	case tea.KeyMsg:
		m.state.MarkRedraw()
		return m.handleKey(msg)
	}

	// Cursor blink and friends belong to the filter input
	if m.filter.Focused() {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.state.MarkRedraw()
		return m, cmd
	}

	return m, nil
}

func (m Model) handleStations(msg refresh.StationsMsg) (tea.Model, tea.Cmd) {
	if !m.orch.ApplyStations(m.state, msg) {
		return m, nil
	}
	m.loadingStations = false
	if msg.Err == nil {
		m.allStations = msg.Stations
		if m.filterQuery() != "" {
			m.applyFilter()
		}
	}
	return m, nil
}

func (m Model) handleDepartures(msg refresh.DeparturesMsg) (tea.Model, tea.Cmd) {
	if m.orch.Latest(msg) {
		m.loadingDepartures = false
		m.state.MarkRedraw()
	}
	if !m.orch.ApplyDepartures(m.state, msg) {
		return m, nil
	}
	m.lastUpdate = time.Now()
	return m, nil
}

func (m Model) handleAutoRefreshTick(msg autoRefreshTickMsg) (tea.Model, tea.Cmd) {
	if !m.autoRefresh || msg.gen != m.autoRefreshGen {
		return m, nil
	}
	next := autoRefreshTick(m.autoRefreshInterval, m.autoRefreshGen)
	if m.loadingDepartures {
		return m, next
	}
	cmd := m.orch.Refresh(m.state)
	if cmd == nil {
		return m, next
	}
	m.loadingDepartures = true
	return m, tea.Batch(cmd, next)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.state.RequestQuit()
		return m, tea.Quit
	}

	if m.filter.Focused() {
		return m.handleFilterKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state.RequestQuit()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		m.state.ToggleTab()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.selectStation()

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()

	case key.Matches(msg, m.keys.Auto):
		return m.toggleAutoRefresh()

	case key.Matches(msg, m.keys.Modes):
		m.toggleMode(msg.String())
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.state.Tab() == nav.TabStation {
		return m.handleStationKeys(msg)
	}
	return m, nil
}

// handleStationKeys handles list navigation on the Stations tab.
func (m Model) handleStationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.state.MoveNext()
	case key.Matches(msg, m.keys.Up):
		m.state.MovePrevious()
	case key.Matches(msg, m.keys.Top):
		m.state.MoveFirst()
	case key.Matches(msg, m.keys.Bottom):
		m.state.MoveLast()
	case key.Matches(msg, m.keys.Filter):
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.clearFilter()
	}
	return m, nil
}

// handleFilterKeys handles key events while the station filter is focused.
func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearFilter()
		return m, nil

	case "enter":
		m.filter.Blur()
		return m, nil

	case "tab":
		m.filter.Blur()
		m.state.ToggleTab()
		return m, nil

	case "up":
		m.state.MovePrevious()
		return m, nil

	case "down":
		m.state.MoveNext()
		return m, nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

// toggleMode flips the chip bound to a digit key; other keys are ignored
func (m *Model) toggleMode(k string) {
	if len(k) != 1 {
		return
	}
	i := int(k[0]) - '1'
	if i < 0 || i >= len(m.modeFilters) {
		return
	}
	m.modeFilters[i] = !m.modeFilters[i]
}

func (m *Model) clearFilter() {
	m.filter.Blur()
	if m.filter.Value() == "" {
		return
	}
	m.filter.SetValue("")
	m.applyFilter()
}

// selectStation selects the highlighted station and fetches its departures.
func (m Model) selectStation() (tea.Model, tea.Cmd) {
	cmd := m.orch.Select(m.state)
	if cmd == nil {
		return m, nil
	}
	m.loadingDepartures = true
	return m, cmd
}

// refresh reloads what the focused tab shows.
func (m Model) refresh() (tea.Model, tea.Cmd) {
	if m.state.Tab() == nav.TabStation {
		m.loadingStations = true
		m.state.SetStatus(nav.StatusLoadingStations)
		return m, m.orch.Stations()
	}
	cmd := m.orch.Refresh(m.state)
	if cmd == nil {
		return m, nil
	}
	m.loadingDepartures = true
	return m, cmd
}

func (m Model) toggleAutoRefresh() (tea.Model, tea.Cmd) {
	m.autoRefresh = !m.autoRefresh
	m.autoRefreshGen++
	if !m.autoRefresh {
		return m, nil
	}
	return m, autoRefreshTick(m.autoRefreshInterval, m.autoRefreshGen)
}
