package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	clockInterval              = 15 * time.Second
	defaultAutoRefreshInterval = 30 * time.Second
)

// clockTick returns a tea.Cmd that sends a tick after the clock interval.
func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// autoRefreshTick returns a tea.Cmd that sends a refresh tick after interval.
func autoRefreshTick(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoRefreshTickMsg{gen: gen}
	})
}
