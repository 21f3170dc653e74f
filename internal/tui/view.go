package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mobil-koeln/abfahrt/internal/display"
	"github.com/mobil-koeln/abfahrt/internal/nav"
)

const (
	colVehicle  = 8
	colPlatform = 10
	colETA      = 9
)

// View renders the entire TUI. The previous frame is reused until the state
// asks for a redraw or the terminal is resized.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.frame.view != "" && !m.state.NeedsRedraw() &&
		m.frame.width == m.width && m.frame.height == m.height {
		return m.frame.view
	}

	view := m.render()
	*m.frame = frame{view: view, width: m.width, height: m.height}
	m.state.ClearRedraw()
	return view
}

// render lays out header, tabs, body, status line and help.
func (m Model) render() string {
	header := m.renderHeader()
	tabs := m.renderTabs()
	status := m.renderStatusBar()
	helpView := m.help.View(m.keys)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(tabs) -
		lipgloss.Height(status) - lipgloss.Height(helpView) - 1
	if bodyHeight < 2 {
		bodyHeight = 2
	}

	var body string
	if m.state.Tab() == nav.TabStation {
		body = m.renderStationList(m.width, bodyHeight)
	} else {
		body = m.renderDepartureTable(m.width, bodyHeight)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, "", status, helpView)
}

// renderHeader renders the brand, the selected station and the clock.
func (m Model) renderHeader() string {
	left := styleLogo.Foreground(colorWhite).Render(" U ") + " " + styleStation.Bold(true).Render("abfahrt")
	if sel := m.state.Selected(); sel != nil {
		left += styleMuted.Render("  ·  ") + styleStation.Render(sel.Name)
	}
	clock := styleMuted.Render(time.Now().Format("15:04"))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + clock
}

// renderTabs renders the tab bar and, on Home, the mode chips.
func (m Model) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, t := range []nav.Tab{nav.TabHome, nav.TabStation} {
		if m.state.Tab() == t {
			tabs = append(tabs, styleTabActive.Render(t.String()))
		} else {
			tabs = append(tabs, styleTabInactive.Render(t.String()))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	if m.state.Tab() == nav.TabHome {
		bar += "   " + m.renderChips()
	} else if m.filter.Focused() || m.filterQuery() != "" {
		bar += "   " + m.filter.View()
	}
	return bar
}

// renderDepartureTable renders the departure board of the selected station.
func (m Model) renderDepartureTable(width, height int) string {
	if m.state.Selected() == nil {
		return styleMuted.Render(" Press tab, pick a station and hit enter")
	}

	destWidth := width - colVehicle - colPlatform - colETA - 4
	if destWidth < 10 {
		destWidth = 10
	}

	h := display.DepartureHeaders
	var b strings.Builder
	b.WriteString(styleHeader.Render(" " + pad(h[0], colVehicle) + pad(h[1], destWidth) + " " + pad(h[2], colPlatform) + h[3]))
	b.WriteString("\n\n")

	deps := m.visibleDepartures()
	if len(deps) == 0 {
		if m.loadingDepartures {
			b.WriteString(styleLoading.Render(" " + m.spinner.View() + " Loading departures..."))
		} else {
			b.WriteString(styleMuted.Render(" No departures"))
		}
		return b.String()
	}

	rows := display.DepartureRows(deps)
	maxVisible := height - 2
	if maxVisible < 1 {
		maxVisible = 1
	}
	if len(rows) > maxVisible {
		rows = rows[:maxVisible]
	}

	for i, row := range rows {
		dest := styleDest.Render(pad(row.Destination, destWidth))
		if row.Cancelled {
			dest = styleCanceled.Render(pad(row.Destination, destWidth))
		}
		b.WriteString(" ")
		b.WriteString(padStyled(renderBadge(row.Vehicle), colVehicle))
		b.WriteString(dest)
		b.WriteString(" ")
		b.WriteString(padStyled(renderCell(row.Platform), colPlatform))
		b.WriteString(renderETA(row))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderStationList renders the station list, two lines per station.
func (m Model) renderStationList(width, height int) string {
	stations := m.state.Stations()
	if len(stations) == 0 {
		if m.loadingStations {
			return styleLoading.Render(" " + m.spinner.View() + " Loading stations...")
		}
		if m.filterQuery() != "" {
			return styleMuted.Render(fmt.Sprintf(" No station matches %q", m.filterQuery()))
		}
		return styleMuted.Render(" No stations")
	}

	cursor, ok := m.state.Cursor()
	if !ok {
		cursor = 0
	}

	maxVisible := height / 2
	if maxVisible < 1 {
		maxVisible = 1
	}
	start, end := visibleRange(cursor, len(stations), maxVisible)

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		item := display.StationRow(stations[i])

		name := truncate(item.Name, width-len(item.TariffZones)-8)
		title := " " + styleStation.Render(name) + styleZone.Render(" ("+item.TariffZones+")")

		badges := make([]string, 0, len(item.Badges))
		for _, badge := range item.Badges {
			badges = append(badges, renderBadge(badge))
		}
		icons := " " + strings.Join(badges, " ")

		if ok && i == cursor {
			title = styleSelected.Width(width).Render(title)
			icons = styleSelected.Width(width).Render(icons)
		}
		lines = append(lines, title, icons)
	}

	return strings.Join(lines, "\n")
}

// renderStatusBar renders the status message, loading and refresh state.
func (m Model) renderStatusBar() string {
	parts := []string{m.state.Status()}
	if m.loading() {
		parts[0] = m.spinner.View() + " " + parts[0]
	}
	if !m.lastUpdate.IsZero() {
		parts = append(parts, "updated "+m.lastUpdate.Format("15:04:05"))
	}
	if m.autoRefresh {
		parts = append(parts, fmt.Sprintf("auto-refresh %s", m.autoRefreshInterval))
	}
	if q := m.filterQuery(); q != "" {
		parts = append(parts, fmt.Sprintf("%d/%d stations", len(m.state.Stations()), len(m.allStations)))
	}

	return styleStatusBar.Width(m.width).Render(" " + strings.Join(parts, "  │  "))
}

// visibleRange calculates the start and end indices for a scrollable list.
func visibleRange(cursor, total, maxVisible int) (int, int) {
	if total <= maxVisible {
		return 0, total
	}

	start := cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// truncate truncates a string to the given terminal width.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "~")
}

// pad truncates or right-pads plain text to width cells
func pad(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}

// padStyled right-pads already styled text to width cells
func padStyled(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
