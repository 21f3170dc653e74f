package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mobil-koeln/abfahrt/internal/display"
)

var (
	colorCyan   = lipgloss.Color("14") // Light cyan - tariff zones, destinations
	colorYellow = lipgloss.Color("3")  // Yellow - loading, due now
	colorRed    = lipgloss.Color("1")  // Red - cancelled
	colorWhite  = lipgloss.Color("15")
	colorGray   = lipgloss.Color("8")
	colorBlack  = lipgloss.Color("0")
)

// Text styles
var (
	styleHeader    = lipgloss.NewStyle().Foreground(colorGray)
	styleStation   = lipgloss.NewStyle().Foreground(colorWhite)
	styleZone      = lipgloss.NewStyle().Foreground(colorCyan)
	styleDest      = lipgloss.NewStyle().Foreground(colorCyan)
	styleETA       = lipgloss.NewStyle().Foreground(colorWhite)
	styleDue       = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleCanceled  = lipgloss.NewStyle().Foreground(colorRed).Bold(true).Strikethrough(true)
	styleMuted     = lipgloss.NewStyle().Foreground(colorGray)
	styleLoading   = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)
	styleLogo      = lipgloss.NewStyle().Foreground(colorBlack).Background(lipgloss.Color("#1d2b53")).Bold(true)
	styleStatusBar = lipgloss.NewStyle().Foreground(colorGray)
)

// Tabs
var (
	styleTabActive   = lipgloss.NewStyle().Foreground(colorBlack).Background(colorCyan).Bold(true).Padding(0, 1)
	styleTabInactive = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
)

// Highlighted station row
var styleSelected = lipgloss.NewStyle().Background(lipgloss.Color("#262335")).Bold(true)

// Transport mode chips
var (
	styleChipOn  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleChipOff = lipgloss.NewStyle().Foreground(colorGray)
)

// roleStyles gives every display role its terminal treatment
var roleStyles = map[display.Role]lipgloss.Style{
	display.RoleUBahn:        lipgloss.NewStyle().Background(lipgloss.Color("#1d2b53")).Foreground(colorWhite),
	display.RoleBus:          lipgloss.NewStyle().Background(lipgloss.Color("#115d6f")).Foreground(colorWhite),
	display.RoleTram:         lipgloss.NewStyle().Background(lipgloss.Color("#e71b1e")).Foreground(colorWhite),
	display.RoleSBahn:        lipgloss.NewStyle().Background(lipgloss.Color("#54fd54")).Foreground(colorBlack),
	display.RoleFallback:     lipgloss.NewStyle().Background(lipgloss.Color("11")).Foreground(colorBlack),
	display.RolePlatformEven: lipgloss.NewStyle().Background(colorWhite).Foreground(colorBlack),
	display.RolePlatformOdd:  lipgloss.NewStyle().Background(lipgloss.Color("7")).Foreground(colorBlack),
}

func roleStyle(r display.Role) lipgloss.Style {
	if s, ok := roleStyles[r]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

func renderBadge(b display.Badge) string {
	return roleStyle(b.Role).Render(b.Text())
}

func renderCell(c display.Cell) string {
	return roleStyle(c.Role).Render(c.Text)
}

// renderETA colors the minutes until departure
func renderETA(row display.DepartureRow) string {
	switch {
	case row.Cancelled:
		return styleCanceled.Render(row.ETA)
	case row.Minutes <= 0:
		return styleDue.Render(row.ETA)
	default:
		return styleETA.Render(row.ETA)
	}
}
