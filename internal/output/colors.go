package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mobil-koeln/abfahrt/internal/display"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

type sprintf func(format string, a ...interface{}) string

// Colors holds the color functions for the plain output
type Colors struct {
	Header   sprintf
	Station  sprintf
	Zone     sprintf
	Dest     sprintf
	ETA      sprintf
	Due      sprintf
	Canceled sprintf
	Muted    sprintf

	roles map[display.Role]sprintf
	plain sprintf
}

func noColor(format string, a ...interface{}) string {
	if len(a) == 0 {
		return format
	}
	return color.New().Sprintf(format, a...)
}

// colorEnabled resolves mode against the terminal attached to stdout
func colorEnabled(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		color.NoColor = false
		return true
	case ColorNever:
		return false
	default:
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	if !colorEnabled(mode) {
		return &Colors{
			Header:   noColor,
			Station:  noColor,
			Zone:     noColor,
			Dest:     noColor,
			ETA:      noColor,
			Due:      noColor,
			Canceled: noColor,
			Muted:    noColor,
			roles:    map[display.Role]sprintf{},
			plain:    noColor,
		}
	}

	return &Colors{
		Header:   color.New(color.FgHiBlack).SprintfFunc(),
		Station:  color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Zone:     color.New(color.FgHiCyan).SprintfFunc(),
		Dest:     color.New(color.FgHiCyan).SprintfFunc(),
		ETA:      color.New(color.FgWhite).SprintfFunc(),
		Due:      color.New(color.FgYellow, color.Bold).SprintfFunc(),
		Canceled: color.New(color.FgRed, color.Bold).SprintfFunc(),
		Muted:    color.New(color.FgHiBlack).SprintfFunc(),
		roles: map[display.Role]sprintf{
			display.RoleUBahn:        color.New(color.BgBlue, color.FgHiWhite).SprintfFunc(),
			display.RoleBus:          color.New(color.BgCyan, color.FgHiWhite).SprintfFunc(),
			display.RoleTram:         color.New(color.BgRed, color.FgHiWhite).SprintfFunc(),
			display.RoleSBahn:        color.New(color.BgHiGreen, color.FgBlack).SprintfFunc(),
			display.RoleFallback:     color.New(color.BgHiYellow, color.FgBlack).SprintfFunc(),
			display.RolePlatformEven: color.New(color.BgHiWhite, color.FgBlack).SprintfFunc(),
			display.RolePlatformOdd:  color.New(color.BgWhite, color.FgBlack).SprintfFunc(),
		},
		plain: noColor,
	}
}

// Role returns the color function for a display role. Roles without a
// treatment print unstyled.
func (c *Colors) Role(r display.Role) sprintf {
	if fn, ok := c.roles[r]; ok {
		return fn
	}
	return c.plain
}

// Badge paints a transport badge
func (c *Colors) Badge(b display.Badge) string {
	return c.Role(b.Role)("%s", b.Text())
}

// Cell paints a table cell
func (c *Colors) Cell(cell display.Cell) string {
	return c.Role(cell.Role)("%s", cell.Text)
}

// FormatETA colors the minutes until departure. Departures due within a
// minute stand out.
func (c *Colors) FormatETA(row display.DepartureRow) string {
	if row.Cancelled {
		return c.Canceled("%s", "cancelled")
	}
	if row.Minutes <= 0 {
		return c.Due("%s", row.ETA)
	}
	return c.ETA("%s", row.ETA)
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}
