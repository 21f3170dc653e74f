package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mobil-koeln/abfahrt/internal/display"
	"github.com/mobil-koeln/abfahrt/internal/models"
	"github.com/mobil-koeln/abfahrt/internal/operators"
)

const (
	vehicleWidth  = 8
	destWidth     = 32
	platformWidth = 8
)

// TableOptions configures the table output
type TableOptions struct {
	Colors *Colors
	// Header prints the column titles above the departure rows
	Header bool
	// ShowOperator appends the operator of each departure
	ShowOperator bool
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// fit pads or truncates s to exactly width terminal cells
func fit(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// RenderDepartures renders departures as a table in the given order
func RenderDepartures(w io.Writer, departures []models.DepartureInfo, opts TableOptions) {
	if len(departures) == 0 {
		_, _ = fmt.Fprintln(w, "No departures found.")
		return
	}

	c := opts.colors()

	if opts.Header {
		h := display.DepartureHeaders
		_, _ = fmt.Fprintln(w, c.Header("%s %s %s %s",
			fit(h[0], vehicleWidth), fit(h[1], destWidth), fit(h[2], platformWidth), h[3]))
	}

	for i, row := range display.DepartureRows(departures) {
		// Badges are padded after painting so the background only covers the label
		vehicle := c.Badge(row.Vehicle) + strings.Repeat(" ", max(0, vehicleWidth-runewidth.StringWidth(row.Vehicle.Text())))
		platform := c.Cell(row.Platform) + strings.Repeat(" ", max(0, platformWidth-runewidth.StringWidth(row.Platform.Text)))

		line := fmt.Sprintf("%s %s %s %s",
			vehicle,
			c.Dest("%s", fit(row.Destination, destWidth)),
			platform,
			c.FormatETA(row),
		)
		if opts.ShowOperator {
			if abbr := operators.GetOperatorAbbr(departures[i].Network); abbr != "" {
				line += "  " + c.Muted("%s", abbr)
			}
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

// RenderStations renders stations with their tariff zone and product badges
func RenderStations(w io.Writer, stations []models.Station, opts TableOptions) {
	if len(stations) == 0 {
		_, _ = fmt.Fprintln(w, "No stations found.")
		return
	}

	c := opts.colors()

	for _, s := range stations {
		item := display.StationRow(s)

		badges := make([]string, 0, len(item.Badges))
		for _, b := range item.Badges {
			badges = append(badges, c.Badge(b))
		}

		_, _ = fmt.Fprintf(w, "  %s %s\n", c.Station("%s", item.Name), c.Zone("(%s)", item.TariffZones))
		if len(badges) > 0 {
			_, _ = fmt.Fprintf(w, "    %s\n", strings.Join(badges, " "))
		}
		_, _ = fmt.Fprintf(w, "    %s abfahrt departures %s\n", c.Muted("Use:"), s.ID)
	}
}

// FilterByLine keeps the departures whose label equals line, ignoring case.
// An empty line keeps everything.
func FilterByLine(deps []models.DepartureInfo, line string) []models.DepartureInfo {
	if line == "" {
		return deps
	}
	filtered := make([]models.DepartureInfo, 0, len(deps))
	for _, d := range deps {
		if strings.EqualFold(d.Label, line) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
