package tui

import (
	"fmt"
	"strings"

	"github.com/mobil-koeln/abfahrt/internal/display"
	"github.com/mobil-koeln/abfahrt/internal/models"
)

// visibleDepartures applies the mode chips. Transport types without a chip
// are always shown.
func (m Model) visibleDepartures() []models.DepartureInfo {
	deps := m.state.Departures()
	hidden := make(map[models.Product]bool, len(modeChips))
	for i, p := range modeChips {
		if !m.modeFilters[i] {
			hidden[p] = true
		}
	}
	if len(hidden) == 0 {
		return deps
	}

	visible := make([]models.DepartureInfo, 0, len(deps))
	for _, d := range deps {
		if !hidden[d.Product()] {
			visible = append(visible, d)
		}
	}
	return visible
}

// chipLabel is the badge label of the i-th mode chip
func chipLabel(i int) string {
	return display.ProductBadge(string(modeChips[i])).Label
}

// renderChips renders the transport mode toggles.
func (m Model) renderChips() string {
	chips := make([]string, 0, len(modeChips))
	for i := range modeChips {
		label := fmt.Sprintf("%d:%s", i+1, chipLabel(i))
		if m.modeFilters[i] {
			chips = append(chips, styleChipOn.Render("["+label+"]"))
		} else {
			chips = append(chips, styleChipOff.Render(" "+label+" "))
		}
	}
	return strings.Join(chips, " ")
}
