// Package display turns stations and departures into toolkit-neutral fragments.
//
// Fragments carry a Role instead of colors. The TUI and the plain CLI output each
// map roles to their own palette.
package display

import (
	"fmt"

	"github.com/mobil-koeln/abfahrt/internal/models"
)

// Role is the semantic styling slot of a fragment
type Role int

const (
	RoleFallback Role = iota
	RoleUBahn
	RoleBus
	RoleTram
	RoleSBahn
	RolePlatformEven
	RolePlatformOdd
	RolePlatformEmpty
)

var roleNames = map[Role]string{
	RoleFallback:      "fallback",
	RoleUBahn:         "ubahn",
	RoleBus:           "bus",
	RoleTram:          "tram",
	RoleSBahn:         "sbahn",
	RolePlatformEven:  "platform-even",
	RolePlatformOdd:   "platform-odd",
	RolePlatformEmpty: "platform-empty",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Badge is a labeled transport chip
type Badge struct {
	Label string
	Role  Role
}

// Text returns the badge as it is painted. Known products get one space of
// padding on each side; the fallback shows the raw label.
func (b Badge) Text() string {
	if b.Role == RoleFallback {
		return b.Label
	}
	return " " + b.Label + " "
}

// Cell is a styled table cell
type Cell struct {
	Text string
	Role Role
}

// productRole maps a transport tag to its badge role and generic label.
// Unknown tags return RoleFallback with the tag itself as label.
func productRole(tag string) (Role, string) {
	switch models.Product(tag) {
	case models.ProductUBahn:
		return RoleUBahn, "U"
	case models.ProductBus:
		return RoleBus, "BUS"
	case models.ProductTram:
		return RoleTram, "Tram"
	case models.ProductSBahn:
		return RoleSBahn, "S"
	default:
		return RoleFallback, tag
	}
}

// ProductBadge returns the station badge for a product tag. Every tag yields a badge.
func ProductBadge(tag string) Badge {
	role, label := productRole(tag)
	return Badge{Label: label, Role: role}
}

// ProductBadges returns one badge per product, in order
func ProductBadges(tags []string) []Badge {
	badges := make([]Badge, 0, len(tags))
	for _, tag := range tags {
		badges = append(badges, ProductBadge(tag))
	}
	return badges
}

// VehicleBadge returns the departure badge: the product's treatment with the line label
func VehicleBadge(label, tag string) Badge {
	role, _ := productRole(tag)
	return Badge{Label: label, Role: role}
}

// PlatformCell renders a platform number striped by row parity (zero-based).
// A missing platform yields a blank cell.
func PlatformCell(platform *int, row int) Cell {
	if platform == nil {
		return Cell{Text: " ", Role: RolePlatformEmpty}
	}
	role := RolePlatformEven
	if row%2 != 0 {
		role = RolePlatformOdd
	}
	return Cell{Text: fmt.Sprintf(" %d ", *platform), Role: role}
}

// StationItem is one entry of the station list
type StationItem struct {
	Name        string
	TariffZones string
	Badges      []Badge
}

// StationRow builds the list entry for a station
func StationRow(s models.Station) StationItem {
	return StationItem{
		Name:        s.Name,
		TariffZones: s.TariffZones,
		Badges:      ProductBadges(s.Products),
	}
}

// DepartureRow is one line of the departure table
type DepartureRow struct {
	Vehicle     Badge
	Destination string
	Platform    Cell
	ETA         string
	Minutes     int64
	Cancelled   bool
}

// DepartureHeaders are the column titles of the departure table
var DepartureHeaders = [4]string{"Vehicle", "Direction", "Platform", "ETA"}

// DepartureRows builds table rows in the given order. Platform striping follows
// each departure's position in deps.
func DepartureRows(deps []models.DepartureInfo) []DepartureRow {
	rows := make([]DepartureRow, 0, len(deps))
	for i, d := range deps {
		minutes := MinutesFromNow(d.RealtimeDepartureTime)
		rows = append(rows, DepartureRow{
			Vehicle:     VehicleBadge(d.Label, d.TransportType),
			Destination: d.Destination,
			Platform:    PlatformCell(d.Platform, i),
			ETA:         fmt.Sprintf("%d min", minutes),
			Minutes:     minutes,
			Cancelled:   d.Cancelled,
		})
	}
	return rows
}
