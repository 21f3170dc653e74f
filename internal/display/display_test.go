package display

import (
	"testing"
	"time"

	"github.com/mobil-koeln/abfahrt/internal/models"
	"github.com/mobil-koeln/abfahrt/internal/testutil"
)

func TestProductBadge(t *testing.T) {
	tests := []struct {
		tag      string
		wantText string
		wantRole Role
	}{
		{"UBAHN", " U ", RoleUBahn},
		{"BUS", " BUS ", RoleBus},
		{"TRAM", " Tram ", RoleTram},
		{"SBAHN", " S ", RoleSBahn},
		{"FERRY", "FERRY", RoleFallback},
		{"REGIONAL_BUS", "REGIONAL_BUS", RoleFallback},
		{"ubahn", "ubahn", RoleFallback},
		{"", "", RoleFallback},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			b := ProductBadge(tt.tag)
			testutil.AssertEqual(t, b.Text(), tt.wantText)
			testutil.AssertEqual(t, b.Role, tt.wantRole)
		})
	}
}

func TestProductBadges_KeepsOrder(t *testing.T) {
	badges := ProductBadges([]string{"SBAHN", "BAHN", "UBAHN"})
	testutil.AssertLen(t, badges, 3)
	testutil.AssertEqual(t, badges[0].Role, RoleSBahn)
	testutil.AssertEqual(t, badges[1].Role, RoleFallback)
	testutil.AssertEqual(t, badges[1].Label, "BAHN")
	testutil.AssertEqual(t, badges[2].Role, RoleUBahn)
	testutil.AssertLen(t, ProductBadges(nil), 0)
}

func TestVehicleBadge(t *testing.T) {
	tests := []struct {
		label, tag string
		wantText   string
		wantRole   Role
	}{
		{"U3", "UBAHN", " U3 ", RoleUBahn},
		{"132", "BUS", " 132 ", RoleBus},
		{"19", "TRAM", " 19 ", RoleTram},
		{"S8", "SBAHN", " S8 ", RoleSBahn},
		{"RB40", "BAHN", "RB40", RoleFallback},
		{"X", "", "X", RoleFallback},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			b := VehicleBadge(tt.label, tt.tag)
			testutil.AssertEqual(t, b.Text(), tt.wantText)
			testutil.AssertEqual(t, b.Role, tt.wantRole)
		})
	}
}

func TestPlatformCell(t *testing.T) {
	c := PlatformCell(testutil.IntPtr(2), 0)
	testutil.AssertEqual(t, c.Text, " 2 ")
	testutil.AssertEqual(t, c.Role, RolePlatformEven)

	c = PlatformCell(testutil.IntPtr(11), 3)
	testutil.AssertEqual(t, c.Text, " 11 ")
	testutil.AssertEqual(t, c.Role, RolePlatformOdd)

	c = PlatformCell(nil, 1)
	testutil.AssertEqual(t, c.Text, " ")
	testutil.AssertEqual(t, c.Role, RolePlatformEmpty)
}

func TestDepartureRows_Striping(t *testing.T) {
	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	freezeClock(t, start)

	rows := DepartureRows(testutil.SampleDepartures(4, start.UnixMilli()))
	testutil.AssertLen(t, rows, 4)

	testutil.AssertEqual(t, rows[0].Platform.Role, rows[2].Platform.Role)
	testutil.AssertEqual(t, rows[1].Platform.Role, rows[3].Platform.Role)
	testutil.AssertEqual(t, rows[0].Platform.Role, RolePlatformEven)
	testutil.AssertEqual(t, rows[1].Platform.Role, RolePlatformOdd)
}

func TestDepartureRows_Content(t *testing.T) {
	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	freezeClock(t, start)

	deps := []models.DepartureInfo{
		{Label: "U6", TransportType: "UBAHN", Destination: "Garching", Platform: testutil.IntPtr(1), RealtimeDepartureTime: start.Add(5 * time.Minute).UnixMilli()},
		{Label: "N40", TransportType: "NIGHT_BUS", Destination: "Pasing", RealtimeDepartureTime: start.Add(-30 * time.Second).UnixMilli(), Cancelled: true},
	}

	rows := DepartureRows(deps)
	testutil.AssertEqual(t, rows[0].Vehicle.Text(), " U6 ")
	testutil.AssertEqual(t, rows[0].Destination, "Garching")
	testutil.AssertEqual(t, rows[0].ETA, "5 min")
	testutil.AssertEqual(t, rows[0].Minutes, int64(5))

	testutil.AssertEqual(t, rows[1].Vehicle.Role, RoleFallback)
	testutil.AssertEqual(t, rows[1].Platform.Role, RolePlatformEmpty)
	testutil.AssertEqual(t, rows[1].ETA, "-1 min")
	testutil.AssertTrue(t, rows[1].Cancelled)
}

func TestStationRow(t *testing.T) {
	item := StationRow(testutil.SampleStations()[1])
	testutil.AssertEqual(t, item.Name, "Hauptbahnhof")
	testutil.AssertEqual(t, item.TariffZones, "m")
	testutil.AssertLen(t, item.Badges, 4)
	testutil.AssertEqual(t, item.Badges[1].Role, RoleTram)
}

func TestRole_String(t *testing.T) {
	testutil.AssertEqual(t, RoleUBahn.String(), "ubahn")
	testutil.AssertEqual(t, RolePlatformOdd.String(), "platform-odd")
	testutil.AssertEqual(t, Role(99).String(), "role(99)")
}
