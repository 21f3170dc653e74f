package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/abfahrt/internal/models"
	"github.com/mobil-koeln/abfahrt/internal/nav"
	"github.com/mobil-koeln/abfahrt/internal/refresh"
	"github.com/mobil-koeln/abfahrt/internal/testutil"
)

// fakeProvider serves fixed stations and per-station departures
type fakeProvider struct {
	mu         sync.Mutex
	stations   []models.Station
	departures map[string][]models.DepartureInfo
	failures   map[string]error
}

func (f *fakeProvider) GetStations(ctx context.Context) ([]models.Station, error) {
	return f.stations, nil
}

func (f *fakeProvider) GetDepartures(ctx context.Context, id string) ([]models.DepartureInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failures[id]; err != nil {
		return nil, err
	}
	return f.departures[id], nil
}

var errUnavailable = errors.New("connection refused")

func newProvider() *fakeProvider {
	stations := testutil.SampleStations()
	start := time.Now().Add(90 * time.Second).UnixMilli()
	return &fakeProvider{
		stations: stations,
		departures: map[string][]models.DepartureInfo{
			stations[0].ID: testutil.SampleDepartures(4, start),
			stations[1].ID: testutil.SampleDepartures(2, start),
		},
		failures: map[string]error{},
	}
}

func newTestModel(t *testing.T) (Model, *fakeProvider) {
	t.Helper()
	p := newProvider()
	m := New(p, Options{})
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, p
}

// loaded returns a model with the station directory applied
func loaded(t *testing.T) (Model, *fakeProvider) {
	t.Helper()
	m, p := newTestModel(t)
	m, _ = send(m, m.orch.Stations()())
	return m, p
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = send(m, k)
	}
	return m, cmd
}

// selectAndFetch presses enter and feeds the resulting fetch back in
func selectAndFetch(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	m, _ = send(m, cmd())
	return m
}

func TestNew(t *testing.T) {
	m := New(newProvider(), Options{})

	testutil.AssertEqual(t, m.state.Tab(), nav.TabHome)
	testutil.AssertTrue(t, m.loadingStations)
	testutil.AssertFalse(t, m.autoRefresh)
	testutil.AssertEqual(t, m.autoRefreshInterval, defaultAutoRefreshInterval)
	testutil.AssertLen(t, m.modeFilters, len(modeChips))
	for i, on := range m.modeFilters {
		if !on {
			t.Errorf("mode chip %d should be enabled by default", i)
		}
	}
}

func TestNew_Options(t *testing.T) {
	m := New(newProvider(), Options{AutoRefresh: true, AutoRefreshInterval: time.Minute})
	testutil.AssertTrue(t, m.autoRefresh)
	testutil.AssertEqual(t, m.autoRefreshInterval, time.Minute)
}

func TestModel_Init(t *testing.T) {
	m := New(newProvider(), Options{})
	testutil.AssertTrue(t, m.Init() != nil)
}

func TestModel_StationsLoaded(t *testing.T) {
	m, _ := loaded(t)

	testutil.AssertFalse(t, m.loadingStations)
	testutil.AssertLen(t, m.state.Stations(), 3)
	testutil.AssertLen(t, m.allStations, 3)
	testutil.AssertEqual(t, m.state.Status(), "3 stations")
	idx, ok := m.state.Cursor()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, idx, 0)
}

func TestModel_VisibleDepartures(t *testing.T) {
	m, _ := loaded(t)
	m = selectAndFetch(t, m)
	// UBAHN, BUS, TRAM, SBAHN
	testutil.AssertLen(t, m.visibleDepartures(), 4)

	m, _ = press(m, runes("1"))
	testutil.AssertFalse(t, m.modeFilters[0])
	for _, d := range m.visibleDepartures() {
		if d.TransportType == "UBAHN" {
			t.Error("U-Bahn departures should be hidden")
		}
	}
	testutil.AssertLen(t, m.visibleDepartures(), 3)
	// The state keeps the full board
	testutil.AssertLen(t, m.state.Departures(), 4)

	m, _ = press(m, runes("1"))
	testutil.AssertLen(t, m.visibleDepartures(), 4)
}

func TestModel_ToggleModeIgnoresUnboundKeys(t *testing.T) {
	m, _ := loaded(t)
	for _, k := range []string{"0", "5", "9", "", "12"} {
		m.toggleMode(k)
	}
	for i, on := range m.modeFilters {
		if !on {
			t.Errorf("chip %d switched off by an unbound key", i+1)
		}
	}

	m.toggleMode("4")
	testutil.AssertFalse(t, m.modeFilters[3])
}

func TestModel_VisibleDepartures_UnknownTypeAlwaysShown(t *testing.T) {
	m, _ := loaded(t)
	m = selectAndFetch(t, m)
	m.state.SetDepartures([]models.DepartureInfo{{Label: "X1", TransportType: "FERRY"}})

	m, _ = press(m, runes("1"), runes("2"), runes("3"), runes("4"))
	testutil.AssertLen(t, m.visibleDepartures(), 1)
}

func TestChipLabel(t *testing.T) {
	want := []string{"U", "S", "Tram", "BUS"}
	for i, w := range want {
		testutil.AssertEqual(t, chipLabel(i), w)
	}
}

func TestModel_ApplyFilter(t *testing.T) {
	m, _ := loaded(t)

	m.filter.SetValue("bahnhof")
	m.applyFilter()
	testutil.AssertLen(t, m.state.Stations(), 1)
	testutil.AssertEqual(t, m.state.Stations()[0].Name, "Hauptbahnhof")

	m.filter.SetValue("")
	m.applyFilter()
	testutil.AssertLen(t, m.state.Stations(), 3)
}

func TestModel_StationReloadKeepsFilter(t *testing.T) {
	m, _ := loaded(t)
	m.filter.SetValue("tor")
	m.applyFilter()

	m, _ = send(m, m.orch.Stations()())

	testutil.AssertLen(t, m.state.Stations(), 1)
	testutil.AssertLen(t, m.allStations, 3)
}

func TestModel_StaleStationsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	old := m.orch.Stations()().(refresh.StationsMsg)
	latest := m.orch.Stations()()

	old.Stations = nil
	m, _ = send(m, old)
	testutil.AssertTrue(t, m.loadingStations)

	m, _ = send(m, latest)
	testutil.AssertFalse(t, m.loadingStations)
	testutil.AssertLen(t, m.state.Stations(), 3)
}

func TestModel_DepartureFailureIsSoft(t *testing.T) {
	m, p := loaded(t)
	p.failures[p.stations[0].ID] = errUnavailable

	m = selectAndFetch(t, m)

	testutil.AssertFalse(t, m.loadingDepartures)
	testutil.AssertLen(t, m.state.Departures(), 0)
	testutil.AssertEqual(t, m.state.Status(), "No departures for Marienplatz")
	testutil.AssertFalse(t, m.state.QuitRequested())
}
