// Package nav holds the dashboard's navigation state: the station cursor,
// the focused tab and the selected station with its departures.
//
// A State has a single owner (the UI update loop) and is not safe for
// concurrent use.
package nav

import "github.com/mobil-koeln/abfahrt/internal/models"

// Tab identifies the panel that receives navigation input
type Tab int

// Tabs of the dashboard
const (
	// TabHome shows the departure board of the selected station
	TabHome Tab = iota
	// TabStation shows the station list
	TabStation
)

func (t Tab) String() string {
	switch t {
	case TabHome:
		return "Home"
	case TabStation:
		return "Stations"
	}
	return "unknown"
}

const (
	noCursor = -1

	StatusLoadingStations    = "Loading stations..."
	StatusFetchingDepartures = "Fetching departures"
)

// State is the navigation state of the dashboard
type State struct {
	tab      Tab
	cursor   int
	stations []models.Station

	selected   *models.Station
	departures []models.DepartureInfo

	quit   bool
	redraw bool
	status string
}

// New creates the startup state: no stations, no cursor, Home focused
func New() *State {
	return &State{
		tab:    TabHome,
		cursor: noCursor,
		redraw: true,
		status: StatusLoadingStations,
	}
}

// Tab returns the focused tab
func (s *State) Tab() Tab { return s.tab }

// Cursor returns the highlighted station index; ok is false when there is no selection
func (s *State) Cursor() (int, bool) {
	if s.cursor == noCursor {
		return 0, false
	}
	return s.cursor, true
}

// Stations returns the current station list
func (s *State) Stations() []models.Station { return s.stations }

// Selected returns the selected station, or nil
func (s *State) Selected() *models.Station { return s.selected }

// Departures returns the departures of the selected station
func (s *State) Departures() []models.DepartureInfo { return s.departures }

// QuitRequested reports whether the user asked to quit
func (s *State) QuitRequested() bool { return s.quit }

// NeedsRedraw reports whether the visible frame is out of date
func (s *State) NeedsRedraw() bool { return s.redraw }

// MarkRedraw flags the frame as out of date
func (s *State) MarkRedraw() { s.redraw = true }

// ClearRedraw is called by the renderer after painting a frame
func (s *State) ClearRedraw() { s.redraw = false }

// Status returns the status line text
func (s *State) Status() string { return s.status }

// SetStatus replaces the status line text
func (s *State) SetStatus(status string) {
	if s.status != status {
		s.status = status
		s.redraw = true
	}
}

// MoveNext advances the cursor, wrapping from the last station to the first
func (s *State) MoveNext() {
	n := len(s.stations)
	if n == 0 {
		return
	}
	if s.cursor == noCursor {
		s.cursor = 0
	} else {
		s.cursor = (s.cursor + 1) % n
	}
	s.redraw = true
}

// MovePrevious moves the cursor back, wrapping from the first station to the last
func (s *State) MovePrevious() {
	n := len(s.stations)
	if n == 0 {
		return
	}
	switch s.cursor {
	case noCursor:
		s.cursor = 0
	case 0:
		s.cursor = n - 1
	default:
		s.cursor--
	}
	s.redraw = true
}

// MoveFirst jumps to the first station
func (s *State) MoveFirst() {
	if len(s.stations) == 0 {
		return
	}
	s.cursor = 0
	s.redraw = true
}

// MoveLast jumps to the last station
func (s *State) MoveLast() {
	if len(s.stations) == 0 {
		return
	}
	s.cursor = len(s.stations) - 1
	s.redraw = true
}

// ToggleTab switches focus between Home and Station
func (s *State) ToggleTab() {
	if s.tab == TabHome {
		s.tab = TabStation
	} else {
		s.tab = TabHome
	}
	s.redraw = true
}

// RequestQuit marks the state for shutdown
func (s *State) RequestQuit() {
	s.quit = true
}

// SelectCurrent selects the highlighted station and returns it. Focus always
// returns to Home. Without a cursor nothing changes and ok is false.
// Switching to another station drops the previous station's departures.
// The caller is responsible for fetching the departures.
func (s *State) SelectCurrent() (station models.Station, ok bool) {
	if s.cursor == noCursor {
		return models.Station{}, false
	}
	station = s.stations[s.cursor]
	if s.selected == nil || s.selected.ID != station.ID {
		s.departures = nil
	}
	s.selected = &station
	s.status = StatusFetchingDepartures
	s.tab = TabHome
	s.redraw = true
	return station, true
}

// SetDepartures replaces the departure list wholesale
func (s *State) SetDepartures(deps []models.DepartureInfo) {
	s.departures = deps
	s.redraw = true
}

// ReplaceStations installs a new station list. The cursor follows the
// highlighted station when it is still present, otherwise it resets to the
// first entry (or none for an empty list). A selected station that is no
// longer listed is dropped together with its departures.
func (s *State) ReplaceStations(stations []models.Station) {
	s.ShowStations(stations)
	if s.selected != nil && models.IndexOfStation(stations, s.selected.ID) < 0 {
		s.selected = nil
		s.departures = nil
	}
}

// ShowStations installs a new visible station list, typically a filtered view,
// without touching the selection. Cursor policy matches ReplaceStations.
func (s *State) ShowStations(stations []models.Station) {
	prev := ""
	if s.cursor != noCursor && s.cursor < len(s.stations) {
		prev = s.stations[s.cursor].ID
	}

	s.stations = stations
	s.redraw = true

	if len(stations) == 0 {
		s.cursor = noCursor
		return
	}
	if idx := models.IndexOfStation(stations, prev); prev != "" && idx >= 0 {
		s.cursor = idx
		return
	}
	s.cursor = 0
}
