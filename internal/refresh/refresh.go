// Package refresh connects station selection with the data provider.
//
// Fetches run inside tea.Cmd goroutines and never touch nav.State. Their
// results come back as messages and are applied on the update loop, where
// results for a station that is no longer selected, or from a request that
// has since been superseded, are dropped.
package refresh

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/abfahrt/internal/models"
	"github.com/mobil-koeln/abfahrt/internal/nav"
)

const defaultTimeout = 5 * time.Second

const (
	StatusNoStations    = "No stations"
	StatusStationsStale = "Station list refresh failed"
)

// Provider supplies stations and departures
type Provider interface {
	GetStations(ctx context.Context) ([]models.Station, error)
	GetDepartures(ctx context.Context, stationID string) ([]models.DepartureInfo, error)
}

// DeparturesMsg carries the result of a departure fetch.
// StationID and Seq identify the request it answers.
type DeparturesMsg struct {
	StationID  string
	Seq        uint64
	Departures []models.DepartureInfo
	Err        error
}

// StationsMsg carries the result of a station directory fetch
type StationsMsg struct {
	Seq      uint64
	Stations []models.Station
	Err      error
}

// Orchestrator issues fetches and applies their results to a nav.State.
// Like the state it serves, it belongs to the update loop.
type Orchestrator struct {
	provider Provider
	timeout  time.Duration
	logger   *log.Logger

	departureSeq uint64
	stationSeq   uint64
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithTimeout bounds each provider call
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets where fetch failures are reported
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an Orchestrator. Without WithLogger diagnostics are discarded.
func New(p Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider: p,
		timeout:  defaultTimeout,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Select selects the highlighted station and returns the command fetching its
// departures. It returns nil when there is no cursor.
func (o *Orchestrator) Select(s *nav.State) tea.Cmd {
	station, ok := s.SelectCurrent()
	if !ok {
		return nil
	}
	return o.Departures(station.ID)
}

// Refresh re-fetches the departures of the selected station, if any
func (o *Orchestrator) Refresh(s *nav.State) tea.Cmd {
	sel := s.Selected()
	if sel == nil {
		return nil
	}
	s.SetStatus(nav.StatusFetchingDepartures)
	return o.Departures(sel.ID)
}

// Departures returns a command fetching the departures of stationID. Every
// call supersedes the results of earlier ones.
func (o *Orchestrator) Departures(stationID string) tea.Cmd {
	o.departureSeq++
	seq := o.departureSeq
	p, timeout := o.provider, o.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		deps, err := p.GetDepartures(ctx, stationID)
		return DeparturesMsg{
			StationID:  stationID,
			Seq:        seq,
			Departures: deps,
			Err:        err,
		}
	}
}

// Stations returns a command fetching the station directory
func (o *Orchestrator) Stations() tea.Cmd {
	o.stationSeq++
	seq := o.stationSeq
	p, timeout := o.provider, o.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		stations, err := p.GetStations(ctx)
		return StationsMsg{Seq: seq, Stations: stations, Err: err}
	}
}

// Latest reports whether msg answers the most recent departure request. Once
// it arrives no departure fetch is outstanding, even if the result is dropped.
func (o *Orchestrator) Latest(msg DeparturesMsg) bool {
	return msg.Seq == o.departureSeq
}

// ApplyDepartures installs a departure result. It reports false when the
// result is stale and was dropped. A failed fetch empties the list.
func (o *Orchestrator) ApplyDepartures(s *nav.State, msg DeparturesMsg) bool {
	sel := s.Selected()
	if sel == nil || sel.ID != msg.StationID || msg.Seq != o.departureSeq {
		o.logger.Printf("refresh: dropping stale departures for %s (seq %d, latest %d)",
			msg.StationID, msg.Seq, o.departureSeq)
		return false
	}

	if msg.Err != nil {
		o.logger.Printf("refresh: departures for %s (%s) failed: %v", sel.Name, sel.ID, msg.Err)
		s.SetDepartures(nil)
		s.SetStatus(noDepartures(sel.Name))
		return true
	}

	s.SetDepartures(msg.Departures)
	if len(msg.Departures) == 0 {
		s.SetStatus(noDepartures(sel.Name))
	} else {
		s.SetStatus(sel.Name)
	}
	return true
}

// ApplyStations installs a station directory result. It reports false for a
// superseded result. A failed first load leaves an empty list; a failed reload
// keeps the stations already shown.
func (o *Orchestrator) ApplyStations(s *nav.State, msg StationsMsg) bool {
	if msg.Seq != o.stationSeq {
		return false
	}

	if msg.Err != nil {
		o.logger.Printf("refresh: station list failed: %v", msg.Err)
		if len(s.Stations()) == 0 {
			s.ReplaceStations(nil)
			s.SetStatus(StatusNoStations)
		} else {
			s.SetStatus(StatusStationsStale)
		}
		return true
	}

	s.ReplaceStations(msg.Stations)
	s.SetStatus(fmt.Sprintf("%d stations", len(msg.Stations)))
	return true
}

func noDepartures(name string) string {
	return "No departures for " + name
}
