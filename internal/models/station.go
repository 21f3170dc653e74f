package models

import "strings"

// Station represents an MVG stop as returned by the station directory
type Station struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Place       string   `json:"place,omitempty"`
	TariffZones string   `json:"tariffZones"`
	Products    []string `json:"products,omitempty"`
	Latitude    float64  `json:"latitude,omitempty"`
	Longitude   float64  `json:"longitude,omitempty"`
}

// StationResponse represents the raw JSON entry of the station directory
type StationResponse struct {
	ID           string   `json:"id"`
	DivaID       int64    `json:"divaId"`
	Name         string   `json:"name"`
	Place        string   `json:"place"`
	Abbreviation string   `json:"abbreviation"`
	TariffZones  string   `json:"tariffZones"`
	Products     []string `json:"products"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
}

// ToStation converts the raw response to a Station
func (r *StationResponse) ToStation() *Station {
	products := make([]string, 0, len(r.Products))
	for _, p := range r.Products {
		p = strings.TrimSpace(p)
		if p != "" {
			products = append(products, p)
		}
	}

	return &Station{
		ID:          r.ID,
		Name:        strings.TrimSpace(r.Name),
		Place:       strings.TrimSpace(r.Place),
		TariffZones: r.TariffZones,
		Products:    products,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

// Matches reports whether the station name or place contains query (case-insensitive).
// An empty query matches every station.
func (s *Station) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), query) ||
		strings.Contains(strings.ToLower(s.Place), query)
}

// IndexOfStation returns the position of the station with the given ID, or -1
func IndexOfStation(stations []Station, id string) int {
	for i := range stations {
		if stations[i].ID == id {
			return i
		}
	}
	return -1
}
