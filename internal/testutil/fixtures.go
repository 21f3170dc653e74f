package testutil

import "github.com/mobil-koeln/abfahrt/internal/models"

// Sample JSON responses for API testing

// SampleStationsResponse is a trimmed copy of the MVG station directory
const SampleStationsResponse = `[
	{
		"name": "Marienplatz",
		"place": "München",
		"id": "de:09162:2",
		"divaId": 2,
		"abbreviation": "MP",
		"tariffZones": "m",
		"products": ["UBAHN", "BUS", "SBAHN"],
		"latitude": 48.13725,
		"longitude": 11.57542
	},
	{
		"name": "Hauptbahnhof",
		"place": "München",
		"id": "de:09162:6",
		"divaId": 6,
		"abbreviation": "HBF",
		"tariffZones": "m",
		"products": ["UBAHN", "TRAM", "BUS", "SBAHN", "BAHN"],
		"latitude": 48.14002,
		"longitude": 11.56079
	},
	{
		"name": "Freising",
		"place": "Freising",
		"id": "de:09178:2680",
		"divaId": 2680,
		"abbreviation": "",
		"tariffZones": "4|5",
		"products": ["SBAHN", "BUS", "REGIONAL_BUS"],
		"latitude": 48.39530,
		"longitude": 11.74563
	}
]`

// SampleDeparturesResponse is a minimal valid MVG departure board
const SampleDeparturesResponse = `[
	{
		"plannedDepartureTime": 1718000400000,
		"realtime": true,
		"delayInMinutes": 1,
		"realtimeDepartureTime": 1718000460000,
		"transportType": "UBAHN",
		"label": "U3",
		"divaId": "010U3",
		"network": "swm",
		"trainType": "",
		"destination": "Fürstenried West",
		"cancelled": false,
		"sev": false,
		"platform": 2,
		"platformChanged": false,
		"stopPointGlobalId": "de:09162:2:21:21"
	},
	{
		"plannedDepartureTime": 1718000520000,
		"realtime": false,
		"delayInMinutes": 0,
		"realtimeDepartureTime": 0,
		"transportType": "BUS",
		"label": "132",
		"divaId": "03132",
		"network": "swm",
		"trainType": "",
		"destination": "Forstenrieder Allee",
		"cancelled": false,
		"sev": false,
		"stopPointGlobalId": "de:09162:2:5:5"
	},
	{
		"plannedDepartureTime": 1718000580000,
		"realtime": true,
		"delayInMinutes": 0,
		"realtimeDepartureTime": 1718000580000,
		"transportType": "SBAHN",
		"label": "S8",
		"divaId": "92M08",
		"network": "ddb",
		"trainType": "",
		"destination": "Flughafen München",
		"cancelled": true,
		"sev": false,
		"platform": 1,
		"platformChanged": false,
		"stopPointGlobalId": "de:09162:2:1:1"
	}
]`

// SampleStations returns a small station list in domain form
func SampleStations() []models.Station {
	return []models.Station{
		{ID: "de:09162:2", Name: "Marienplatz", Place: "München", TariffZones: "m", Products: []string{"UBAHN", "BUS", "SBAHN"}},
		{ID: "de:09162:6", Name: "Hauptbahnhof", Place: "München", TariffZones: "m", Products: []string{"UBAHN", "TRAM", "BUS", "SBAHN"}},
		{ID: "de:09162:70", Name: "Sendlinger Tor", Place: "München", TariffZones: "m", Products: []string{"UBAHN", "TRAM"}},
	}
}

// SampleDepartures returns n departures a minute apart starting at startMs
func SampleDepartures(n int, startMs int64) []models.DepartureInfo {
	types := []string{"UBAHN", "BUS", "TRAM", "SBAHN"}
	deps := make([]models.DepartureInfo, 0, n)
	for i := 0; i < n; i++ {
		deps = append(deps, models.DepartureInfo{
			Label:                 types[i%len(types)][:1] + string(rune('1'+i%9)),
			TransportType:         types[i%len(types)],
			Destination:           "Ziel " + string(rune('A'+i%26)),
			Platform:              IntPtr(i%3 + 1),
			RealtimeDepartureTime: startMs + int64(i)*60_000,
		})
	}
	return deps
}
