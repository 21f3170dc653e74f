package api

const (
	// BaseURL is the base URL for the MVG API
	BaseURL = "https://www.mvg.de"

	// EndpointStations returns the complete station directory
	// No params; the response is large and changes rarely
	EndpointStations = "/.rest/zdm/stations"

	// EndpointDepartures returns the live departure board of a station
	// Required params: globalId; optional: limit, offsetInMinutes, transportTypes
	EndpointDepartures = "/api/fib/v2/departure"
)

// DefaultDepartureLimit is the number of departures requested per board
const DefaultDepartureLimit = 20

// TransportTypes contains the transport types requested by default
var TransportTypes = []string{
	"UBAHN",
	"TRAM",
	"BUS",
	"SBAHN",
}
