package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mobil-koeln/abfahrt/internal/cache"
	"github.com/mobil-koeln/abfahrt/internal/models"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultStationTTL = 24 * time.Hour
	defaultUserAgent  = "abfahrt (+https://github.com/mobil-koeln/abfahrt)"
)

// Cache interface for caching HTTP responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// Client is the API client for the MVG departure and station services
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	departureLimit int
	transportTypes []string
	// cache only ever holds the station directory; departures are always live
	cache Cache
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at another host, e.g. a test server
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithDepartureLimit sets how many departures are requested per board
func WithDepartureLimit(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.departureLimit = n
		}
	}
}

// WithTransportTypes restricts the departure board to the given transport types
func WithTransportTypes(types []string) ClientOption {
	return func(c *Client) {
		if len(types) > 0 {
			c.transportTypes = types
		}
	}
}

// WithCache enables station caching with the provided cache implementation
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithDefaultCache enables station caching with the default file cache.
// A zero ttl uses one day.
func WithDefaultCache(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl <= 0 {
			ttl = defaultStationTTL
		}
		fc, err := cache.NewFileCache(cache.DefaultCacheDir(), ttl)
		if err == nil {
			c.cache = fc
		}
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient:     &http.Client{Timeout: defaultTimeout},
		baseURL:        BaseURL,
		userAgent:      defaultUserAgent,
		departureLimit: DefaultDepartureLimit,
		transportTypes: TransportTypes,
	}

	for _, opt := range opts {
		opt(c)
	}

	if _, err := url.Parse(c.baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return c, nil
}

// GetStations fetches the complete station directory
func (c *Client) GetStations(ctx context.Context) ([]models.Station, error) {
	body, err := c.GetStationsRaw(ctx)
	if err != nil {
		return nil, err
	}

	var resp []models.StationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse stations response: %w", err)
	}

	stations := make([]models.Station, 0, len(resp))
	for _, entry := range resp {
		if entry.ID == "" {
			continue
		}
		stations = append(stations, *entry.ToStation())
	}

	return stations, nil
}

// GetStationsRaw fetches the station directory and returns raw JSON
func (c *Client) GetStationsRaw(ctx context.Context) (json.RawMessage, error) {
	return c.doRequest(ctx, c.baseURL+EndpointStations, true)
}

// SearchStations returns the stations whose name or place contains query
func (c *Client) SearchStations(ctx context.Context, query string) ([]models.Station, error) {
	stations, err := c.GetStations(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]models.Station, 0)
	for i := range stations {
		if stations[i].Matches(query) {
			matches = append(matches, stations[i])
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoResults, query)
	}
	return matches, nil
}

// GetDepartures fetches the live departures of a station
func (c *Client) GetDepartures(ctx context.Context, stationID string) ([]models.DepartureInfo, error) {
	body, err := c.GetDeparturesRaw(ctx, stationID)
	if err != nil {
		return nil, err
	}

	var resp []models.DepartureResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse departures response: %w", err)
	}

	departures := make([]models.DepartureInfo, 0, len(resp))
	for _, entry := range resp {
		departures = append(departures, *entry.ToDeparture())
	}

	return departures, nil
}

// GetDeparturesRaw fetches departures and returns raw JSON
func (c *Client) GetDeparturesRaw(ctx context.Context, stationID string) (json.RawMessage, error) {
	stationID = strings.TrimSpace(stationID)
	if stationID == "" {
		return nil, ErrMissingField("globalId")
	}

	params := url.Values{}
	params.Set("globalId", stationID)
	params.Set("limit", strconv.Itoa(c.departureLimit))
	params.Set("transportTypes", strings.Join(c.transportTypes, ","))

	reqURL := c.baseURL + EndpointDepartures + "?" + params.Encode()

	return c.doRequest(ctx, reqURL, false)
}

// doRequest performs an HTTP GET request, consulting the cache when cacheable
func (c *Client) doRequest(ctx context.Context, reqURL string, cacheable bool) ([]byte, error) {
	useCache := cacheable && c.cache != nil

	if useCache {
		if data, ok := c.cache.Get(reqURL); ok {
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, NewAPIError(resp.StatusCode, resp.Status, extractEndpoint(reqURL))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if useCache {
		_ = c.cache.Set(reqURL, body)
	}

	return body, nil
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}
