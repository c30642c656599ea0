package airport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/yegors/atcopilot/internal/frequencies"
	"github.com/yegors/atcopilot/pkg/logger"
)

// OpenAIPClient resolves airports against the OpenAIP core API.
// Lookups are never retried or cached; a failure is returned on the first attempt.
type OpenAIPClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	country     string
	searchLimit int
	logger      *logger.Logger
}

// NewOpenAIPClient creates a new OpenAIP airport client
func NewOpenAIPClient(
	baseURL string,
	apiKey string,
	country string,
	searchLimit int,
	timeout time.Duration,
	logger *logger.Logger,
) *OpenAIPClient {
	if searchLimit <= 0 {
		searchLimit = 10
	}
	if apiKey == "" {
		logger.Warn("OpenAIP API key is empty - remote airport lookups will likely be rejected")
	}

	return &OpenAIPClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		apiKey:      apiKey,
		country:     country,
		searchLimit: searchLimit,
		logger:      logger.Named("openaip-cli"),
	}
}

// openAIPResponse is the paged envelope returned by the airports endpoint
type openAIPResponse struct {
	TotalCount int              `json:"totalCount"`
	Items      []openAIPAirport `json:"items"`
}

type openAIPAirport struct {
	ID          string            `json:"_id"`
	Name        string            `json:"name"`
	ICAOCode    string            `json:"icaoCode"`
	Geometry    *geojson.Geometry `json:"geometry"`
	Frequencies any               `json:"frequencies"`
	Properties  struct {
		Frequencies any `json:"frequencies"`
	} `json:"properties"`
}

// Resolve implements Resolver
func (c *OpenAIPClient) Resolve(ctx context.Context, icao string) (*Record, error) {
	code := NormalizeICAO(icao)
	if code == "" {
		return nil, fmt.Errorf("%w: empty ICAO code", ErrNotFound)
	}

	params := url.Values{}
	params.Set("search", code)
	params.Set("limit", strconv.Itoa(c.searchLimit))
	params.Set("page", "1")
	if c.country != "" {
		params.Set("country", c.country)
	}
	reqURL := c.baseURL + "/airports?" + params.Encode()

	// Create a new request with context
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-openaip-api-key", c.apiKey)

	c.logger.Debug("Fetching airport from OpenAIP",
		logger.String("icao", code),
		logger.String("url", reqURL),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Unexpected status code",
			logger.Int("status_code", resp.StatusCode),
			logger.String("icao", code))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var data openAIPResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	// search is a fuzzy match upstream; only an exact ICAO code is accepted here
	for _, item := range data.Items {
		if NormalizeICAO(item.ICAOCode) != code {
			continue
		}
		rec, err := item.record()
		if err != nil {
			return nil, err
		}

		c.logger.Debug("Resolved airport from OpenAIP",
			logger.String("icao", code),
			logger.Int("frequency_count", len(rec.Frequencies)))
		return rec, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
}

func (a openAIPAirport) record() (*Record, error) {
	if a.Geometry == nil {
		return nil, fmt.Errorf("airport %s has no geometry", a.ICAOCode)
	}
	pt, ok := a.Geometry.Geometry().(orb.Point)
	if !ok {
		return nil, fmt.Errorf("airport %s geometry is %s, want Point", a.ICAOCode, a.Geometry.Type)
	}

	raw := a.Frequencies
	if raw == nil {
		raw = a.Properties.Frequencies
	}

	return &Record{
		ICAOCode:    NormalizeICAO(a.ICAOCode),
		Name:        a.Name,
		Lon:         pt.Lon(),
		Lat:         pt.Lat(),
		Frequencies: frequencies.ParseRaw(raw),
	}, nil
}
