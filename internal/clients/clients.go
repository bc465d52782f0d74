// Package clients provides HTTP clients for external APIs
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrUpstream marks every failure talking to the flight data provider.
var ErrUpstream = errors.New("upstream unavailable")

// HTTPClient is a wrapper around http.Client with common configuration
type HTTPClient struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPClient creates a new HTTP client with timeout. ratePerSec <= 0 disables
// the limiter.
func NewHTTPClient(timeout time.Duration, ratePerSec float64) *HTTPClient {
	limit := rate.Inf
	burst := 1
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
		burst = max(int(ratePerSec), 1)
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Get performs a GET request and returns the response body. A single attempt is
// made; non-2xx statuses are returned as errors.
func (c *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "flight-insights/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// AviationClient fetches reference and schedule data from an
// AviationStack-compatible API
type AviationClient struct {
	http    *HTTPClient
	baseURL string
	apiKey  string
}

// NewAviationClient creates a new aviation data client
func NewAviationClient(httpClient *HTTPClient, baseURL, apiKey string) *AviationClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &AviationClient{
		http:    httpClient,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// FetchCountries fetches the full country list
func (c *AviationClient) FetchCountries(ctx context.Context) ([]CountryEntry, error) {
	var env envelope[CountryEntry]
	if err := c.get(ctx, "countries", url.Values{}, &env); err != nil {
		return nil, fmt.Errorf("countries: %w", err)
	}
	return env.Data, nil
}

// FetchAirports fetches the airports of one country
func (c *AviationClient) FetchAirports(ctx context.Context, countryISO2 string) ([]AirportEntry, error) {
	params := url.Values{}
	params.Set("country_iso2", countryISO2)

	var env envelope[AirportEntry]
	if err := c.get(ctx, "airports", params, &env); err != nil {
		return nil, fmt.Errorf("airports %s: %w", countryISO2, err)
	}
	return env.Data, nil
}

// FetchSchedules fetches the flights of one route on one date
func (c *AviationClient) FetchSchedules(ctx context.Context, depIATA, arrIATA, flightDate string) ([]ScheduleEntry, error) {
	params := url.Values{}
	params.Set("dep_iata", depIATA)
	params.Set("arr_iata", arrIATA)
	params.Set("flight_date", flightDate)

	var env envelope[ScheduleEntry]
	if err := c.get(ctx, "schedules", params, &env); err != nil {
		return nil, fmt.Errorf("schedules %s-%s %s: %w", depIATA, arrIATA, flightDate, err)
	}
	return env.Data, nil
}

func (c *AviationClient) get(ctx context.Context, endpoint string, params url.Values, out apiErrorer) error {
	params.Set("access_key", c.apiKey)
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	start := time.Now()
	body, err := c.http.Get(ctx, reqURL)
	slog.Debug(
		"upstream request",
		slog.String("url", c.redact(reqURL)),
		slog.Duration("took", time.Since(start)),
		slog.Bool("ok", err == nil),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, c.redactErr(err))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}
	if apiErr := out.apiError(); apiErr != nil {
		return fmt.Errorf("%w: %s", ErrUpstream, apiErr)
	}
	return nil
}

func (c *AviationClient) redact(s string) string {
	if c.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, url.QueryEscape(c.apiKey), "REDACTED")
}

// redactErr keeps the access key out of url.Error messages.
func (c *AviationClient) redactErr(err error) string {
	return c.redact(err.Error())
}
