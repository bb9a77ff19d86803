// Package geo looks up country and city names for the shipping address
// form. Failures here degrade to free-text entry, so callers treat an
// empty result as "no suggestions" rather than an error state.
package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"orderdesk/internal/config"
)

// Client talks to a countriesnow-compatible lookup service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new geo lookup client.
func NewClient(cfg config.GeoConfig, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With().Str("component", "geo-client").Logger(),
	}
}

// countryEntry is one country record from the positions endpoint.
type countryEntry struct {
	Name string `json:"name"`
}

// countriesResponse is the wire shape of the country positions endpoint.
type countriesResponse struct {
	Error bool           `json:"error"`
	Data  []countryEntry `json:"data"`
}

// citiesResponse is the wire shape of the cities endpoint.
type citiesResponse struct {
	Error bool     `json:"error"`
	Data  []string `json:"data"`
}

// Countries returns all known country names, sorted.
func (c *Client) Countries(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/countries/positions", nil)
	if err != nil {
		return nil, fmt.Errorf("create countries request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch countries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("countries lookup failed with status %d", resp.StatusCode)
	}

	var body countriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode countries response: %w", err)
	}
	if body.Error {
		return nil, fmt.Errorf("countries lookup reported an error")
	}

	names := lo.Map(body.Data, func(entry countryEntry, _ int) string {
		return entry.Name
	})
	sort.Strings(names)

	c.logger.Debug().Int("count", len(names)).Msg("countries fetched")
	return names, nil
}

// Cities returns the city names of one country, sorted.
func (c *Client) Cities(ctx context.Context, country string) ([]string, error) {
	payload, err := json.Marshal(map[string]string{"country": country})
	if err != nil {
		return nil, fmt.Errorf("encode cities request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/countries/cities", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create cities request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch cities: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cities lookup failed with status %d", resp.StatusCode)
	}

	var body citiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode cities response: %w", err)
	}
	if body.Error {
		return nil, fmt.Errorf("cities lookup reported an error for %q", country)
	}

	cities := append([]string(nil), body.Data...)
	sort.Strings(cities)

	c.logger.Debug().Str("country", country).Int("count", len(cities)).Msg("cities fetched")
	return cities, nil
}
