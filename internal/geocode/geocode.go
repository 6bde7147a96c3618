package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"placebook/internal/apperr"
	"placebook/internal/domain"
)

// Geocoder resolves a postal address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Client talks to a geocod.io compatible HTTP API. One request per lookup,
// no retries.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodeResponse struct {
	Results []struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"results"`
}

func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	endpoint := fmt.Sprintf("%s/v1.7/geocode?q=%s&api_key=%s",
		c.baseURL, url.QueryEscape(address), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geocode service returned status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(body.Results) == 0 {
		return domain.Coordinates{}, apperr.New(apperr.Lookup, "could not find location for the specified address")
	}

	first := body.Results[0].Location
	return domain.Coordinates{Lat: first.Lat, Lng: first.Lng}, nil
}
