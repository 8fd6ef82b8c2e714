// Package geo provides the geocoding collaborator used when organizations are
// created or change address.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dvinubius/bootcamp-backend/internal/config"
	"github.com/dvinubius/bootcamp-backend/model"
)

// ErrNotConfigured is returned by the disabled geocoder. Callers storing a
// location treat it as "no location available"; callers that need coordinates
// surface it.
var ErrNotConfigured = errors.New("geocoder is not configured")

// Geocoder resolves a free-form address into a GeoJSON point location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*model.Location, error)
}

// New builds a geocoder from configuration. Without a base URL the disabled
// implementation is returned.
func New(cfg config.GeocoderConfig) Geocoder {
	if cfg.BaseURL == "" {
		return disabled{}
	}
	return &nominatim{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type disabled struct{}

func (disabled) Geocode(_ context.Context, _ string) (*model.Location, error) {
	return nil, ErrNotConfigured
}

// nominatim queries a Nominatim-compatible search endpoint.
type nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Road        string `json:"road"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		Postcode    string `json:"postcode"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

func (g *nominatim) Geocode(ctx context.Context, address string) (*model.Location, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&addressdetails=1&limit=1",
		g.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request failed with status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("could not geocode address: %s", address)
	}

	r := results[0]
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	city := r.Address.City
	if city == "" {
		city = r.Address.Town
	}
	if city == "" {
		city = r.Address.Village
	}

	return &model.Location{
		Type:             "Point",
		Coordinates:      []float64{lon, lat},
		FormattedAddress: r.DisplayName,
		Street:           r.Address.Road,
		City:             city,
		Zipcode:          r.Address.Postcode,
		Country:          r.Address.CountryCode,
	}, nil
}
