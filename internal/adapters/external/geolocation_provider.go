package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"weathermap.app/internal/config"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

const (
	msgLocationUnavailable = "Unable to get your location. Please enable location services."
	msgLocationDenied      = "Location access was denied by the geolocation service."
)

// IPGeolocator resolves the caller's position from an ip-api.com compatible endpoint
type IPGeolocator struct {
	url    string
	client HTTPClient
	logger ports.Logger
}

type IPGeolocatorParams struct {
	URL     string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

func NewIPGeolocator(params IPGeolocatorParams) *IPGeolocator {
	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &IPGeolocator{url: params.URL, client: client, logger: params.Logger}
}

// CurrentPosition performs one lookup. A 401 or 403 from the service is reported
// as denied, any other failure as unavailable.
func (g *IPGeolocator) CurrentPosition(ctx context.Context) (ports.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return ports.Coordinates{}, errors.NewGeolocationUnavailableError(msgLocationUnavailable, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return ports.Coordinates{}, errors.NewGeolocationUnavailableError(msgLocationUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && g.logger != nil {
			g.logger.Warn("Failed to close geolocation response body", ports.F("error", closeErr))
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return ports.Coordinates{}, errors.NewGeolocationDeniedError(msgLocationDenied)
	default:
		return ports.Coordinates{}, errors.NewGeolocationUnavailableError(msgLocationUnavailable,
			fmt.Errorf("geolocation service returned status %d", resp.StatusCode))
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.Coordinates{}, errors.NewGeolocationUnavailableError(msgLocationUnavailable, err)
	}
	if body.Status != "" && body.Status != "success" {
		return ports.Coordinates{}, errors.NewGeolocationUnavailableError(msgLocationUnavailable,
			fmt.Errorf("geolocation lookup failed: %s", body.Message))
	}

	if g.logger != nil {
		g.logger.Debug("Resolved position from IP", ports.F("city", body.City))
	}
	return ports.Coordinates{Lat: body.Lat, Lon: body.Lon}, nil
}

// StaticGeolocator always reports the configured position
type StaticGeolocator struct {
	position ports.Coordinates
}

func NewStaticGeolocator(lat, lon float64) *StaticGeolocator {
	return &StaticGeolocator{position: ports.Coordinates{Lat: lat, Lon: lon}}
}

func (g *StaticGeolocator) CurrentPosition(ctx context.Context) (ports.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return ports.Coordinates{}, errors.NewGeolocationUnavailableError(msgLocationUnavailable, err)
	}
	return g.position, nil
}

// NewGeolocator builds the configured geolocator. Provider "none" yields nil,
// which callers treat as geolocation being unsupported.
func NewGeolocator(cfg *config.GeolocationConfig, logger ports.Logger) (ports.Geolocator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		return nil, nil
	case "ip":
		return NewIPGeolocator(IPGeolocatorParams{URL: cfg.URL, Timeout: cfg.Timeout, Logger: logger}), nil
	case "static":
		return NewStaticGeolocator(cfg.StaticLat, cfg.StaticLon), nil
	default:
		return nil, errors.NewConfigurationError(fmt.Sprintf("unsupported geolocation provider: %s", cfg.Provider), nil)
	}
}
