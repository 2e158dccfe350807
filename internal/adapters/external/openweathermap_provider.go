package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

const (
	defaultOpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultIconBaseURL           = "https://openweathermap.org/img/wn"
	openWeatherMapUnits          = "metric"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	apiKey      string
	baseURL     string
	iconBaseURL string
	client      HTTPClient
	limiter     *rate.Limiter
	logger      ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey      string
	BaseURL     string
	IconBaseURL string
	Timeout     time.Duration
	// RateLimitRPS of 0 disables client-side throttling
	RateLimitRPS   float64
	RateLimitBurst int
	Client         HTTPClient
	Logger         ports.Logger
}

// openWeatherMapResponse is the /weather payload, also used for each /forecast list entry
type openWeatherMapResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64  `json:"speed"`
		Deg   float64  `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Visibility int   `json:"visibility"`
	Dt         int64 `json:"dt"`
}

type openWeatherMapForecastResponse struct {
	List []openWeatherMapResponse `json:"list"`
	City struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	} `json:"city"`
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapBaseURL
	}
	iconBaseURL := strings.TrimRight(params.IconBaseURL, "/")
	if iconBaseURL == "" {
		iconBaseURL = defaultIconBaseURL
	}

	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if params.RateLimitRPS > 0 {
		burst := params.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(params.RateLimitRPS), burst)
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:      params.APIKey,
		baseURL:     baseURL,
		iconBaseURL: iconBaseURL,
		client:      client,
		limiter:     limiter,
		logger:      params.Logger,
	}
}

// CurrentByCity retrieves current conditions for a city name
func (p *OpenWeatherMapProviderAdapter) CurrentByCity(ctx context.Context, city string) (*ports.WeatherData, error) {
	if strings.TrimSpace(city) == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	query := url.Values{}
	query.Set("q", city)

	var resp openWeatherMapResponse
	if err := p.get(ctx, "weather", query, &resp); err != nil {
		return nil, err
	}
	return convertOpenWeatherMapResponse(&resp), nil
}

// CurrentByCoordinates retrieves current conditions for a point
func (p *OpenWeatherMapProviderAdapter) CurrentByCoordinates(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	var resp openWeatherMapResponse
	if err := p.get(ctx, "weather", coordinateQuery(lat, lon), &resp); err != nil {
		return nil, err
	}
	return convertOpenWeatherMapResponse(&resp), nil
}

// ForecastByCoordinates retrieves the 3-hourly forecast list for a point
func (p *OpenWeatherMapProviderAdapter) ForecastByCoordinates(ctx context.Context, lat, lon float64) (*ports.ForecastData, error) {
	var resp openWeatherMapForecastResponse
	if err := p.get(ctx, "forecast", coordinateQuery(lat, lon), &resp); err != nil {
		return nil, err
	}

	forecast := &ports.ForecastData{
		City:        resp.City.Name,
		Coordinates: ports.Coordinates{Lat: resp.City.Coord.Lat, Lon: resp.City.Coord.Lon},
		Entries:     make([]ports.WeatherData, 0, len(resp.List)),
	}
	for i := range resp.List {
		forecast.Entries = append(forecast.Entries, *convertOpenWeatherMapResponse(&resp.List[i]))
	}
	return forecast, nil
}

// IconURL returns the 2x icon image for a condition code
func (p *OpenWeatherMapProviderAdapter) IconURL(code string) string {
	return fmt.Sprintf("%s/%s@2x.png", p.iconBaseURL, code)
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}

func (p *OpenWeatherMapProviderAdapter) get(ctx context.Context, endpoint string, query url.Values, target interface{}) error {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return errors.NewExternalAPIError("request cancelled while waiting for rate limiter", err)
		}
	}

	query.Set("appid", p.apiKey)
	query.Set("units", openWeatherMapUnits)
	requestURL := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.NewExternalAPIError("failed to build OpenWeatherMap request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.NewExternalAPIError("failed to call OpenWeatherMap", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && p.logger != nil {
			p.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapOpenWeatherMapStatus(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.NewExternalAPIError("failed to decode OpenWeatherMap response", err)
	}
	return nil
}

func mapOpenWeatherMapStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return errors.NewNotFoundError("City not found. Please check the city name.")
	case http.StatusUnauthorized:
		return errors.NewUnauthorizedError("Invalid API key. Please check your settings.")
	case http.StatusTooManyRequests:
		return errors.NewRateLimitedError("Request limit exceeded. Please try again later.")
	default:
		return errors.NewExternalAPIError(
			fmt.Sprintf("Failed to fetch weather data: %s", http.StatusText(status)),
			fmt.Errorf("status %d", status))
	}
}

func coordinateQuery(lat, lon float64) url.Values {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return query
}

func convertOpenWeatherMapResponse(resp *openWeatherMapResponse) *ports.WeatherData {
	conditions := make([]ports.WeatherCondition, 0, len(resp.Weather))
	for _, w := range resp.Weather {
		conditions = append(conditions, ports.WeatherCondition{
			ID:          w.ID,
			Main:        w.Main,
			Description: w.Description,
			Icon:        w.Icon,
		})
	}

	data := &ports.WeatherData{
		Name:        resp.Name,
		Country:     resp.Sys.Country,
		Coordinates: ports.Coordinates{Lat: resp.Coord.Lat, Lon: resp.Coord.Lon},
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		TempMin:     resp.Main.TempMin,
		TempMax:     resp.Main.TempMax,
		Pressure:    resp.Main.Pressure,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
		WindDeg:     resp.Wind.Deg,
		WindGust:    resp.Wind.Gust,
		Visibility:  resp.Visibility,
		Conditions:  conditions,
	}
	if resp.Sys.Sunrise > 0 {
		data.Sunrise = time.Unix(resp.Sys.Sunrise, 0).UTC()
	}
	if resp.Sys.Sunset > 0 {
		data.Sunset = time.Unix(resp.Sys.Sunset, 0).UTC()
	}
	if resp.Dt > 0 {
		data.ObservedAt = time.Unix(resp.Dt, 0).UTC()
	}
	return data
}
