package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
	"weathermap.app/pkg/validation"
)

const msgCityRequired = "Please enter a city name."

// UseCase owns the current weather result, loading flag and error message.
// Fetches are not coalesced: the last one to complete wins.
type UseCase struct {
	provider ports.WeatherProvider
	logger   ports.Logger
	metrics  ports.MetricsCollector

	mu    sync.Mutex
	state State
}

type UseCaseDependencies struct {
	Provider ports.WeatherProvider
	Logger   ports.Logger
	Metrics  ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		provider: deps.Provider,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}, nil
}

// FetchByCity loads current conditions for a city name. A blank name is reported
// through the state like a failed fetch, without calling the provider.
func (uc *UseCase) FetchByCity(ctx context.Context, city string) (*Snapshot, error) {
	city, ok := validation.TrimAndValidate(city)
	if !ok {
		msg := msgCityRequired
		uc.mu.Lock()
		uc.state = State{Error: &msg}
		uc.mu.Unlock()
		return nil, errors.NewValidationError(msgCityRequired)
	}

	uc.logger.Debug("Fetching weather for city", ports.F("city", city))
	return uc.fetch(ctx, "city", func(ctx context.Context) (*ports.WeatherData, error) {
		return uc.provider.CurrentByCity(ctx, city)
	})
}

// FetchByCoordinates loads current conditions for a point.
func (uc *UseCase) FetchByCoordinates(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	uc.logger.Debug("Fetching weather for coordinates", ports.F("lat", lat), ports.F("lon", lon))
	return uc.fetch(ctx, "coordinates", func(ctx context.Context) (*ports.WeatherData, error) {
		return uc.provider.CurrentByCoordinates(ctx, lat, lon)
	})
}

func (uc *UseCase) fetch(ctx context.Context, kind string, call func(context.Context) (*ports.WeatherData, error)) (*Snapshot, error) {
	uc.mu.Lock()
	uc.state.Loading = true
	uc.state.Error = nil
	uc.mu.Unlock()

	start := time.Now()
	data, err := call(ctx)
	uc.recordRequest(kind, err == nil, time.Since(start))

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state.Loading = false

	if err != nil {
		msg := errors.MessageOf(err)
		uc.state.Snapshot = nil
		uc.state.Error = &msg
		uc.logger.Warn("Weather fetch failed", ports.F("kind", kind), ports.F("error", err))
		return nil, fmt.Errorf("fetch weather by %s: %w", kind, err)
	}

	snapshot := convertFromPortsWeather(data)
	uc.state.Snapshot = snapshot
	uc.logger.Debug("Weather fetched",
		ports.F("place", snapshot.Name),
		ports.F("temperature", snapshot.Temperature))
	return snapshot, nil
}

// Forecast returns the forecast for a point without touching the controller state.
func (uc *UseCase) Forecast(ctx context.Context, lat, lon float64) (*Forecast, error) {
	start := time.Now()
	data, err := uc.provider.ForecastByCoordinates(ctx, lat, lon)
	uc.recordRequest("forecast", err == nil, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}

	forecast := &Forecast{
		City:        data.City,
		Coordinates: Coordinates{Lat: data.Coordinates.Lat, Lon: data.Coordinates.Lon},
		Entries:     make([]Snapshot, 0, len(data.Entries)),
	}
	for i := range data.Entries {
		forecast.Entries = append(forecast.Entries, *convertFromPortsWeather(&data.Entries[i]))
	}
	return forecast, nil
}

// ClearError resets the error message only.
func (uc *UseCase) ClearError() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state.Error = nil
}

// State returns a copy of the current state.
func (uc *UseCase) State() State {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	state := uc.state
	if state.Error != nil {
		msg := *state.Error
		state.Error = &msg
	}
	return state
}

// Current returns the latest snapshot or nil.
func (uc *UseCase) Current() *Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state.Snapshot
}

// IconURL returns the provider icon for a condition code.
func (uc *UseCase) IconURL(code string) string {
	return uc.provider.IconURL(code)
}

func (uc *UseCase) recordRequest(kind string, success bool, duration time.Duration) {
	if uc.metrics != nil {
		uc.metrics.RecordWeatherRequest(kind, success, duration)
	}
}

func convertFromPortsWeather(data *ports.WeatherData) *Snapshot {
	conditions := make([]Condition, 0, len(data.Conditions))
	for _, c := range data.Conditions {
		conditions = append(conditions, Condition{ID: c.ID, Main: c.Main, Description: c.Description, Icon: c.Icon})
	}

	return &Snapshot{
		Name:        data.Name,
		Country:     data.Country,
		Coordinates: Coordinates{Lat: data.Coordinates.Lat, Lon: data.Coordinates.Lon},
		Temperature: data.Temperature,
		FeelsLike:   data.FeelsLike,
		TempMin:     data.TempMin,
		TempMax:     data.TempMax,
		Pressure:    data.Pressure,
		Humidity:    data.Humidity,
		WindSpeed:   data.WindSpeed,
		WindDeg:     data.WindDeg,
		WindGust:    data.WindGust,
		Visibility:  data.Visibility,
		Conditions:  conditions,
		Sunrise:     data.Sunrise,
		Sunset:      data.Sunset,
		ObservedAt:  data.ObservedAt,
	}
}
