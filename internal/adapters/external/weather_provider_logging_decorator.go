package external

import (
	"context"
	"time"

	"weathermap.app/internal/ports"
)

// WeatherProviderLoggingDecorator decorates weather providers with structured logging
type WeatherProviderLoggingDecorator struct {
	provider ports.WeatherProvider
	logger   ports.Logger
}

// NewWeatherProviderLoggingDecorator creates a new logging decorator for weather providers
func NewWeatherProviderLoggingDecorator(provider ports.WeatherProvider, logger ports.Logger) ports.WeatherProvider {
	return &WeatherProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// CurrentByCity wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) CurrentByCity(ctx context.Context, city string) (*ports.WeatherData, error) {
	target := []ports.Field{ports.F("city", city)}
	return d.logCurrent("current_by_city", target, func() (*ports.WeatherData, error) {
		return d.provider.CurrentByCity(ctx, city)
	})
}

// CurrentByCoordinates wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) CurrentByCoordinates(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	target := []ports.Field{ports.F("lat", lat), ports.F("lon", lon)}
	return d.logCurrent("current_by_coordinates", target, func() (*ports.WeatherData, error) {
		return d.provider.CurrentByCoordinates(ctx, lat, lon)
	})
}

// ForecastByCoordinates wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) ForecastByCoordinates(ctx context.Context, lat, lon float64) (*ports.ForecastData, error) {
	providerName := d.provider.GetProviderName()
	base := []ports.Field{
		ports.F("provider", providerName),
		ports.F("operation", "forecast"),
		ports.F("lat", lat),
		ports.F("lon", lon),
	}

	d.logger.Info("Weather API request started", withFields(base, ports.F("event", "request"))...)

	startTime := time.Now()
	forecast, err := d.provider.ForecastByCoordinates(ctx, lat, lon)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather API request failed", withFields(base,
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))...)
		return nil, err
	}

	d.logger.Info("Weather API request completed", withFields(base,
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("entries", len(forecast.Entries)))...)
	return forecast, nil
}

func (d *WeatherProviderLoggingDecorator) logCurrent(operation string, target []ports.Field, call func() (*ports.WeatherData, error)) (*ports.WeatherData, error) {
	base := append([]ports.Field{
		ports.F("provider", d.provider.GetProviderName()),
		ports.F("operation", operation),
	}, target...)

	d.logger.Info("Weather API request started", withFields(base, ports.F("event", "request"))...)

	startTime := time.Now()
	weatherData, err := call()
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather API request failed", withFields(base,
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))...)
		return nil, err
	}

	description := ""
	if len(weatherData.Conditions) > 0 {
		description = weatherData.Conditions[0].Description
	}
	d.logger.Info("Weather API request completed", withFields(base,
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("place", weatherData.Name),
		ports.F("temperature", weatherData.Temperature),
		ports.F("humidity", weatherData.Humidity),
		ports.F("description", description))...)

	return weatherData, nil
}

// IconURL delegates to the wrapped provider
func (d *WeatherProviderLoggingDecorator) IconURL(code string) string {
	return d.provider.IconURL(code)
}

// GetProviderName returns the name of the wrapped provider with logging indication
func (d *WeatherProviderLoggingDecorator) GetProviderName() string {
	return "logged(" + d.provider.GetProviderName() + ")"
}

func withFields(base []ports.Field, extra ...ports.Field) []ports.Field {
	out := make([]ports.Field, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
