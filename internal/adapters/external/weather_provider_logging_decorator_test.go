package external

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/mocks"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

func fieldValue(fields []ports.Field, key string) interface{} {
	for _, f := range fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

func TestWeatherProviderLoggingDecorator_CurrentByCity_Success(t *testing.T) {
	provider := mocks.NewMockWeatherProvider(t)
	provider.On("GetProviderName").Return("openweathermap")
	provider.On("CurrentByCity", mock.Anything, "Kyiv").Return(&ports.WeatherData{
		Name:        "Kyiv",
		Temperature: 12.3,
		Conditions:  []ports.WeatherCondition{{Description: "broken clouds"}},
	}, nil).Once()

	logger := mocks.NewMockLogger(t)
	logger.On("Info", "Weather API request started", mock.MatchedBy(func(fields []ports.Field) bool {
		return fieldValue(fields, "city") == "Kyiv" && fieldValue(fields, "event") == "request"
	})).Once()
	logger.On("Info", "Weather API request completed", mock.MatchedBy(func(fields []ports.Field) bool {
		return fieldValue(fields, "description") == "broken clouds" && fieldValue(fields, "event") == "response"
	})).Once()

	decorator := NewWeatherProviderLoggingDecorator(provider, logger)
	data, err := decorator.CurrentByCity(context.Background(), "Kyiv")

	require.NoError(t, err)
	assert.Equal(t, "Kyiv", data.Name)
}

func TestWeatherProviderLoggingDecorator_CurrentByCoordinates_Error(t *testing.T) {
	provider := mocks.NewMockWeatherProvider(t)
	provider.On("GetProviderName").Return("openweathermap")
	provider.On("CurrentByCoordinates", mock.Anything, 1.0, 2.0).
		Return(nil, errors.NewRateLimitedError("Request limit exceeded. Please try again later.")).Once()

	logger := mocks.NewMockLogger(t)
	logger.On("Info", "Weather API request started", mock.Anything).Once()
	logger.On("Error", "Weather API request failed", mock.MatchedBy(func(fields []ports.Field) bool {
		return fieldValue(fields, "lat") == 1.0 && fieldValue(fields, "event") == "error"
	})).Once()

	decorator := NewWeatherProviderLoggingDecorator(provider, logger)
	_, err := decorator.CurrentByCoordinates(context.Background(), 1.0, 2.0)

	assert.Equal(t, errors.RateLimitedError, errors.TypeOf(err))
}

func TestWeatherProviderLoggingDecorator_Forecast(t *testing.T) {
	provider := mocks.NewMockWeatherProvider(t)
	provider.On("GetProviderName").Return("openweathermap")
	provider.On("ForecastByCoordinates", mock.Anything, 1.0, 2.0).
		Return(&ports.ForecastData{City: "X", Entries: make([]ports.WeatherData, 3)}, nil).Once()

	logger := mocks.NewMockLogger(t)
	logger.On("Info", "Weather API request started", mock.Anything).Once()
	logger.On("Info", "Weather API request completed", mock.MatchedBy(func(fields []ports.Field) bool {
		return fieldValue(fields, "entries") == 3
	})).Once()

	decorator := NewWeatherProviderLoggingDecorator(provider, logger)
	forecast, err := decorator.ForecastByCoordinates(context.Background(), 1.0, 2.0)

	require.NoError(t, err)
	assert.Equal(t, "X", forecast.City)
}

func TestWeatherProviderLoggingDecorator_Delegates(t *testing.T) {
	provider := mocks.NewMockWeatherProvider(t)
	provider.On("GetProviderName").Return("openweathermap")
	provider.On("IconURL", "01d").Return("icon-url")

	decorator := NewWeatherProviderLoggingDecorator(provider, mocks.NewQuietLogger(t))

	assert.Equal(t, "logged(openweathermap)", decorator.GetProviderName())
	assert.Equal(t, "icon-url", decorator.IconURL("01d"))
}
