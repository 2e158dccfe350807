package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"weathermap.app/internal/ports"
)

// MockWeatherProvider is a testify mock for ports.WeatherProvider
type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) CurrentByCity(ctx context.Context, city string) (*ports.WeatherData, error) {
	args := m.Called(ctx, city)
	data, _ := args.Get(0).(*ports.WeatherData)
	return data, args.Error(1)
}

func (m *MockWeatherProvider) CurrentByCoordinates(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	args := m.Called(ctx, lat, lon)
	data, _ := args.Get(0).(*ports.WeatherData)
	return data, args.Error(1)
}

func (m *MockWeatherProvider) ForecastByCoordinates(ctx context.Context, lat, lon float64) (*ports.ForecastData, error) {
	args := m.Called(ctx, lat, lon)
	data, _ := args.Get(0).(*ports.ForecastData)
	return data, args.Error(1)
}

func (m *MockWeatherProvider) IconURL(code string) string {
	args := m.Called(code)
	return args.String(0)
}

func (m *MockWeatherProvider) GetProviderName() string {
	args := m.Called()
	return args.String(0)
}

func NewMockWeatherProvider(t mock.TestingT) *MockWeatherProvider {
	m := &MockWeatherProvider{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}
