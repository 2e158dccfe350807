package mocks

import (
	"github.com/stretchr/testify/mock"
	"weathermap.app/internal/ports"
)

// MockConfigProvider is a testify mock for ports.ConfigProvider
type MockConfigProvider struct {
	mock.Mock
}

func (m *MockConfigProvider) GetWeatherConfig() ports.WeatherConfig {
	return m.Called().Get(0).(ports.WeatherConfig)
}

func (m *MockConfigProvider) GetServerConfig() ports.ServerConfig {
	return m.Called().Get(0).(ports.ServerConfig)
}

func (m *MockConfigProvider) GetStorageConfig() ports.StorageConfig {
	return m.Called().Get(0).(ports.StorageConfig)
}

func (m *MockConfigProvider) GetMapConfig() ports.MapConfig {
	return m.Called().Get(0).(ports.MapConfig)
}

func (m *MockConfigProvider) GetSchedulerConfig() ports.SchedulerConfig {
	return m.Called().Get(0).(ports.SchedulerConfig)
}

func (m *MockConfigProvider) GetPaymentConfig() ports.PaymentConfig {
	return m.Called().Get(0).(ports.PaymentConfig)
}

func NewMockConfigProvider(t mock.TestingT) *MockConfigProvider {
	m := &MockConfigProvider{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}
