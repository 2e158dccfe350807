package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockMetricsCollector is a testify mock for ports.MetricsCollector
type MockMetricsCollector struct {
	mock.Mock
}

func (m *MockMetricsCollector) RecordWeatherRequest(kind string, success bool, duration time.Duration) {
	m.Called(kind, success, duration)
}

func (m *MockMetricsCollector) RecordPayment(planID, status string) {
	m.Called(planID, status)
}

func (m *MockMetricsCollector) RecordAlert(severity string) {
	m.Called(severity)
}

func (m *MockMetricsCollector) RecordStoreOperation(operation string, success bool, duration time.Duration) {
	m.Called(operation, success, duration)
}

func NewMockMetricsCollector(t mock.TestingT) *MockMetricsCollector {
	m := &MockMetricsCollector{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}
