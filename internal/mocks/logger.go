package mocks

import (
	"github.com/stretchr/testify/mock"
	"weathermap.app/internal/ports"
)

// MockLogger is a testify mock for ports.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}

// NewMockLogger creates a MockLogger and asserts its expectations on cleanup.
func NewMockLogger(t mock.TestingT) *MockLogger {
	m := &MockLogger{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

// NewQuietLogger returns a MockLogger that accepts any log call.
func NewQuietLogger(t mock.TestingT) *MockLogger {
	m := NewMockLogger(t)
	for _, level := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(level, mock.Anything, mock.Anything).Maybe()
	}
	return m
}
