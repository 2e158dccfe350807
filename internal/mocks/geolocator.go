package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"weathermap.app/internal/ports"
)

// MockGeolocator is a testify mock for ports.Geolocator
type MockGeolocator struct {
	mock.Mock
}

func (m *MockGeolocator) CurrentPosition(ctx context.Context) (ports.Coordinates, error) {
	args := m.Called(ctx)
	pos, _ := args.Get(0).(ports.Coordinates)
	return pos, args.Error(1)
}

func NewMockGeolocator(t mock.TestingT) *MockGeolocator {
	m := &MockGeolocator{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}
