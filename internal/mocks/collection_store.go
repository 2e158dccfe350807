package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCollectionStore is a testify mock for ports.CollectionStore
type MockCollectionStore struct {
	mock.Mock
}

func (m *MockCollectionStore) Load(ctx context.Context, name string, target interface{}) (bool, error) {
	args := m.Called(ctx, name, target)
	return args.Bool(0), args.Error(1)
}

func (m *MockCollectionStore) Save(ctx context.Context, name string, value interface{}) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

func (m *MockCollectionStore) Remove(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func NewMockCollectionStore(t mock.TestingT) *MockCollectionStore {
	m := &MockCollectionStore{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}
