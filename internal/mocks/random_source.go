package mocks

import "github.com/stretchr/testify/mock"

// MockRandomSource is a testify mock for ports.RandomSource
type MockRandomSource struct {
	mock.Mock
}

func (m *MockRandomSource) Float64() float64 {
	args := m.Called()
	return args.Get(0).(float64)
}

func NewMockRandomSource(t mock.TestingT) *MockRandomSource {
	m := &MockRandomSource{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

// FixedRandom always returns the same draw.
type FixedRandom float64

func (f FixedRandom) Float64() float64 { return float64(f) }

// SequenceRandom returns its values in order, repeating the last one when exhausted.
type SequenceRandom struct {
	Values []float64
	next   int
}

func (s *SequenceRandom) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	if s.next >= len(s.Values) {
		return s.Values[len(s.Values)-1]
	}
	v := s.Values[s.next]
	s.next++
	return v
}
