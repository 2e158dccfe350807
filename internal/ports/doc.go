// Package ports holds the interfaces the dashboard core talks through: weather
// data, geolocation, collection storage, recurring tasks and randomness.
// Test doubles live in internal/mocks.
package ports
