package ports

import "context"

// Geolocator resolves the user's current position once per call
type Geolocator interface {
	CurrentPosition(ctx context.Context) (Coordinates, error)
}
