package mapview

import (
	"context"
	"fmt"
	"sync"

	"weathermap.app/internal/core/weather"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// WeatherFetcher is the part of the weather controller the map needs
type WeatherFetcher interface {
	FetchByCoordinates(ctx context.Context, lat, lon float64) (*weather.Snapshot, error)
	Current() *weather.Snapshot
}

type UseCase struct {
	weather    WeatherFetcher
	geolocator ports.Geolocator
	logger     ports.Logger
	userZoom   int

	mu    sync.Mutex
	state State
}

type UseCaseDependencies struct {
	Weather    WeatherFetcher
	Geolocator ports.Geolocator
	Config     ports.ConfigProvider
	Logger     ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Weather == nil {
		return nil, errors.NewValidationError("weather controller is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	mapConfig := deps.Config.GetMapConfig()
	return &UseCase{
		weather:    deps.Weather,
		geolocator: deps.Geolocator,
		logger:     deps.Logger,
		userZoom:   mapConfig.UserZoom,
		state: State{
			Center: weather.Coordinates{Lat: mapConfig.DefaultLat, Lon: mapConfig.DefaultLon},
			Zoom:   mapConfig.DefaultZoom,
		},
	}, nil
}

// SetCenter moves the map, changing zoom only when one is given.
func (uc *UseCase) SetCenter(center weather.Coordinates, zoom *int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state.Center = center
	if zoom != nil {
		uc.state.Zoom = *zoom
	}
}

func (uc *UseCase) State() State {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

// CenterToUser asks for one position fix. A failed fix leaves the view untouched.
func (uc *UseCase) CenterToUser(ctx context.Context) (*weather.Snapshot, error) {
	if uc.geolocator == nil {
		return nil, errors.NewGeolocationUnavailableError("Geolocation is not supported.", nil)
	}

	pos, err := uc.geolocator.CurrentPosition(ctx)
	if err != nil {
		uc.logger.Warn("Unable to get user location", ports.F("error", err))
		if errors.IsGeolocationError(err) {
			return nil, err
		}
		return nil, errors.NewGeolocationUnavailableError("Unable to get your location. Please enable location services.", err)
	}

	zoom := uc.userZoom
	uc.SetCenter(weather.Coordinates{Lat: pos.Lat, Lon: pos.Lon}, &zoom)

	snapshot, err := uc.weather.FetchByCoordinates(ctx, pos.Lat, pos.Lon)
	if err != nil {
		return nil, fmt.Errorf("center to user: %w", err)
	}
	return snapshot, nil
}

// HandleClick recenters on the clicked point and loads its weather.
func (uc *UseCase) HandleClick(ctx context.Context, lat, lon float64) (*weather.Snapshot, error) {
	uc.SetCenter(weather.Coordinates{Lat: lat, Lon: lon}, nil)

	snapshot, err := uc.weather.FetchByCoordinates(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("map click: %w", err)
	}
	return snapshot, nil
}

// RecenterOnSnapshot moves the map to a search result.
func (uc *UseCase) RecenterOnSnapshot(snapshot *weather.Snapshot) {
	if snapshot == nil {
		return
	}
	uc.SetCenter(snapshot.Coordinates, nil)
}

func (uc *UseCase) Markers() []Marker {
	return MarkersFor(uc.weather.Current())
}
