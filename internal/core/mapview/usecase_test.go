package mapview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/core/weather"
	"weathermap.app/internal/mocks"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

type testEnv struct {
	uc         *UseCase
	provider   *mocks.MockWeatherProvider
	geolocator *mocks.MockGeolocator
	weather    *weather.UseCase
}

func newTestEnv(t *testing.T) *testEnv {
	logger := mocks.NewQuietLogger(t)
	provider := mocks.NewMockWeatherProvider(t)
	geolocator := mocks.NewMockGeolocator(t)

	weatherUC, err := weather.NewUseCase(weather.UseCaseDependencies{Provider: provider, Logger: logger})
	require.NoError(t, err)

	config := mocks.NewMockConfigProvider(t)
	config.On("GetMapConfig").Return(ports.MapConfig{
		DefaultLat: 50.4501, DefaultLon: 30.5234, DefaultZoom: 6, UserZoom: 12,
	}).Once()

	uc, err := NewUseCase(UseCaseDependencies{
		Weather:    weatherUC,
		Geolocator: geolocator,
		Config:     config,
		Logger:     logger,
	})
	require.NoError(t, err)

	return &testEnv{uc: uc, provider: provider, geolocator: geolocator, weather: weatherUC}
}

func TestUseCase_DefaultState(t *testing.T) {
	env := newTestEnv(t)

	state := env.uc.State()

	assert.Equal(t, weather.Coordinates{Lat: 50.4501, Lon: 30.5234}, state.Center)
	assert.Equal(t, 6, state.Zoom)
	assert.Empty(t, env.uc.Markers())
}

func TestUseCase_SetCenter(t *testing.T) {
	env := newTestEnv(t)

	env.uc.SetCenter(weather.Coordinates{Lat: 1, Lon: 2}, nil)
	assert.Equal(t, State{Center: weather.Coordinates{Lat: 1, Lon: 2}, Zoom: 6}, env.uc.State())

	zoom := 9
	env.uc.SetCenter(weather.Coordinates{Lat: 3, Lon: 4}, &zoom)
	assert.Equal(t, State{Center: weather.Coordinates{Lat: 3, Lon: 4}, Zoom: 9}, env.uc.State())
}

func TestUseCase_CenterToUser_Success(t *testing.T) {
	env := newTestEnv(t)
	env.geolocator.On("CurrentPosition", mock.Anything).Return(ports.Coordinates{Lat: 49.84, Lon: 24.03}, nil).Once()
	env.provider.On("CurrentByCoordinates", mock.Anything, 49.84, 24.03).Return(&ports.WeatherData{
		Name:        "Lviv",
		Coordinates: ports.Coordinates{Lat: 49.84, Lon: 24.03},
		Temperature: 9,
	}, nil).Once()

	snapshot, err := env.uc.CenterToUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Lviv", snapshot.Name)
	assert.Equal(t, State{Center: weather.Coordinates{Lat: 49.84, Lon: 24.03}, Zoom: 12}, env.uc.State())

	markers := env.uc.Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, SearchedMarkerID, markers[0].ID)
	assert.Equal(t, "Lviv", markers[0].Title)
}

func TestUseCase_CenterToUser_FailureLeavesState(t *testing.T) {
	tests := []struct {
		name         string
		geoErr       error
		expectedType errors.ErrorType
	}{
		{
			name:         "Denied",
			geoErr:       errors.NewGeolocationDeniedError("User denied Geolocation"),
			expectedType: errors.GeolocationDeniedError,
		},
		{
			name:         "Timeout",
			geoErr:       context.DeadlineExceeded,
			expectedType: errors.GeolocationUnavailableError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			before := env.uc.State()
			env.geolocator.On("CurrentPosition", mock.Anything).Return(ports.Coordinates{}, tt.geoErr).Once()

			_, err := env.uc.CenterToUser(context.Background())

			require.Error(t, err)
			assert.Equal(t, tt.expectedType, errors.TypeOf(err))
			assert.Equal(t, before, env.uc.State())
			assert.Equal(t, weather.State{}, env.weather.State())
		})
	}
}

func TestUseCase_CenterToUser_NoGeolocator(t *testing.T) {
	env := newTestEnv(t)
	env.uc.geolocator = nil

	_, err := env.uc.CenterToUser(context.Background())

	assert.Equal(t, errors.GeolocationUnavailableError, errors.TypeOf(err))
}

func TestUseCase_HandleClick(t *testing.T) {
	env := newTestEnv(t)
	env.provider.On("CurrentByCoordinates", mock.Anything, 48.0, 35.0).Return(&ports.WeatherData{
		Name:        "Dnipro",
		Coordinates: ports.Coordinates{Lat: 48.0, Lon: 35.0},
	}, nil).Once()

	snapshot, err := env.uc.HandleClick(context.Background(), 48.0, 35.0)

	require.NoError(t, err)
	assert.Equal(t, "Dnipro", snapshot.Name)
	assert.Equal(t, State{Center: weather.Coordinates{Lat: 48.0, Lon: 35.0}, Zoom: 6}, env.uc.State())
	assert.Len(t, env.uc.Markers(), 1)
}

func TestUseCase_HandleClick_FetchFailureStillRecenters(t *testing.T) {
	env := newTestEnv(t)
	env.provider.On("CurrentByCoordinates", mock.Anything, 10.0, 10.0).
		Return(nil, errors.NewExternalAPIError("Failed to fetch weather data: Service Unavailable", nil)).Once()

	_, err := env.uc.HandleClick(context.Background(), 10, 10)

	require.Error(t, err)
	assert.Equal(t, weather.Coordinates{Lat: 10, Lon: 10}, env.uc.State().Center)
	assert.Empty(t, env.uc.Markers())
}

func TestMarkersFor_UntitledSnapshot(t *testing.T) {
	markers := MarkersFor(&weather.Snapshot{Coordinates: weather.Coordinates{Lat: 1.23456, Lon: 2.5}})

	require.Len(t, markers, 1)
	assert.Equal(t, "Location: 1.2346, 2.5000", markers[0].Title)
}

func TestUseCase_RecenterOnSnapshot(t *testing.T) {
	env := newTestEnv(t)

	env.uc.RecenterOnSnapshot(nil)
	assert.Equal(t, 6, env.uc.State().Zoom)

	env.uc.RecenterOnSnapshot(&weather.Snapshot{Coordinates: weather.Coordinates{Lat: 40, Lon: -70}})
	assert.Equal(t, weather.Coordinates{Lat: 40, Lon: -70}, env.uc.State().Center)
}
