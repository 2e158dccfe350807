package ports

import (
	"context"
	"time"
)

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherCondition is one entry of the provider's condition list
type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherData represents one provider observation for a location
type WeatherData struct {
	Name        string
	Country     string
	Coordinates Coordinates
	Temperature float64
	FeelsLike   float64
	TempMin     float64
	TempMax     float64
	Pressure    float64
	Humidity    float64
	WindSpeed   float64
	WindDeg     float64
	WindGust    *float64
	Visibility  int
	Conditions  []WeatherCondition
	Sunrise     time.Time
	Sunset      time.Time
	ObservedAt  time.Time
}

// ForecastData represents the provider's forecast list for a location
type ForecastData struct {
	City        string
	Coordinates Coordinates
	Entries     []WeatherData
}

// WeatherProvider defines the contract for the weather data provider
type WeatherProvider interface {
	CurrentByCity(ctx context.Context, city string) (*WeatherData, error)
	CurrentByCoordinates(ctx context.Context, lat, lon float64) (*WeatherData, error)
	ForecastByCoordinates(ctx context.Context, lat, lon float64) (*ForecastData, error)
	IconURL(code string) string
	GetProviderName() string
}
