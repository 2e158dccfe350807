package weather

import (
	"fmt"
	"strings"
	"time"
)

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Condition describes the sky/precipitation state reported by the provider
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Snapshot is one fetched observation for a place. It is never mutated after a fetch.
type Snapshot struct {
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coord"`
	Temperature float64     `json:"temp"`
	FeelsLike   float64     `json:"feelsLike"`
	TempMin     float64     `json:"tempMin"`
	TempMax     float64     `json:"tempMax"`
	Pressure    float64     `json:"pressure"`
	Humidity    float64     `json:"humidity"`
	WindSpeed   float64     `json:"windSpeed"`
	WindDeg     float64     `json:"windDeg"`
	WindGust    *float64    `json:"windGust,omitempty"`
	Visibility  int         `json:"visibility"`
	Conditions  []Condition `json:"conditions"`
	Sunrise     time.Time   `json:"sunrise"`
	Sunset      time.Time   `json:"sunset"`
	ObservedAt  time.Time   `json:"observedAt"`
}

// Forecast is a list of snapshots for one location
type Forecast struct {
	City        string      `json:"city"`
	Coordinates Coordinates `json:"coord"`
	Entries     []Snapshot  `json:"entries"`
}

// State is what the dashboard renders for the weather panel
type State struct {
	Snapshot *Snapshot `json:"snapshot"`
	Loading  bool      `json:"loading"`
	Error    *string   `json:"error"`
}

// IsValid validates snapshot data
func (s *Snapshot) IsValid() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if s.Temperature < -273.15 {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	if s.Humidity < 0 || s.Humidity > 100 {
		return fmt.Errorf("humidity must be between 0 and 100")
	}
	return nil
}

// PrimaryCondition returns the first reported condition, if any
func (s *Snapshot) PrimaryCondition() (Condition, bool) {
	if len(s.Conditions) == 0 {
		return Condition{}, false
	}
	return s.Conditions[0], true
}

// TemperatureInFahrenheit converts temperature from Celsius to Fahrenheit
func (s *Snapshot) TemperatureInFahrenheit() float64 {
	return s.Temperature*9/5 + 32
}

// WindDirection maps degrees to one of 8 compass points
func (s *Snapshot) WindDirection() string {
	directions := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	deg := s.WindDeg
	for deg < 0 {
		deg += 360
	}
	idx := int((deg+22.5)/45) % len(directions)
	return directions[idx]
}

// HumidityDescription provides a human-readable description of humidity level
func (s *Snapshot) HumidityDescription() string {
	switch {
	case s.Humidity < 20:
		return "Very dry"
	case s.Humidity < 30:
		return "Dry"
	case s.Humidity < 60:
		return "Comfortable"
	case s.Humidity < 80:
		return "Humid"
	default:
		return "Very humid"
	}
}

// VisibilityKm returns visibility in kilometres
func (s *Snapshot) VisibilityKm() float64 {
	return float64(s.Visibility) / 1000
}

// String returns a string representation of the snapshot
func (s *Snapshot) String() string {
	desc := ""
	if c, ok := s.PrimaryCondition(); ok {
		desc = c.Description
	}
	return fmt.Sprintf("%s, %s: %.1f°C, %.0f%% humidity, %s",
		s.Name, s.Country, s.Temperature, s.Humidity, desc)
}
