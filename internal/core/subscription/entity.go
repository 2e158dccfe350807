package subscription

import (
	"encoding/json"
	"fmt"
)

// Frequency represents how often a subscriber wants updates
type Frequency int

const (
	FrequencyUnknown Frequency = iota
	FrequencyHourly
	FrequencyDaily
	FrequencyWeekly
)

// String returns the string representation of frequency
func (f Frequency) String() string {
	switch f {
	case FrequencyHourly:
		return "hourly"
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekly:
		return "weekly"
	default:
		return "unknown"
	}
}

// IsValid checks if the frequency value is valid
func (f Frequency) IsValid() bool {
	return f == FrequencyHourly || f == FrequencyDaily || f == FrequencyWeekly
}

// FrequencyFromString converts string to Frequency enum
func FrequencyFromString(s string) Frequency {
	switch s {
	case "hourly":
		return FrequencyHourly
	case "daily":
		return FrequencyDaily
	case "weekly":
		return FrequencyWeekly
	default:
		return FrequencyUnknown
	}
}

// UnmarshalJSON implements json.Unmarshaler interface
func (f *Frequency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = FrequencyFromString(s)
	return nil
}

// MarshalJSON implements json.Marshaler interface
func (f Frequency) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalText implements encoding.TextUnmarshaler for form parsing
func (f *Frequency) UnmarshalText(text []byte) error {
	*f = FrequencyFromString(string(text))
	return nil
}

// AlertType tags which kinds of alerts a subscription wants
type AlertType string

const (
	AlertTypeTemperature   AlertType = "temperature"
	AlertTypePrecipitation AlertType = "precipitation"
	AlertTypeWind          AlertType = "wind"
	AlertTypeSevereWeather AlertType = "severe-weather"
	AlertTypeAll           AlertType = "all"
)

func (a AlertType) IsValid() bool {
	switch a {
	case AlertTypeTemperature, AlertTypePrecipitation, AlertTypeWind, AlertTypeSevereWeather, AlertTypeAll:
		return true
	}
	return false
}

// Severity of a generated alert
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySevere  Severity = "severe"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Subscription is a saved location with delivery preferences. Timestamps are epoch milliseconds.
type Subscription struct {
	ID           string      `json:"id"`
	LocationName string      `json:"locationName"`
	Coordinates  Coordinates `json:"coordinates"`
	Email        string      `json:"email"`
	Frequency    Frequency   `json:"frequency"`
	AlertTypes   []AlertType `json:"alertTypes"`
	IsActive     bool        `json:"isActive"`
	CreatedAt    int64       `json:"createdAt"`
	LastUpdate   *int64      `json:"lastUpdate,omitempty"`
}

// Alert is a notification attached to a subscription
type Alert struct {
	ID             string   `json:"id"`
	SubscriptionID string   `json:"subscriptionId"`
	Message        string   `json:"message"`
	Severity       Severity `json:"severity"`
	Timestamp      int64    `json:"timestamp"`
	Read           bool     `json:"read"`
}

// WelcomeMessage is the text of the alert created with every new subscription
func WelcomeMessage(locationName string, frequency Frequency) string {
	return fmt.Sprintf("Successfully subscribed to weather updates for %s! You'll receive %s notifications.",
		locationName, frequency)
}

// UpdateMessage is the text of a simulated periodic alert
func UpdateMessage(locationName string) string {
	return fmt.Sprintf("Weather update for %s: Temperature change detected!", locationName)
}
