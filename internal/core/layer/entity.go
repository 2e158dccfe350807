package layer

import (
	"fmt"
	"strings"
)

const (
	APIKeyPlaceholder = "{API_KEY}"
	timestampToken    = "&t="
)

// Config is one overlay the map can render
type Config struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	TileURL string  `json:"tileUrl"`
	Enabled bool    `json:"enabled"`
	Opacity float64 `json:"opacity"`
}

type definition struct {
	id      string
	name    string
	enabled bool
	opacity float64
}

var defaultDefinitions = []definition{
	{id: "temp", name: "Temperature", enabled: true, opacity: 0.7},
	{id: "precipitation", name: "Precipitation", opacity: 0.6},
	{id: "clouds", name: "Clouds", opacity: 0.5},
	{id: "wind", name: "Wind Speed", opacity: 0.6},
	{id: "pressure", name: "Pressure", opacity: 0.6},
}

// DefaultLayers returns the built-in overlay set. Only temperature starts enabled.
func DefaultLayers(tileBaseURL string) []Config {
	base := strings.TrimRight(tileBaseURL, "/")
	layers := make([]Config, 0, len(defaultDefinitions))
	for _, d := range defaultDefinitions {
		layers = append(layers, Config{
			ID:      d.id,
			Name:    d.name,
			TileURL: fmt.Sprintf("%s/%s_new/{z}/{x}/{y}.png?appid=%s", base, d.id, APIKeyPlaceholder),
			Enabled: d.enabled,
			Opacity: d.opacity,
		})
	}
	return layers
}

// WithTimestamp replaces any previous cache-busting token with t.
func WithTimestamp(tileURL string, ts int64) string {
	base := strings.SplitN(tileURL, timestampToken, 2)[0]
	return fmt.Sprintf("%s%s%d", base, timestampToken, ts)
}

// ResolveTileURL fills in the provider credential.
func ResolveTileURL(tileURL, apiKey string) string {
	return strings.ReplaceAll(tileURL, APIKeyPlaceholder, apiKey)
}
