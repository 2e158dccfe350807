package mapview

import (
	"fmt"

	"weathermap.app/internal/core/weather"
)

const SearchedMarkerID = "searched"

// State is the map center and zoom level
type State struct {
	Center weather.Coordinates `json:"center"`
	Zoom   int                 `json:"zoom"`
}

// Marker is derived from the current weather snapshot and never stored
type Marker struct {
	ID       string              `json:"id"`
	Position weather.Coordinates `json:"position"`
	Title    string              `json:"title"`
	Weather  *weather.Snapshot   `json:"weatherData"`
}

// MarkersFor returns zero or one marker for the snapshot.
func MarkersFor(snapshot *weather.Snapshot) []Marker {
	if snapshot == nil {
		return []Marker{}
	}
	title := snapshot.Name
	if title == "" {
		title = fmt.Sprintf("Location: %.4f, %.4f", snapshot.Coordinates.Lat, snapshot.Coordinates.Lon)
	}
	return []Marker{{
		ID:       SearchedMarkerID,
		Position: snapshot.Coordinates,
		Title:    title,
		Weather:  snapshot,
	}}
}
