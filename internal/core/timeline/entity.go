package timeline

import "time"

const (
	SlotCount = 9
	SlotStep  = 3 * time.Hour

	labelLayout = "03:04 PM"
	dateLayout  = "Jan 2"
)

// Slot is one selectable point on the timeline. Timestamp is epoch milliseconds.
type Slot struct {
	Index     int    `json:"index"`
	Timestamp int64  `json:"timestamp"`
	Label     string `json:"label"`
	Date      string `json:"date"`
}

func (s Slot) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// BuildSlots returns SlotCount slots starting at the hour containing now.
func BuildSlots(now time.Time) []Slot {
	// wall clock, so zones with a sub-hour offset still start on the hour
	start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())

	slots := make([]Slot, SlotCount)
	for i := range slots {
		t := start.Add(time.Duration(i) * SlotStep)
		slots[i] = Slot{
			Index:     i,
			Timestamp: t.UnixMilli(),
			Label:     t.Format(labelLayout),
			Date:      t.Format(dateLayout),
		}
	}
	return slots
}

// Tint is the translucent overlay colour for a time of day
type Tint string

const (
	TintNight   Tint = "rgba(0, 0, 50, 0.3)"
	TintMorning Tint = "rgba(255, 200, 100, 0.1)"
	TintDay     Tint = "rgba(255, 255, 255, 0)"
	TintEvening Tint = "rgba(255, 100, 50, 0.15)"
)

// TintFor maps the local hour of t onto four fixed bands.
func TintFor(t time.Time) Tint {
	switch h := t.Hour(); {
	case h < 6:
		return TintNight
	case h < 12:
		return TintMorning
	case h < 18:
		return TintDay
	default:
		return TintEvening
	}
}
