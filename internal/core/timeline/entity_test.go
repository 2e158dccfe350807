package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSlots(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 37, 12, 500, time.UTC)

	slots := BuildSlots(now)

	require.Len(t, slots, SlotCount)
	start := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	for i, s := range slots {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, start.Add(time.Duration(i)*3*time.Hour).UnixMilli(), s.Timestamp)
	}
	assert.Equal(t, "02:00 PM", slots[0].Label)
	assert.Equal(t, "Mar 1", slots[0].Date)
	assert.Equal(t, "11:00 PM", slots[3].Label)
	assert.Equal(t, "02:00 PM", slots[8].Label)
	assert.Equal(t, "Mar 2", slots[8].Date)
}

func TestBuildSlots_HalfHourZone(t *testing.T) {
	india := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 3, 1, 10, 45, 0, 0, india)

	slots := BuildSlots(now)

	first := slots[0].Time().In(india)
	assert.Equal(t, 10, first.Hour())
	assert.Equal(t, 0, first.Minute())
}

func TestTintFor(t *testing.T) {
	tests := []struct {
		hour int
		want Tint
	}{
		{0, TintNight},
		{5, TintNight},
		{6, TintMorning},
		{11, TintMorning},
		{12, TintDay},
		{17, TintDay},
		{18, TintEvening},
		{23, TintEvening},
	}

	for _, tt := range tests {
		ts := time.Date(2024, 3, 1, tt.hour, 30, 0, 0, time.UTC)
		assert.Equal(t, tt.want, TintFor(ts), "hour %d", tt.hour)
	}
}
