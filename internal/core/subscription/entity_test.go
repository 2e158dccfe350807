package subscription

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequency_IsValid(t *testing.T) {
	tests := []struct {
		frequency Frequency
		expected  bool
	}{
		{FrequencyHourly, true},
		{FrequencyDaily, true},
		{FrequencyWeekly, true},
		{FrequencyUnknown, false},
		{Frequency(99), false},
	}

	for _, tt := range tests {
		t.Run(tt.frequency.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.frequency.IsValid())
		})
	}
}

func TestFrequency_JSON(t *testing.T) {
	data, err := json.Marshal(FrequencyWeekly)
	require.NoError(t, err)
	assert.Equal(t, `"weekly"`, string(data))

	var f Frequency
	require.NoError(t, json.Unmarshal([]byte(`"hourly"`), &f))
	assert.Equal(t, FrequencyHourly, f)

	require.NoError(t, json.Unmarshal([]byte(`"yearly"`), &f))
	assert.Equal(t, FrequencyUnknown, f)

	assert.Error(t, json.Unmarshal([]byte(`42`), &f))
}

func TestAlertType_IsValid(t *testing.T) {
	for _, at := range []AlertType{AlertTypeTemperature, AlertTypePrecipitation, AlertTypeWind, AlertTypeSevereWeather, AlertTypeAll} {
		assert.True(t, at.IsValid(), at)
	}
	assert.False(t, AlertType("hail").IsValid())
}

func TestSubscription_JSONLayout(t *testing.T) {
	sub := Subscription{
		ID:           "sub_1",
		LocationName: "Kyiv",
		Coordinates:  Coordinates{Lat: 50.4501, Lon: 30.5234},
		Email:        "a@b.c",
		Frequency:    FrequencyDaily,
		AlertTypes:   []AlertType{AlertTypeAll},
		IsActive:     true,
		CreatedAt:    1700000000000,
	}

	data, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id":"sub_1","locationName":"Kyiv","coordinates":{"lat":50.4501,"lon":30.5234},
		"email":"a@b.c","frequency":"daily","alertTypes":["all"],"isActive":true,"createdAt":1700000000000
	}`, string(data))
}

func TestMessages(t *testing.T) {
	assert.Equal(t,
		"Successfully subscribed to weather updates for Kyiv! You'll receive daily notifications.",
		WelcomeMessage("Kyiv", FrequencyDaily))
	assert.Equal(t, "Weather update for Lviv: Temperature change detected!", UpdateMessage("Lviv"))
}
