package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/core/subscription"
)

func kyivForm() SubscriptionRequest {
	lat, lon := 50.4501, 30.5234
	return SubscriptionRequest{
		LocationName: "Kyiv",
		Coordinates:  CoordinatesRequest{Lat: &lat, Lon: &lon},
		Email:        "user@example.com",
		Frequency:    "daily",
		AlertTypes:   []string{"temperature", "wind"},
	}
}

func createKyiv(t *testing.T, ts *testServer) subscription.Subscription {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/subscriptions", kyivForm())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sub subscription.Subscription
	decode(t, w, &sub)
	return sub
}

func TestSubscriptionHandler_Create(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	_ = ts.dashboard.OpenModal("subscription-form")

	sub := createKyiv(t, ts)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "Kyiv", sub.LocationName)
	assert.Equal(t, subscription.FrequencyDaily, sub.Frequency)
	assert.Equal(t, []subscription.AlertType{subscription.AlertTypeTemperature, subscription.AlertTypeWind}, sub.AlertTypes)
	assert.True(t, sub.IsActive)
	assert.False(t, ts.dashboard.UI().OpenModals["subscription-form"])

	w := ts.do(t, http.MethodGet, "/api/alerts", nil)
	var alerts AlertsResponse
	decode(t, w, &alerts)
	require.Len(t, alerts.Alerts, 1)
	assert.Equal(t, sub.ID, alerts.Alerts[0].SubscriptionID)
	assert.Equal(t, 1, alerts.UnreadCount)
}

func TestSubscriptionHandler_Create_InvalidForm(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *SubscriptionRequest)
	}{
		{"EmailWithoutAt", func(r *SubscriptionRequest) { r.Email = "user.example.com" }},
		{"BlankLocation", func(r *SubscriptionRequest) { r.LocationName = "   " }},
		{"MissingLocation", func(r *SubscriptionRequest) { r.LocationName = "" }},
		{"UnknownFrequency", func(r *SubscriptionRequest) { r.Frequency = "monthly" }},
		{"UnknownAlertType", func(r *SubscriptionRequest) { r.AlertTypes = []string{"snow"} }},
		{"MissingCoordinates", func(r *SubscriptionRequest) { r.Coordinates = CoordinatesRequest{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, serverOptions{})
			form := kyivForm()
			tt.modify(&form)

			w := ts.do(t, http.MethodPost, "/api/subscriptions", form)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, msgInvalidSubscription, errorMessage(t, w))
			assert.Zero(t, ts.dashboard.Subscriptions().Count())
		})
	}
}

func TestSubscriptionHandler_Create_PlanQuota(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	createKyiv(t, ts)

	w := ts.do(t, http.MethodPost, "/api/subscriptions", kyivForm())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You have reached the location limit of your plan. Upgrade to add more locations.", errorMessage(t, w))
	assert.Equal(t, 1, ts.dashboard.Subscriptions().Count())
}

func TestSubscriptionHandler_Create_FrequencyNotInPlan(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	form := kyivForm()
	form.Frequency = "hourly"

	w := ts.do(t, http.MethodPost, "/api/subscriptions", form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Your plan does not include hourly updates. Upgrade to choose them.", errorMessage(t, w))
	assert.Zero(t, ts.dashboard.Subscriptions().Count())
}

func TestSubscriptionHandler_UpdateToggleRemove(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	sub := createKyiv(t, ts)

	freq := "hourly"
	w := ts.do(t, http.MethodPatch, "/api/subscriptions/"+sub.ID, UpdateSubscriptionRequest{Frequency: &freq})
	require.Equal(t, http.StatusOK, w.Code)
	var updated subscription.Subscription
	decode(t, w, &updated)
	assert.Equal(t, subscription.FrequencyHourly, updated.Frequency)
	assert.NotNil(t, updated.LastUpdate)

	w = ts.do(t, http.MethodPost, "/api/subscriptions/"+sub.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &updated)
	assert.False(t, updated.IsActive)

	w = ts.do(t, http.MethodDelete, "/api/subscriptions/"+sub.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, ts.dashboard.Subscriptions().Count())
	assert.Empty(t, ts.dashboard.Subscriptions().Alerts())
}

func TestSubscriptionHandler_UnknownID(t *testing.T) {
	ts := newTestServer(t, serverOptions{})

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/api/subscriptions/missing", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/api/subscriptions/missing/toggle", nil).Code)
	active := true
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPatch, "/api/subscriptions/missing", UpdateSubscriptionRequest{IsActive: &active}).Code)
}

func TestSubscriptionHandler_Update_InvalidEmail(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	sub := createKyiv(t, ts)

	email := "nope"
	w := ts.do(t, http.MethodPatch, "/api/subscriptions/"+sub.ID, UpdateSubscriptionRequest{Email: &email})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAlertHandler_ReadAndClear(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	createKyiv(t, ts)
	alertID := ts.dashboard.Subscriptions().Alerts()[0].ID

	w := ts.do(t, http.MethodPost, "/api/alerts/"+alertID+"/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var alerts AlertsResponse
	decode(t, w, &alerts)
	assert.True(t, alerts.Alerts[0].Read)
	assert.Zero(t, alerts.UnreadCount)

	w = ts.do(t, http.MethodDelete, "/api/alerts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &alerts)
	assert.Empty(t, alerts.Alerts)
	assert.Equal(t, 1, ts.dashboard.Subscriptions().Count())
}

func TestAlertHandler_CheckNow(t *testing.T) {
	ts := newTestServer(t, serverOptions{})
	createKyiv(t, ts)

	w := ts.do(t, http.MethodPost, "/api/alerts/check", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Generated []subscription.Alert `json:"generated"`
	}
	decode(t, w, &body)
	assert.Empty(t, body.Generated)
}
