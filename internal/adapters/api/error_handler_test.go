package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/mocks"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

func TestHTTPServerAdapter_HandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"Validation", errors.NewValidationError("city is required"), http.StatusBadRequest, "city is required"},
		{"NotFound", errors.NewNotFoundError("City not found. Please check the city name."), http.StatusNotFound, "City not found. Please check the city name."},
		{"InvalidPlan", errors.NewInvalidPlanError("Invalid plan selected"), http.StatusBadRequest, "Invalid plan selected"},
		{"InvalidPaymentMethod", errors.NewInvalidPaymentMethodError("Invalid payment method"), http.StatusBadRequest, "Invalid payment method"},
		{"PaymentDeclined", errors.NewPaymentDeclinedError("Payment failed. Please try again."), http.StatusPaymentRequired, "Payment failed. Please try again."},
		{"Unauthorized", errors.NewUnauthorizedError("Invalid API key. Please check your settings."), http.StatusBadGateway, "Invalid API key. Please check your settings."},
		{"RateLimited", errors.NewRateLimitedError("Request limit exceeded. Please try again later."), http.StatusTooManyRequests, "Request limit exceeded. Please try again later."},
		{"ExternalAPI", errors.NewExternalAPIError("Failed to fetch weather data: Bad Gateway", nil), http.StatusBadGateway, "Failed to fetch weather data: Bad Gateway"},
		{"GeolocationDenied", errors.NewGeolocationDeniedError("User denied Geolocation"), http.StatusForbidden, "User denied Geolocation"},
		{"GeolocationUnavailable", errors.NewGeolocationUnavailableError("Geolocation is not supported.", nil), http.StatusServiceUnavailable, "Geolocation is not supported."},
		{"StorageHidden", errors.NewStorageError("redis write failed", fmt.Errorf("EOF")), http.StatusInternalServerError, msgInternal},
		{"ConfigurationHidden", errors.NewConfigurationError("bad config", nil), http.StatusInternalServerError, msgInternal},
		{"WrappedKeepsType", fmt.Errorf("search: %w", errors.NewNotFoundError("City not found. Please check the city name.")), http.StatusNotFound, "City not found. Please check the city name."},
		{"ForeignError", fmt.Errorf("boom"), http.StatusInternalServerError, msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := &HTTPServerAdapter{logger: mocks.NewQuietLogger(t)}
			router := gin.New()
			router.GET("/test", func(c *gin.Context) { server.handleError(c, tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, w))
		})
	}
}

type stubHealth map[string]ports.HealthStatus

func (s stubHealth) CheckAll(context.Context) map[string]ports.HealthStatus {
	return s
}

type stubSummary map[string]interface{}

func (s stubSummary) Summary() map[string]interface{} {
	return s
}

func TestServer_Health(t *testing.T) {
	tests := []struct {
		name       string
		health     stubHealth
		wantStatus int
		wantState  string
	}{
		{
			name:       "Healthy",
			health:     stubHealth{"storage": {Component: "storage", Status: "healthy"}},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
		{
			name: "Degraded",
			health: stubHealth{
				"storage":    {Component: "storage", Status: "healthy"},
				"weatherAPI": {Component: "weatherAPI", Status: "degraded"},
			},
			wantStatus: http.StatusOK,
			wantState:  "degraded",
		},
		{
			name: "Unhealthy",
			health: stubHealth{
				"storage":    {Component: "storage", Status: "unhealthy"},
				"weatherAPI": {Component: "weatherAPI", Status: "degraded"},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, serverOptions{health: tt.health})

			w := ts.do(t, http.MethodGet, "/api/health", nil)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body struct {
				Status     string                        `json:"status"`
				Components map[string]ports.HealthStatus `json:"components"`
			}
			decode(t, w, &body)
			assert.Equal(t, tt.wantState, body.Status)
			assert.Len(t, body.Components, len(tt.health))
		})
	}
}

func TestServer_MetricsSummary(t *testing.T) {
	ts := newTestServer(t, serverOptions{metrics: stubSummary{"alerts": map[string]int64{"info": 2}}})

	w := ts.do(t, http.MethodGet, "/api/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]map[string]float64
	decode(t, w, &body)
	assert.Equal(t, 2.0, body["alerts"]["info"])
}
