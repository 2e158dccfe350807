package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"weathermap.app/internal/ports"
	errorspkg "weathermap.app/pkg/errors"
)

const msgInternal = "Internal server error"

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a successful HTTP response without a payload
type SuccessResponse struct {
	Message string `json:"message"`
}

// statusFor maps an application error type to an HTTP status. The bool reports
// whether the error message is safe to show to the user.
func statusFor(t errorspkg.ErrorType) (int, bool) {
	switch t {
	case errorspkg.ValidationError, errorspkg.InvalidPlanError, errorspkg.InvalidPaymentMethodError:
		return http.StatusBadRequest, true
	case errorspkg.NotFoundError:
		return http.StatusNotFound, true
	case errorspkg.PaymentDeclinedError:
		return http.StatusPaymentRequired, true
	case errorspkg.RateLimitedError:
		return http.StatusTooManyRequests, true
	case errorspkg.UnauthorizedError, errorspkg.ExternalAPIError:
		return http.StatusBadGateway, true
	case errorspkg.GeolocationDeniedError:
		return http.StatusForbidden, true
	case errorspkg.GeolocationUnavailableError:
		return http.StatusServiceUnavailable, true
	default:
		return http.StatusInternalServerError, false
	}
}

// handleError writes the response for a failed use case call
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		s.logger.Error("Unhandled error", ports.F("path", c.FullPath()), ports.F("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
		return
	}

	status, public := statusFor(appErr.Type)
	message := appErr.Message
	if !public {
		s.logger.Error("Request failed", ports.F("path", c.FullPath()), ports.F("error", err))
		message = msgInternal
	}
	c.JSON(status, ErrorResponse{Error: message})
}

// getHealth handles GET /api/health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	if s.healthChecker == nil {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		return
	}

	results := s.healthChecker.CheckAll(c.Request.Context())
	overall := "healthy"
	for _, r := range results {
		if r.Status == "unhealthy" {
			overall = "unhealthy"
			break
		}
		if r.Status == "degraded" {
			overall = "degraded"
		}
	}

	status := http.StatusOK
	if overall == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": overall, "components": results})
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	if s.metrics == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, s.metrics.Summary())
}
