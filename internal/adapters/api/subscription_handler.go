package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weathermap.app/internal/core/subscription"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
	"weathermap.app/pkg/validation"
)

const msgInvalidSubscription = "Please enter a valid email and location"

// SubscriptionRequest represents the HTTP request for creating a subscription
type SubscriptionRequest struct {
	LocationName string             `json:"locationName" binding:"required"`
	Coordinates  CoordinatesRequest `json:"coordinates" binding:"required"`
	Email        string             `json:"email" binding:"required,contains=@"`
	Frequency    string             `json:"frequency" binding:"required,frequency"`
	AlertTypes   []string           `json:"alertTypes" binding:"omitempty,dive,alerttype"`
}

// UpdateSubscriptionRequest carries the fields to change
type UpdateSubscriptionRequest struct {
	LocationName *string             `json:"locationName" binding:"omitempty,min=1"`
	Coordinates  *CoordinatesRequest `json:"coordinates"`
	Email        *string             `json:"email" binding:"omitempty,contains=@"`
	Frequency    *string             `json:"frequency" binding:"omitempty,frequency"`
	AlertTypes   []string            `json:"alertTypes" binding:"omitempty,dive,alerttype"`
	IsActive     *bool               `json:"isActive"`
}

func toAlertTypes(in []string) []subscription.AlertType {
	if in == nil {
		return nil
	}
	out := make([]subscription.AlertType, 0, len(in))
	for _, t := range in {
		out = append(out, subscription.AlertType(t))
	}
	return out
}

func (s *HTTPServerAdapter) listSubscriptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.Subscriptions().List())
}

// createSubscription handles POST /api/subscriptions requests
func (s *HTTPServerAdapter) createSubscription(c *gin.Context) {
	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Subscription form rejected", ports.F("error", err))
		s.handleError(c, errors.NewValidationError(msgInvalidSubscription))
		return
	}
	name, ok := validation.TrimAndValidate(req.LocationName)
	if !ok || !validation.IsValidEmail(req.Email) {
		s.handleError(c, errors.NewValidationError(msgInvalidSubscription))
		return
	}

	sub, err := s.dashboard.Subscribe(c.Request.Context(), subscription.AddParams{
		LocationName: name,
		Coordinates:  subscription.Coordinates{Lat: *req.Coordinates.Lat, Lon: *req.Coordinates.Lon},
		Email:        req.Email,
		Frequency:    subscription.FrequencyFromString(req.Frequency),
		AlertTypes:   toAlertTypes(req.AlertTypes),
	})
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// updateSubscription handles PATCH /api/subscriptions/:id requests
func (s *HTTPServerAdapter) updateSubscription(c *gin.Context) {
	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Subscription update rejected", ports.F("error", err))
		s.handleError(c, errors.NewValidationError(msgInvalidSubscription))
		return
	}

	params := subscription.UpdateParams{
		LocationName: req.LocationName,
		Email:        req.Email,
		AlertTypes:   toAlertTypes(req.AlertTypes),
		IsActive:     req.IsActive,
	}
	if req.Coordinates != nil {
		if req.Coordinates.Lat == nil || req.Coordinates.Lon == nil {
			s.handleError(c, errors.NewValidationError(msgInvalidSubscription))
			return
		}
		params.Coordinates = &subscription.Coordinates{Lat: *req.Coordinates.Lat, Lon: *req.Coordinates.Lon}
	}
	if req.Frequency != nil {
		f := subscription.FrequencyFromString(*req.Frequency)
		params.Frequency = &f
	}

	sub, err := s.dashboard.Subscriptions().Update(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (s *HTTPServerAdapter) toggleSubscription(c *gin.Context) {
	sub, err := s.dashboard.Subscriptions().Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (s *HTTPServerAdapter) removeSubscription(c *gin.Context) {
	if err := s.dashboard.Subscriptions().Remove(c.Request.Context(), c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Subscription removed"})
}

// AlertsResponse lists alerts newest first with the unread count
type AlertsResponse struct {
	Alerts      []subscription.Alert `json:"alerts"`
	UnreadCount int                  `json:"unreadCount"`
}

func (s *HTTPServerAdapter) alertsResponse() AlertsResponse {
	subs := s.dashboard.Subscriptions()
	return AlertsResponse{Alerts: subs.Alerts(), UnreadCount: len(subs.Unread())}
}

func (s *HTTPServerAdapter) listAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, s.alertsResponse())
}

// checkAlerts runs one alert-check pass on demand
func (s *HTTPServerAdapter) checkAlerts(c *gin.Context) {
	generated, err := s.dashboard.Subscriptions().CheckForAlerts(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"generated": generated})
}

func (s *HTTPServerAdapter) markAlertRead(c *gin.Context) {
	if err := s.dashboard.Subscriptions().MarkAlertRead(c.Request.Context(), c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.alertsResponse())
}

func (s *HTTPServerAdapter) clearAlerts(c *gin.Context) {
	if err := s.dashboard.Subscriptions().ClearAllAlerts(c.Request.Context()); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.alertsResponse())
}
