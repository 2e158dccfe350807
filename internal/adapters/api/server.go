// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weathermap.app/internal/core/dashboard"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

const (
	readTimeout  = 30 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// MetricsSummary exposes running totals for the JSON metrics endpoint
type MetricsSummary interface {
	Summary() map[string]interface{}
}

// HTTPServerAdapter serves the dashboard API using Gin
type HTTPServerAdapter struct {
	router        *gin.Engine
	server        *http.Server
	config        ServerConfig
	dashboard     *dashboard.UseCase
	healthChecker ports.SystemHealthChecker
	metrics       MetricsSummary
	logger        ports.Logger
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config        ServerConfig
	Dashboard     *dashboard.UseCase
	HealthChecker ports.SystemHealthChecker
	Metrics       MetricsSummary
	Logger        ports.Logger
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Dashboard == nil {
		return errors.NewValidationError("dashboard use case is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &HTTPServerAdapter{
		router:        router,
		config:        opts.Config,
		dashboard:     opts.Dashboard,
		healthChecker: opts.HealthChecker,
		metrics:       opts.Metrics,
		logger:        opts.Logger,
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Config.Port),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	s.setupRoutes()
	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/dashboard", s.getDashboard)
		api.GET("/ui", s.getUI)
		api.PUT("/ui/tab", s.setTab)
		api.POST("/ui/modals/:modal/open", s.openModal)
		api.POST("/ui/modals/:modal/close", s.closeModal)

		api.GET("/weather", s.searchWeather)
		api.GET("/weather/coordinates", s.getWeatherByCoordinates)
		api.GET("/weather/forecast", s.getForecast)
		api.GET("/weather/state", s.getWeatherState)
		api.DELETE("/weather/error", s.clearWeatherError)

		api.GET("/map", s.getMap)
		api.PUT("/map/center", s.setMapCenter)
		api.POST("/map/click", s.mapClick)
		api.POST("/map/locate", s.centerToUser)

		api.GET("/layers", s.listLayers)
		api.PUT("/layers/:id/toggle", s.toggleLayer)
		api.PUT("/layers/:id/opacity", s.setLayerOpacity)

		api.GET("/timeline", s.getTimeline)
		api.POST("/timeline/select", s.selectSlot)
		api.POST("/timeline/next", s.nextSlot)
		api.POST("/timeline/previous", s.previousSlot)
		api.POST("/timeline/play", s.play)
		api.POST("/timeline/pause", s.pause)
		api.POST("/timeline/toggle", s.togglePlay)

		api.GET("/subscriptions", s.listSubscriptions)
		api.POST("/subscriptions", s.createSubscription)
		api.PATCH("/subscriptions/:id", s.updateSubscription)
		api.POST("/subscriptions/:id/toggle", s.toggleSubscription)
		api.DELETE("/subscriptions/:id", s.removeSubscription)

		api.GET("/alerts", s.listAlerts)
		api.POST("/alerts/check", s.checkAlerts)
		api.POST("/alerts/:id/read", s.markAlertRead)
		api.DELETE("/alerts", s.clearAlerts)

		api.GET("/plans", s.listPlans)
		api.GET("/plan", s.getUserPlan)
		api.POST("/plan/cancel", s.cancelPlan)
		api.POST("/plan/reactivate", s.reactivatePlan)
		api.POST("/checkout", s.checkout)
		api.POST("/checkout/pay", s.pay)
		api.GET("/payments", s.listPayments)
		api.POST("/payments", s.processPayment)
		api.DELETE("/payments/error", s.clearPaymentError)
		api.GET("/payment-methods", s.listPaymentMethods)
		api.POST("/payment-methods", s.addPaymentMethod)
		api.DELETE("/payment-methods/:id", s.removePaymentMethod)
		api.POST("/payment-methods/:id/default", s.setDefaultPaymentMethod)

		api.GET("/health", s.getHealth)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start serves until Shutdown is called
func (s *HTTPServerAdapter) Start() error {
	s.logger.Info("Starting HTTP server", ports.F("port", s.config.Port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *HTTPServerAdapter) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}
	return nil
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
