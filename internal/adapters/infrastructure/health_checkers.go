package infrastructure

import (
	"context"

	"weathermap.app/internal/ports"
)

// StorageHealthChecker pings the key-value backend behind the collection store
type StorageHealthChecker struct {
	store       ports.KeyValueStore
	storageType string
}

func NewStorageHealthChecker(store ports.KeyValueStore, storageType string) *StorageHealthChecker {
	return &StorageHealthChecker{store: store, storageType: storageType}
}

// Check verifies storage connectivity
func (s *StorageHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "storage",
		Details:   map[string]interface{}{"type": s.storageType},
	}

	if s.store == nil {
		status.Status = "unhealthy"
		status.Error = "storage is not configured"
		return status
	}

	if err := s.store.Ping(ctx); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		return status
	}

	status.Status = "healthy"
	status.Details["connected"] = true
	return status
}

// WeatherAPIHealthChecker reports whether a weather provider is wired and has a credential.
// It makes no network call.
type WeatherAPIHealthChecker struct {
	provider ports.WeatherProvider
	config   ports.ConfigProvider
}

func NewWeatherAPIHealthChecker(provider ports.WeatherProvider, config ports.ConfigProvider) *WeatherAPIHealthChecker {
	return &WeatherAPIHealthChecker{provider: provider, config: config}
}

func (w *WeatherAPIHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherAPI",
		Status:    "healthy",
		Details:   map[string]interface{}{},
	}

	if w.provider == nil {
		status.Status = "unhealthy"
		status.Error = "weather provider is not available"
		return status
	}
	status.Details["provider"] = w.provider.GetProviderName()

	if w.config != nil && w.config.GetWeatherConfig().APIKey == "" {
		status.Status = "degraded"
		status.Error = "weather API key is not configured"
	}
	status.Details["apiKeyConfigured"] = status.Error == ""
	return status
}

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	StorageChecker    ports.HealthChecker
	WeatherAPIChecker ports.HealthChecker
	ConfigProvider    ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker)
	if config.StorageChecker != nil {
		checkers["storage"] = config.StorageChecker
	}
	if config.WeatherAPIChecker != nil {
		checkers["weatherAPI"] = config.WeatherAPIChecker
	}
	return &SystemHealthChecker{
		checkers:       checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)
	for name, checker := range s.checkers {
		results[name] = checker.Check(ctx)
	}

	if s.configProvider != nil {
		scheduler := s.configProvider.GetSchedulerConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    "healthy",
			Details: map[string]interface{}{
				"storageType":        s.configProvider.GetStorageConfig().Type,
				"alertCheckInterval": scheduler.AlertCheckInterval.String(),
				"timelineTick":       scheduler.TimelineTickInterval.String(),
			},
		}
	}

	return results
}
