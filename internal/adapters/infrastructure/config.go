package infrastructure

import (
	"weathermap.app/internal/config"
	"weathermap.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetWeatherConfig returns weather provider configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		APIKey:      c.config.Weather.APIKey,
		TileBaseURL: c.config.Weather.TileBaseURL,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}

// GetStorageConfig returns persistence configuration
func (c *ConfigProviderAdapter) GetStorageConfig() ports.StorageConfig {
	return ports.StorageConfig{
		Type: c.config.Storage.Type.String(),
	}
}

// GetMapConfig returns the initial map view
func (c *ConfigProviderAdapter) GetMapConfig() ports.MapConfig {
	return ports.MapConfig{
		DefaultLat:  c.config.Map.DefaultLat,
		DefaultLon:  c.config.Map.DefaultLon,
		DefaultZoom: c.config.Map.DefaultZoom,
		UserZoom:    c.config.Map.UserZoom,
	}
}

// GetSchedulerConfig returns recurring task intervals
func (c *ConfigProviderAdapter) GetSchedulerConfig() ports.SchedulerConfig {
	return ports.SchedulerConfig{
		AlertCheckInterval:   c.config.Scheduler.AlertCheckInterval,
		TimelineTickInterval: c.config.Scheduler.TimelineTickInterval,
	}
}

// GetPaymentConfig returns payment simulation settings
func (c *ConfigProviderAdapter) GetPaymentConfig() ports.PaymentConfig {
	return ports.PaymentConfig{
		ProcessingDelay: c.config.Payment.ProcessingDelay,
	}
}
