package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"weathermap.app/internal/adapters/external"
	"weathermap.app/internal/adapters/infrastructure"
	"weathermap.app/internal/adapters/scheduler"
	"weathermap.app/internal/adapters/storage"
	"weathermap.app/internal/config"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/logger"
)

// ApplicationPorts bundles every adapter the use cases depend on
type ApplicationPorts struct {
	WeatherProvider ports.WeatherProvider
	Geolocator      ports.Geolocator
	KeyValueStore   ports.KeyValueStore
	CollectionStore ports.CollectionStore
	Scheduler       ports.TaskScheduler
	Random          ports.RandomSource
	ConfigProvider  ports.ConfigProvider
	Logger          ports.Logger
	Metrics         *infrastructure.PrometheusMetrics
}

type DependencyContainer struct {
	config     *config.Config
	ports      *ApplicationPorts
	fileLogger *infrastructure.FileLoggerAdapter
}

// DependencyConfig carries what cannot come from the environment
type DependencyConfig struct {
	// Logger is the process logger; nil means slog's default
	Logger *logger.Logger
	// Registerer receives the Prometheus collectors; nil means the default registry
	Registerer prometheus.Registerer
	// WeatherProvider replaces the OpenWeatherMap client when set
	WeatherProvider ports.WeatherProvider
	// Random replaces the math/rand source when set
	Random ports.RandomSource
}

func NewDependencyContainer(appConfig *config.Config, depConfig DependencyConfig) (*DependencyContainer, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	c := &DependencyContainer{config: appConfig}
	if err := c.initializePorts(depConfig); err != nil {
		_ = c.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}
	return c, nil
}

func (c *DependencyContainer) initializePorts(depConfig DependencyConfig) error {
	slog.Info("Initializing ports...")

	var log ports.Logger = infrastructure.NewSlogLoggerAdapter(depConfig.Logger)

	registerer := depConfig.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	metrics := infrastructure.NewPrometheusMetrics(registerer)

	kvStore, err := storage.NewStoreFactory().CreateStore(&c.config.Storage)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	slog.Info("Storage initialized", "type", c.config.Storage.Type.String())

	weatherLogger := log
	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath, strings.ToUpper(c.config.LogLevel))
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			c.fileLogger = fileLogger
			weatherLogger = infrastructure.NewMultiLogger(log, fileLogger)
			slog.Info("File logging enabled", "path", c.config.Weather.LogFilePath)
		}
	}

	provider := depConfig.WeatherProvider
	if provider == nil {
		provider = external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
			APIKey:         c.config.Weather.APIKey,
			BaseURL:        c.config.Weather.BaseURL,
			IconBaseURL:    c.config.Weather.IconBaseURL,
			Timeout:        c.config.Weather.RequestTimeout,
			RateLimitRPS:   c.config.Weather.RateLimitRPS,
			RateLimitBurst: c.config.Weather.RateLimitBurst,
			Logger:         log,
		})
	}
	if c.config.Weather.EnableLogging {
		provider = external.NewWeatherProviderLoggingDecorator(provider, weatherLogger)
		slog.Info("Weather provider logging enabled")
	}

	geolocator, err := external.NewGeolocator(&c.config.Geolocation, log)
	if err != nil {
		_ = kvStore.Close()
		return fmt.Errorf("create geolocator: %w", err)
	}

	random := depConfig.Random
	if random == nil {
		random = infrastructure.NewMathRandom()
	}

	c.ports = &ApplicationPorts{
		WeatherProvider: provider,
		Geolocator:      geolocator,
		KeyValueStore:   kvStore,
		CollectionStore: storage.NewJSONCollectionStore(kvStore, metrics),
		Scheduler:       scheduler.NewGocronScheduler(log),
		Random:          random,
		ConfigProvider:  infrastructure.NewConfigProviderAdapter(c.config),
		Logger:          log,
		Metrics:         metrics,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ApplicationPorts {
	return c.ports
}

// Cleanup closes the store and the weather request log
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	if c.ports != nil && c.ports.KeyValueStore != nil {
		if err := c.ports.KeyValueStore.Close(); err != nil {
			firstErr = fmt.Errorf("close store: %w", err)
		}
	}
	if c.fileLogger != nil {
		if err := c.fileLogger.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close file logger: %w", err)
		}
	}
	return firstErr
}
