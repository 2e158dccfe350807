package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gin-gonic/gin"
	"weathermap.app/internal/adapters/api"
	"weathermap.app/internal/adapters/infrastructure"
	"weathermap.app/internal/config"
	"weathermap.app/internal/core/dashboard"
	"weathermap.app/internal/core/layer"
	"weathermap.app/internal/core/mapview"
	"weathermap.app/internal/core/payment"
	"weathermap.app/internal/core/subscription"
	"weathermap.app/internal/core/timeline"
	"weathermap.app/internal/core/weather"
	"weathermap.app/pkg/logger"
)

type Application struct {
	config    *config.Config
	container *DependencyContainer

	dashboard  *dashboard.UseCase
	httpServer *api.HTTPServerAdapter

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewApplication loads configuration from the environment and wires every component
func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(log.Logger)

	container, err := NewDependencyContainer(cfg, DependencyConfig{Logger: log})
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	return NewApplicationWithDependencies(cfg, container)
}

// NewApplicationWithDependencies creates an application with provided dependencies (for testing)
func NewApplicationWithDependencies(cfg *config.Config, container *DependencyContainer) (*Application, error) {
	a := &Application{
		config:    cfg,
		container: container,
	}

	if err := a.initializeUseCases(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := a.initializeAdapters(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return a, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")
	p := a.container.ApplicationPorts()

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		Provider: p.WeatherProvider,
		Logger:   p.Logger,
		Metrics:  p.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}

	mapUseCase, err := mapview.NewUseCase(mapview.UseCaseDependencies{
		Weather:    weatherUseCase,
		Geolocator: p.Geolocator,
		Config:     p.ConfigProvider,
		Logger:     p.Logger,
	})
	if err != nil {
		return fmt.Errorf("create map use case: %w", err)
	}

	layers, err := layer.NewRegistry(layer.RegistryDependencies{
		Config: p.ConfigProvider,
		Logger: p.Logger,
	})
	if err != nil {
		return fmt.Errorf("create layer registry: %w", err)
	}

	subscriptionUseCase, err := subscription.NewUseCase(subscription.UseCaseDependencies{
		Store:   p.CollectionStore,
		Random:  p.Random,
		Logger:  p.Logger,
		Metrics: p.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create subscription use case: %w", err)
	}

	paymentUseCase, err := payment.NewUseCase(payment.UseCaseDependencies{
		Store:   p.CollectionStore,
		Random:  p.Random,
		Config:  p.ConfigProvider,
		Logger:  p.Logger,
		Metrics: p.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create payment use case: %w", err)
	}

	timelineController, err := timeline.NewController(timeline.ControllerDependencies{
		Logger: p.Logger,
	})
	if err != nil {
		return fmt.Errorf("create timeline controller: %w", err)
	}

	a.dashboard, err = dashboard.NewUseCase(dashboard.UseCaseDependencies{
		Weather:       weatherUseCase,
		Map:           mapUseCase,
		Layers:        layers,
		Subscriptions: subscriptionUseCase,
		Payments:      paymentUseCase,
		Timeline:      timelineController,
		Scheduler:     p.Scheduler,
		Config:        p.ConfigProvider,
		Logger:        p.Logger,
	})
	if err != nil {
		return fmt.Errorf("create dashboard use case: %w", err)
	}

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")
	p := a.container.ApplicationPorts()

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		StorageChecker:    infrastructure.NewStorageHealthChecker(p.KeyValueStore, a.config.Storage.Type.String()),
		WeatherAPIChecker: infrastructure.NewWeatherAPIHealthChecker(p.WeatherProvider, p.ConfigProvider),
		ConfigProvider:    p.ConfigProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config:        api.ServerConfig{Port: a.config.Server.Port},
		Dashboard:     a.dashboard,
		HealthChecker: systemHealthChecker,
		Metrics:       p.Metrics,
		Logger:        p.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}
	a.httpServer = httpAdapter

	slog.Info("Adapters initialized successfully")
	return nil
}

// Start mounts the dashboard and serves HTTP until Shutdown. ctx bounds the
// recurring tasks started by the dashboard.
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if err := a.dashboard.Mount(ctx); err != nil {
		return fmt.Errorf("mount dashboard: %w", err)
	}

	return a.httpServer.Start()
}

// Shutdown drains HTTP requests, stops recurring tasks and closes the store.
// Calling it more than once is safe.
func (a *Application) Shutdown(ctx context.Context) error {
	a.shutdownOnce.Do(func() {
		slog.Info("Shutting down application...")

		if err := a.httpServer.Shutdown(ctx); err != nil {
			slog.Error("Error shutting down HTTP server", "error", err)
			a.shutdownErr = err
		}

		a.dashboard.Unmount()

		if err := a.container.Cleanup(); err != nil {
			slog.Warn("Error releasing resources", "error", err)
			if a.shutdownErr == nil {
				a.shutdownErr = err
			}
		}

		slog.Info("Application shutdown complete")
	})
	return a.shutdownErr
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.httpServer.GetRouter()
}

// Dashboard returns the dashboard use case for testing
func (a *Application) Dashboard() *dashboard.UseCase {
	return a.dashboard
}
