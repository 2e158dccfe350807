package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/adapters/storage"
	"weathermap.app/internal/config"
	"weathermap.app/internal/mocks"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/logger"
)

func TestSlogLoggerAdapter_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := &logger.Logger{Logger: slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	adapter := NewSlogLoggerAdapter(l)

	adapter.Warn("Payment declined", ports.F("planID", "pro"), ports.F("error", fmt.Errorf("declined")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "Payment declined", entry["msg"])
	assert.Equal(t, "pro", entry["planID"])
	assert.Equal(t, "declined", entry["error"])
}

func TestMultiLogger_FansOut(t *testing.T) {
	first := mocks.NewMockLogger(t)
	second := mocks.NewMockLogger(t)
	for _, m := range []*mocks.MockLogger{first, second} {
		m.On("Info", "hello", mock.Anything).Once()
		m.On("Error", "oops", mock.Anything).Once()
	}

	multi := NewMultiLogger(first, second)
	multi.Info("hello", ports.F("k", "v"))
	multi.Error("oops")
}

func TestPrometheusMetrics_Records(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())

	m.RecordWeatherRequest("city", true, 120*time.Millisecond)
	m.RecordWeatherRequest("city", false, 80*time.Millisecond)
	m.RecordPayment("pro", "completed")
	m.RecordPayment("basic", "failed")
	m.RecordAlert("warning")
	m.RecordAlert("warning")
	m.RecordStoreOperation("save", true, time.Millisecond)
	m.RecordStoreOperation("save", false, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.weatherRequests.WithLabelValues("city", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.weatherRequests.WithLabelValues("city", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payments.WithLabelValues("pro", "completed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.alerts.WithLabelValues("warning")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("save", "false")))

	summary := m.Summary()
	assert.Equal(t, map[string]int64{"success": 1, "failure": 1}, summary["weather"])
	assert.Equal(t, map[string]int64{"completed": 1, "failed": 1}, summary["payments"])
	assert.Equal(t, map[string]int64{"warning": 2}, summary["alerts"])
	assert.Equal(t, map[string]int64{"operations": 2, "failures": 1}, summary["store"])
}

func TestPrometheusMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewPrometheusMetrics(prometheus.NewRegistry())
		NewPrometheusMetrics(prometheus.NewRegistry())
	})
}

type unreachableStore struct {
	*storage.MemoryStore
}

func (unreachableStore) Ping(context.Context) error {
	return fmt.Errorf("connection refused")
}

func TestStorageHealthChecker(t *testing.T) {
	healthy := NewStorageHealthChecker(storage.NewMemoryStore(), "memory").Check(context.Background())
	assert.Equal(t, "healthy", healthy.Status)
	assert.Equal(t, "memory", healthy.Details["type"])

	down := NewStorageHealthChecker(unreachableStore{storage.NewMemoryStore()}, "redis").Check(context.Background())
	assert.Equal(t, "unhealthy", down.Status)
	assert.Equal(t, "connection refused", down.Error)

	missing := NewStorageHealthChecker(nil, "database").Check(context.Background())
	assert.Equal(t, "unhealthy", missing.Status)
}

func TestWeatherAPIHealthChecker(t *testing.T) {
	provider := mocks.NewMockWeatherProvider(t)
	provider.On("GetProviderName").Return("openweathermap")

	withKey := mocks.NewMockConfigProvider(t)
	withKey.On("GetWeatherConfig").Return(ports.WeatherConfig{APIKey: "k"})
	status := NewWeatherAPIHealthChecker(provider, withKey).Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "openweathermap", status.Details["provider"])

	withoutKey := mocks.NewMockConfigProvider(t)
	withoutKey.On("GetWeatherConfig").Return(ports.WeatherConfig{})
	status = NewWeatherAPIHealthChecker(provider, withoutKey).Check(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, false, status.Details["apiKeyConfigured"])

	status = NewWeatherAPIHealthChecker(nil, nil).Check(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
}

func TestSystemHealthChecker_CheckAll(t *testing.T) {
	cfg := &config.Config{
		Storage:   config.StorageConfig{Type: config.StorageTypeRedis},
		Scheduler: config.SchedulerConfig{AlertCheckInterval: 30 * time.Second, TimelineTickInterval: 2 * time.Second},
	}
	checker := NewSystemHealthChecker(SystemHealthCheckerConfig{
		StorageChecker: NewStorageHealthChecker(storage.NewMemoryStore(), "memory"),
		ConfigProvider: NewConfigProviderAdapter(cfg),
	})

	results := checker.CheckAll(context.Background())

	require.Contains(t, results, "storage")
	require.Contains(t, results, "config")
	assert.NotContains(t, results, "weatherAPI")
	assert.Equal(t, "redis", results["config"].Details["storageType"])
	assert.Equal(t, "30s", results["config"].Details["alertCheckInterval"])
}

func TestConfigProviderAdapter(t *testing.T) {
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: 9090},
		Weather:   config.WeatherConfig{APIKey: "secret", TileBaseURL: "https://tiles"},
		Storage:   config.StorageConfig{Type: config.StorageTypeDatabase},
		Map:       config.MapConfig{DefaultLat: 1, DefaultLon: 2, DefaultZoom: 6, UserZoom: 12},
		Scheduler: config.SchedulerConfig{AlertCheckInterval: time.Minute, TimelineTickInterval: time.Second},
		Payment:   config.PaymentConfig{ProcessingDelay: 3 * time.Second},
	}
	adapter := NewConfigProviderAdapter(cfg)

	assert.Equal(t, ports.ServerConfig{Port: 9090}, adapter.GetServerConfig())
	assert.Equal(t, ports.WeatherConfig{APIKey: "secret", TileBaseURL: "https://tiles"}, adapter.GetWeatherConfig())
	assert.Equal(t, "database", adapter.GetStorageConfig().Type)
	assert.Equal(t, ports.MapConfig{DefaultLat: 1, DefaultLon: 2, DefaultZoom: 6, UserZoom: 12}, adapter.GetMapConfig())
	assert.Equal(t, time.Minute, adapter.GetSchedulerConfig().AlertCheckInterval)
	assert.Equal(t, 3*time.Second, adapter.GetPaymentConfig().ProcessingDelay)
}

func TestMathRandom_Range(t *testing.T) {
	r := NewMathRandom()
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}
