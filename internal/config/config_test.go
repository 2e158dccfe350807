package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathermap.app/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "https://api.openweathermap.org/data/2.5", config.Weather.BaseURL)
		assert.Equal(t, "https://tile.openweathermap.org/map", config.Weather.TileBaseURL)
		assert.Equal(t, "https://openweathermap.org/img/wn", config.Weather.IconBaseURL)
		assert.Equal(t, StorageTypeMemory, config.Storage.Type)
		assert.Equal(t, "none", config.Geolocation.Provider)
		assert.Equal(t, 50.4501, config.Map.DefaultLat)
		assert.Equal(t, 30.5234, config.Map.DefaultLon)
		assert.Equal(t, 6, config.Map.DefaultZoom)
		assert.Equal(t, 12, config.Map.UserZoom)
		assert.Equal(t, 30*time.Second, config.Scheduler.AlertCheckInterval)
		assert.Equal(t, 2*time.Second, config.Scheduler.TimelineTickInterval)
		assert.Equal(t, 2*time.Second, config.Payment.ProcessingDelay)
		assert.Equal(t, "info", config.LogLevel)
	})

	t.Run("CustomValues", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("OPENWEATHERMAP_API_KEY", "owm-key")
		t.Setenv("STORAGE_TYPE", "redis")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("ALERT_CHECK_INTERVAL", "1m")
		t.Setenv("PAYMENT_PROCESSING_DELAY", "0s")
		t.Setenv("GEOLOCATION_PROVIDER", "static")
		t.Setenv("GEOLOCATION_STATIC_LAT", "48.8566")

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "owm-key", config.Weather.APIKey)
		assert.Equal(t, StorageTypeRedis, config.Storage.Type)
		assert.Equal(t, "redis:6379", config.Storage.Redis.Addr)
		assert.Equal(t, time.Minute, config.Scheduler.AlertCheckInterval)
		assert.Equal(t, time.Duration(0), config.Payment.ProcessingDelay)
		assert.Equal(t, 48.8566, config.Geolocation.StaticLat)
	})

	t.Run("InvalidStorageType", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "s3")

		config, err := LoadConfig()

		assert.Nil(t, config)
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "STORAGE_TYPE must be one of")
	})
}

func TestStorageTypeFromString(t *testing.T) {
	assert.Equal(t, StorageTypeMemory, StorageTypeFromString("memory"))
	assert.Equal(t, StorageTypeRedis, StorageTypeFromString("REDIS"))
	assert.Equal(t, StorageTypeDatabase, StorageTypeFromString("database"))
	assert.Equal(t, StorageTypeDatabase, StorageTypeFromString("db"))
	assert.Equal(t, StorageTypeUnknown, StorageTypeFromString("file"))
	assert.Equal(t, "database", StorageTypeDatabase.String())
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Weather: WeatherConfig{
			BaseURL:        "https://api.openweathermap.org/data/2.5",
			TileBaseURL:    "https://tile.openweathermap.org/map",
			IconBaseURL:    "https://openweathermap.org/img/wn",
			RequestTimeout: 10 * time.Second,
			RateLimitBurst: 1,
		},
		Storage:     StorageConfig{Type: StorageTypeMemory},
		Geolocation: GeolocationConfig{Provider: "none"},
		Map:         MapConfig{DefaultLat: 50.4501, DefaultLon: 30.5234, DefaultZoom: 6, UserZoom: 12},
		Scheduler:   SchedulerConfig{AlertCheckInterval: 30 * time.Second, TimelineTickInterval: 2 * time.Second},
		Payment:     PaymentConfig{ProcessingDelay: 2 * time.Second},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectedErr string
	}{
		{
			name:   "Valid",
			mutate: func(c *Config) {},
		},
		{
			name:        "PortOutOfRange",
			mutate:      func(c *Config) { c.Server.Port = 70000 },
			expectedErr: "SERVER_PORT must be between 1 and 65535",
		},
		{
			name:        "WeatherBaseURLWithoutScheme",
			mutate:      func(c *Config) { c.Weather.BaseURL = "api.openweathermap.org" },
			expectedErr: "OPENWEATHERMAP_API_BASE_URL must start with http:// or https://",
		},
		{
			name:        "NegativeRateLimit",
			mutate:      func(c *Config) { c.Weather.RateLimitRPS = -1 },
			expectedErr: "WEATHER_RATE_LIMIT_RPS cannot be negative",
		},
		{
			name: "RateLimitWithoutBurst",
			mutate: func(c *Config) {
				c.Weather.RateLimitRPS = 5
				c.Weather.RateLimitBurst = 0
			},
			expectedErr: "WEATHER_RATE_LIMIT_BURST must be at least 1",
		},
		{
			name: "RedisWithoutAddr",
			mutate: func(c *Config) {
				c.Storage.Type = StorageTypeRedis
				c.Storage.Redis = RedisConfig{DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1}
			},
			expectedErr: "REDIS_ADDR cannot be empty",
		},
		{
			name: "DatabaseUnknownDriver",
			mutate: func(c *Config) {
				c.Storage.Type = StorageTypeDatabase
				c.Storage.Database = DatabaseConfig{Driver: "mysql"}
			},
			expectedErr: "DB_DRIVER must be one of: postgres, sqlite",
		},
		{
			name: "DatabaseSQLiteOnlyNeedsPath",
			mutate: func(c *Config) {
				c.Storage.Type = StorageTypeDatabase
				c.Storage.Database = DatabaseConfig{Driver: "sqlite", SQLitePath: "file::memory:"}
			},
		},
		{
			name: "DatabaseBadSSLMode",
			mutate: func(c *Config) {
				c.Storage.Type = StorageTypeDatabase
				c.Storage.Database = DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, User: "u", Name: "n", SSLMode: "maybe"}
			},
			expectedErr: "DB_SSL_MODE must be one of",
		},
		{
			name:        "UnknownGeolocationProvider",
			mutate:      func(c *Config) { c.Geolocation.Provider = "gps" },
			expectedErr: "GEOLOCATION_PROVIDER must be one of: none, ip, static",
		},
		{
			name: "IPGeolocationNeedsURL",
			mutate: func(c *Config) {
				c.Geolocation = GeolocationConfig{Provider: "ip", URL: "", Timeout: time.Second}
			},
			expectedErr: "GEOLOCATION_URL must start with http:// or https://",
		},
		{
			name:        "LatitudeOutOfRange",
			mutate:      func(c *Config) { c.Map.DefaultLat = 91 },
			expectedErr: "MAP_DEFAULT_LAT must be between -90 and 90",
		},
		{
			name:        "AlertIntervalTooShort",
			mutate:      func(c *Config) { c.Scheduler.AlertCheckInterval = 10 * time.Millisecond },
			expectedErr: "ALERT_CHECK_INTERVAL must be at least 1s",
		},
		{
			name:        "NegativePaymentDelay",
			mutate:      func(c *Config) { c.Payment.ProcessingDelay = -time.Second },
			expectedErr: "PAYMENT_PROCESSING_DELAY cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "weathermap", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=weathermap sslmode=disable", cfg.GetDSN())
}
