package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weathermap.app/pkg/errors"
)

const (
	maxRedisDB    = 15
	maxPortNumber = 65535
	maxMapZoom    = 19
)

// Config represents the application configuration structure
type Config struct {
	Server      ServerConfig      `split_words:"true"`
	Weather     WeatherConfig     `split_words:"true"`
	Storage     StorageConfig     `split_words:"true"`
	Geolocation GeolocationConfig `split_words:"true"`
	Map         MapConfig         `split_words:"true"`
	Scheduler   SchedulerConfig   `split_words:"true"`
	Payment     PaymentConfig     `split_words:"true"`
	LogLevel    string            `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type WeatherConfig struct {
	APIKey         string        `envconfig:"OPENWEATHERMAP_API_KEY"`
	BaseURL        string        `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	TileBaseURL    string        `envconfig:"WEATHER_TILE_BASE_URL" default:"https://tile.openweathermap.org/map"`
	IconBaseURL    string        `envconfig:"WEATHER_ICON_BASE_URL" default:"https://openweathermap.org/img/wn"`
	RequestTimeout time.Duration `envconfig:"WEATHER_REQUEST_TIMEOUT" default:"10s"`
	RateLimitRPS   float64       `envconfig:"WEATHER_RATE_LIMIT_RPS" default:"0"`
	RateLimitBurst int           `envconfig:"WEATHER_RATE_LIMIT_BURST" default:"1"`
	EnableLogging  bool          `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath    string        `envconfig:"WEATHER_LOG_FILE_PATH" default:""`
}

// StorageType selects the backend for persisted collections
type StorageType int

const (
	StorageTypeUnknown StorageType = iota
	StorageTypeMemory
	StorageTypeRedis
	StorageTypeDatabase
)

// String returns the string representation of storage type
func (s StorageType) String() string {
	switch s {
	case StorageTypeMemory:
		return "memory"
	case StorageTypeRedis:
		return "redis"
	case StorageTypeDatabase:
		return "database"
	default:
		return "unknown"
	}
}

// IsValid checks if the storage type is valid
func (s StorageType) IsValid() bool {
	return s == StorageTypeMemory || s == StorageTypeRedis || s == StorageTypeDatabase
}

// StorageTypeFromString converts string to StorageType enum
func StorageTypeFromString(s string) StorageType {
	switch strings.ToLower(s) {
	case "memory":
		return StorageTypeMemory
	case "redis":
		return StorageTypeRedis
	case "database", "db":
		return StorageTypeDatabase
	default:
		return StorageTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (s *StorageType) UnmarshalText(text []byte) error {
	*s = StorageTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (s StorageType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type StorageConfig struct {
	Type     StorageType    `envconfig:"STORAGE_TYPE" default:"memory"`
	Redis    RedisConfig    `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	KeyPrefix    string `envconfig:"REDIS_KEY_PREFIX" default:"collection:"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type DatabaseConfig struct {
	Driver     string `envconfig:"DB_DRIVER" default:"postgres"`
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       int    `envconfig:"DB_PORT" default:"5432"`
	User       string `envconfig:"DB_USER" default:"postgres"`
	Password   string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name       string `envconfig:"DB_NAME" default:"weathermap"`
	SSLMode    string `envconfig:"DB_SSL_MODE" default:"disable"`
	SQLitePath string `envconfig:"DB_SQLITE_PATH" default:"weathermap.db"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type GeolocationConfig struct {
	Provider  string        `envconfig:"GEOLOCATION_PROVIDER" default:"none"`
	URL       string        `envconfig:"GEOLOCATION_URL" default:"http://ip-api.com/json"`
	Timeout   time.Duration `envconfig:"GEOLOCATION_TIMEOUT" default:"5s"`
	StaticLat float64       `envconfig:"GEOLOCATION_STATIC_LAT" default:"0"`
	StaticLon float64       `envconfig:"GEOLOCATION_STATIC_LON" default:"0"`
}

type MapConfig struct {
	DefaultLat  float64 `envconfig:"MAP_DEFAULT_LAT" default:"50.4501"`
	DefaultLon  float64 `envconfig:"MAP_DEFAULT_LON" default:"30.5234"`
	DefaultZoom int     `envconfig:"MAP_DEFAULT_ZOOM" default:"6"`
	UserZoom    int     `envconfig:"MAP_USER_ZOOM" default:"12"`
}

type SchedulerConfig struct {
	AlertCheckInterval   time.Duration `envconfig:"ALERT_CHECK_INTERVAL" default:"30s"`
	TimelineTickInterval time.Duration `envconfig:"TIMELINE_TICK_INTERVAL" default:"2s"`
}

type PaymentConfig struct {
	ProcessingDelay time.Duration `envconfig:"PAYMENT_PROCESSING_DELAY" default:"2s"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Geolocation.Validate(); err != nil {
		return err
	}
	if err := c.Map.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.Payment.Validate(); err != nil {
		return err
	}
	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate does not require an API key: requests without one surface the provider's
// "Invalid API key" message to the dashboard.
func (w *WeatherConfig) Validate() error {
	if !isHTTPURL(w.BaseURL) {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_BASE_URL must start with http:// or https://", nil)
	}
	if !isHTTPURL(w.TileBaseURL) {
		return errors.NewConfigurationError("WEATHER_TILE_BASE_URL must start with http:// or https://", nil)
	}
	if !isHTTPURL(w.IconBaseURL) {
		return errors.NewConfigurationError("WEATHER_ICON_BASE_URL must start with http:// or https://", nil)
	}
	if w.RequestTimeout <= 0 {
		return errors.NewConfigurationError("WEATHER_REQUEST_TIMEOUT must be positive", nil)
	}
	if w.RateLimitRPS < 0 {
		return errors.NewConfigurationError("WEATHER_RATE_LIMIT_RPS cannot be negative", nil)
	}
	if w.RateLimitRPS > 0 && w.RateLimitBurst < 1 {
		return errors.NewConfigurationError("WEATHER_RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled", nil)
	}
	return nil
}

func (s *StorageConfig) Validate() error {
	switch s.Type {
	case StorageTypeMemory:
		return nil
	case StorageTypeRedis:
		return s.Redis.Validate()
	case StorageTypeDatabase:
		return s.Database.Validate()
	default:
		return errors.NewConfigurationError("STORAGE_TYPE must be one of: memory, redis, database", nil)
	}
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis storage", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite":
		if d.SQLitePath == "" {
			return errors.NewConfigurationError("DB_SQLITE_PATH cannot be empty when DB_DRIVER is sqlite", nil)
		}
		return nil
	case "postgres":
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: postgres, sqlite", nil)
	}

	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (g *GeolocationConfig) Validate() error {
	switch g.Provider {
	case "none", "static":
		return nil
	case "ip":
		if !isHTTPURL(g.URL) {
			return errors.NewConfigurationError("GEOLOCATION_URL must start with http:// or https://", nil)
		}
		if g.Timeout <= 0 {
			return errors.NewConfigurationError("GEOLOCATION_TIMEOUT must be positive", nil)
		}
		return nil
	default:
		return errors.NewConfigurationError("GEOLOCATION_PROVIDER must be one of: none, ip, static", nil)
	}
}

func (m *MapConfig) Validate() error {
	if m.DefaultLat < -90 || m.DefaultLat > 90 {
		return errors.NewConfigurationError("MAP_DEFAULT_LAT must be between -90 and 90", nil)
	}
	if m.DefaultLon < -180 || m.DefaultLon > 180 {
		return errors.NewConfigurationError("MAP_DEFAULT_LON must be between -180 and 180", nil)
	}
	if m.DefaultZoom < 0 || m.DefaultZoom > maxMapZoom {
		return errors.NewConfigurationError("MAP_DEFAULT_ZOOM must be between 0 and 19", nil)
	}
	if m.UserZoom < 0 || m.UserZoom > maxMapZoom {
		return errors.NewConfigurationError("MAP_USER_ZOOM must be between 0 and 19", nil)
	}
	return nil
}

func (s *SchedulerConfig) Validate() error {
	if s.AlertCheckInterval < time.Second {
		return errors.NewConfigurationError("ALERT_CHECK_INTERVAL must be at least 1s", nil)
	}
	if s.TimelineTickInterval < 100*time.Millisecond {
		return errors.NewConfigurationError("TIMELINE_TICK_INTERVAL must be at least 100ms", nil)
	}
	return nil
}

func (p *PaymentConfig) Validate() error {
	if p.ProcessingDelay < 0 {
		return errors.NewConfigurationError("PAYMENT_PROCESSING_DELAY cannot be negative", nil)
	}
	return nil
}
