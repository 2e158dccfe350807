package ports

import "time"

// WeatherConfig represents weather provider configuration
type WeatherConfig struct {
	APIKey      string
	TileBaseURL string
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
}

// StorageConfig represents persistence configuration
type StorageConfig struct {
	Type string
}

// MapConfig represents the initial map view and the zoom used after locating the user
type MapConfig struct {
	DefaultLat  float64
	DefaultLon  float64
	DefaultZoom int
	UserZoom    int
}

// SchedulerConfig represents recurring task intervals
type SchedulerConfig struct {
	AlertCheckInterval   time.Duration
	TimelineTickInterval time.Duration
}

// PaymentConfig represents payment simulation settings
type PaymentConfig struct {
	ProcessingDelay time.Duration
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetServerConfig() ServerConfig
	GetStorageConfig() StorageConfig
	GetMapConfig() MapConfig
	GetSchedulerConfig() SchedulerConfig
	GetPaymentConfig() PaymentConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordWeatherRequest(kind string, success bool, duration time.Duration)
	RecordPayment(planID, status string)
	RecordAlert(severity string)
	RecordStoreOperation(operation string, success bool, duration time.Duration)
}
