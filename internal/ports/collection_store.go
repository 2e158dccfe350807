package ports

import "context"

// KeyValueStore is the raw byte storage behind persisted collections.
// Get returns a NotFound AppError when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// CollectionStore reads and writes whole named collections.
// Every Save replaces the stored document for that name.
type CollectionStore interface {
	Load(ctx context.Context, name string, target interface{}) (bool, error)
	Save(ctx context.Context, name string, value interface{}) error
	Remove(ctx context.Context, name string) error
}

// Collection names shared by every backend
const (
	CollectionSubscriptions  = "weather_subscriptions"
	CollectionAlerts         = "weather_alerts"
	CollectionPayments       = "weather_payments"
	CollectionPaymentMethods = "weather_payment_methods"
	CollectionUserPlan       = "weather_user_plan"
)
