package storage

import (
	"fmt"

	"weathermap.app/internal/config"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

type StoreFactory struct{}

func NewStoreFactory() *StoreFactory {
	return &StoreFactory{}
}

// CreateStore builds the backend selected by STORAGE_TYPE
func (f *StoreFactory) CreateStore(cfg *config.StorageConfig) (ports.KeyValueStore, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("storage config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.StorageTypeMemory:
		return NewMemoryStore(), nil
	case config.StorageTypeRedis:
		return NewRedisStore(&cfg.Redis)
	case config.StorageTypeDatabase:
		db, err := OpenDatabase(&cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported storage type: %s", cfg.Type.String()), nil)
	}
}
