package storage

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"weathermap.app/internal/config"
	"weathermap.app/pkg/errors"
)

// CollectionModel is one persisted collection document
type CollectionModel struct {
	Name      string `gorm:"primaryKey;size:128"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (CollectionModel) TableName() string {
	return "collections"
}

// OpenDatabase opens a gorm connection for the configured driver
func OpenDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("database config cannot be nil", nil)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.GetDSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, errors.NewConfigurationError("unsupported database driver: "+cfg.Driver, nil)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, errors.NewStorageError("failed to connect to database", err)
	}
	return db, nil
}

// GormStore implements KeyValueStore on a single collections table
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the collections table and returns the store
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, errors.NewConfigurationError("database connection cannot be nil", nil)
	}
	if err := db.AutoMigrate(&CollectionModel{}); err != nil {
		return nil, errors.NewStorageError("failed to migrate collections table", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("storage key cannot be empty")
	}

	var model CollectionModel
	result := s.db.WithContext(ctx).Where("name = ?", key).Limit(1).Find(&model)
	if result.Error != nil {
		return nil, errors.NewStorageError("failed to read collection", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.NewNotFoundError("collection not found")
	}

	return model.Data, nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.NewValidationError("storage key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("storage value cannot be nil")
	}

	model := CollectionModel{Name: key, Data: value, UpdatedAt: time.Now()}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&model)
	if result.Error != nil {
		return errors.NewStorageError("failed to write collection", result.Error)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("storage key cannot be empty")
	}

	if err := s.db.WithContext(ctx).Where("name = ?", key).Delete(&CollectionModel{}).Error; err != nil {
		return errors.NewStorageError("failed to delete collection", err)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.NewStorageError("failed to get database handle", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.NewStorageError("database ping failed", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.NewStorageError("failed to get database handle", err)
	}
	return sqlDB.Close()
}

// DB exposes the connection for health checks
func (s *GormStore) DB() *gorm.DB {
	return s.db
}
