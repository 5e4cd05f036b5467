package memory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/graphflow-ai/graphflow/types"
)

// sqlRecord is the key/value row schema.
type sqlRecord struct {
	Key       string `gorm:"primaryKey;size:512"`
	Value     []byte
	UpdatedAt time.Time
}

func (sqlRecord) TableName() string { return "memory_records" }

// SQLStore is a sqlite-backed Store for single-node persistence.
// Values are JSON-encoded, as with RedisStore.
type SQLStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSQLStore opens (or creates) the sqlite database at path and migrates
// the record table. Use ":memory:" for an ephemeral store.
func NewSQLStore(path string, logger *zap.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, types.NewError(types.ErrMemoryError, "failed to open sqlite database").WithCause(err)
	}
	if err := db.AutoMigrate(&sqlRecord{}); err != nil {
		return nil, types.NewError(types.ErrMemoryError, "failed to migrate memory schema").WithCause(err)
	}

	logger.Info("sql memory store initialized", zap.String("path", path))

	return &SQLStore{
		db:     db,
		logger: logger.With(zap.String("component", "memory_sql")),
	}, nil
}

func (s *SQLStore) Store(ctx context.Context, key string, value any) error {
	if key == "" {
		return types.NewError(types.ErrMemoryError, "key is required")
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return types.NewError(types.ErrMemoryError, "failed to encode value").WithCause(err)
	}

	rec := sqlRecord{Key: key, Value: payload, UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return types.NewError(types.ErrMemoryError, "sqlite upsert failed").WithCause(err)
	}
	return nil
}

func (s *SQLStore) Retrieve(ctx context.Context, key string) (any, bool, error) {
	if key == "" {
		return nil, false, types.NewError(types.ErrMemoryError, "key is required")
	}

	var rec sqlRecord
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, types.NewError(types.ErrMemoryError, "sqlite query failed").WithCause(err)
	}

	var value any
	if err := json.Unmarshal(rec.Value, &value); err != nil {
		return nil, false, types.NewError(types.ErrMemoryError, "failed to decode value").WithCause(err)
	}
	return value, true, nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return types.NewError(types.ErrMemoryError, "key is required")
	}
	if err := s.db.WithContext(ctx).Delete(&sqlRecord{}, "key = ?", key).Error; err != nil {
		return types.NewError(types.ErrMemoryError, "sqlite delete failed").WithCause(err)
	}
	return nil
}
