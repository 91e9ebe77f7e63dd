// Package kvstore implements ports.KeyValueStore on PostgreSQL through GORM.
// Each key maps to a single row; Put is an upsert that replaces the whole
// value, mirroring the durable key-value semantics of the host environment.
package kvstore

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordDTO is the database row for one stored key.
type RecordDTO struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"type:bytea"`
	UpdatedAt time.Time
}

// TableName specifies the database table for key-value records.
func (RecordDTO) TableName() string {
	return "kv_records"
}

// GormKeyValueStore is the PostgreSQL-backed key-value store.
type GormKeyValueStore struct {
	db *gorm.DB
}

// NewGormKeyValueStore creates a store over the given GORM connection.
func NewGormKeyValueStore(db *gorm.DB) *GormKeyValueStore {
	return &GormKeyValueStore{db: db}
}

// Get returns the value stored under key, or ports.ErrKeyNotFound.
func (s *GormKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var dto RecordDTO
	if err := s.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, err
	}

	return dto.Value, nil
}

// Put upserts the value under key, replacing any previous value.
func (s *GormKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	dto := RecordDTO{Key: key, Value: value, UpdatedAt: time.Now()}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&dto).Error
}
