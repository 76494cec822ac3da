package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catering_manager/internal/models"
	"catering_manager/internal/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore keeps each collection as one row of kv_records.
type KVStore struct {
	db *gorm.DB
}

var _ store.Store = (*KVStore)(nil)

func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record models.KVRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return []byte(record.Value), nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	record := models.KVRecord{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&models.KVRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
