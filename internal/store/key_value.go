package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-portfolio/internal/store/schema"
)

// GetKeyValue retrieves a key-value entry, nil when absent
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (*schema.KeyValueStore, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get key-value: %w", err)
	}

	return &kv, nil
}

// SetKeyValue stores a key-value entry with an optional expiry
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string, expiresAt *time.Time) error {
	kv := schema.KeyValueStore{
		Key:       key,
		Value:     value,
		ExpiresAt: expiresAt,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}
