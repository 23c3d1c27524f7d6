package schema

import "time"

// KeyValueStore stores arbitrary key-value pairs with an optional expiry.
// Used as the response cache when redis is not configured.
type KeyValueStore struct {
	Key       string     `gorm:"primaryKey;type:text"`
	Value     string     `gorm:"type:text;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at;type:timestamptz"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (KeyValueStore) TableName() string {
	return "key_value_store"
}

// Expired reports whether the entry is past its expiry at now
func (kv KeyValueStore) Expired(now time.Time) bool {
	return kv.ExpiresAt != nil && !now.Before(*kv.ExpiresAt)
}
