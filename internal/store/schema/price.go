package schema

import "time"

// Price represents the prices table - the latest quote per (price feed id, currency)
type Price struct {
	PriceFeedID string    `gorm:"column:price_feed_id;primaryKey;type:text"`
	Currency    string    `gorm:"column:currency;primaryKey;type:text"`
	Value       float64   `gorm:"column:value;not null;type:double precision"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Price model
func (Price) TableName() string {
	return "prices"
}
