package schema

import "time"

// Network represents the networks table - the static set of supported chains
type Network struct {
	// ID is the EVM chain id (1 for Ethereum, 43114 for Avalanche)
	ID int `gorm:"column:id;primaryKey;autoIncrement:false"`
	// Slug is the short lower-case network name
	Slug string `gorm:"column:slug;not null;type:text"`
	// Name is the display name
	Name string `gorm:"column:name;not null;type:text"`
	// PriceFeedPlatform is the platform key used by the price provider
	PriceFeedPlatform string    `gorm:"column:price_feed_platform;not null;type:text"`
	CreatedAt         time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Network model
func (Network) TableName() string {
	return "networks"
}
