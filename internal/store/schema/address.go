package schema

import "time"

// Address represents the addresses table - wallets that have been ingested at least once
type Address struct {
	// ID is the EIP-55 checksummed wallet address
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Label is an optional human readable label
	Label     *string   `gorm:"column:label;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Address model
func (Address) TableName() string {
	return "addresses"
}
