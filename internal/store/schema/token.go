package schema

import (
	"time"
)

// TokenState represents whether a token's metadata has been resolved
type TokenState string

const (
	// TokenStatePlaceholder marks a token written before metadata resolved
	TokenStatePlaceholder TokenState = "placeholder"
	// TokenStateResolved marks a token whose metadata came from the price provider
	TokenStateResolved TokenState = "resolved"
)

// Token represents the tokens table - ERC-20 metadata keyed by (contract, network)
type Token struct {
	// Contract is the lower-cased contract address
	Contract string `gorm:"column:contract;primaryKey;type:text"`
	// NetworkID references the network the contract lives on
	NetworkID int `gorm:"column:network_id;primaryKey;autoIncrement:false"`
	// Symbol is the upper-cased ticker ("UNK" for placeholders)
	Symbol string `gorm:"column:symbol;not null;type:text"`
	// Name is the token name ("Unknown" for placeholders)
	Name string `gorm:"column:name;not null;type:text"`
	// Decimals is the number of base-unit decimals
	Decimals int `gorm:"column:decimals;not null"`
	// Logo is the small logo URL
	Logo *string `gorm:"column:logo;type:text"`
	// PriceFeedID is the price provider's identifier for this token
	PriceFeedID *string `gorm:"column:price_feed_id;type:text;index"`
	// State is placeholder until metadata resolves
	State     TokenState `gorm:"column:state;not null;type:text"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
