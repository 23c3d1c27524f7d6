package schema

import (
	"time"
)

// Balance represents the balances table - the latest raw ERC-20 balance per (address, contract, network)
type Balance struct {
	// AddressID references the wallet address
	AddressID string `gorm:"column:address_id;primaryKey;type:text"`
	// Contract is the lower-cased token contract address
	Contract string `gorm:"column:contract;primaryKey;type:text"`
	// NetworkID references the network
	NetworkID int `gorm:"column:network_id;primaryKey;autoIncrement:false"`
	// RawBalance is the balance in base units (stored as numeric to support up to 78 digits)
	RawBalance string `gorm:"column:raw_balance;not null;type:numeric(78,0)"`
	// UpdatedAt is the time of the fetch that produced RawBalance
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Balance model
func (Balance) TableName() string {
	return "balances"
}
