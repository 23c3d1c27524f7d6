package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/store/schema"
)

// NetworkBalances is the set of balances fetched on one network
type NetworkBalances struct {
	NetworkID domain.NetworkID
	Balances  []domain.RawBalance
}

// UpsertBalancesInput is every network's balances for one address
type UpsertBalancesInput struct {
	Address  string
	Networks []NetworkBalances
}

// UpsertTokenInput is resolved token metadata
type UpsertTokenInput struct {
	Contract    string
	NetworkID   domain.NetworkID
	Symbol      string
	Name        string
	Decimals    int
	Logo        *string
	PriceFeedID *string
}

// UpsertPriceInput is a single price quote
type UpsertPriceInput struct {
	PriceFeedID string
	Currency    string
	Value       float64
}

// TokenKey identifies a token row
type TokenKey struct {
	Contract  string
	NetworkID domain.NetworkID
}

// Stats holds row counts per table
type Stats struct {
	Networks  int64 `json:"networks"`
	Addresses int64 `json:"addresses"`
	Balances  int64 `json:"balances"`
	Tokens    int64 `json:"tokens"`
	Prices    int64 `json:"prices"`
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// SeedNetworks inserts or refreshes the supported network rows
	SeedNetworks(ctx context.Context, networks []domain.Network) error
	// UpsertBalances creates the address row, placeholder tokens and the latest balances
	// of every network in a single transaction
	UpsertBalances(ctx context.Context, input UpsertBalancesInput) error
	// GetToken retrieves a token by contract and network
	GetToken(ctx context.Context, contract string, networkID domain.NetworkID) (*schema.Token, error)
	// GetTokensByKeys retrieves tokens for the given keys
	GetTokensByKeys(ctx context.Context, keys []TokenKey) ([]schema.Token, error)
	// EnsurePlaceholderToken inserts a placeholder token unless a row already exists
	EnsurePlaceholderToken(ctx context.Context, contract string, networkID domain.NetworkID) error
	// UpsertResolvedToken inserts or overwrites a token with resolved metadata
	UpsertResolvedToken(ctx context.Context, input UpsertTokenInput) error
	// UpsertPrice inserts or overwrites a price quote
	UpsertPrice(ctx context.Context, input UpsertPriceInput) error
	// GetPricesByFeedIDs retrieves prices for the given feed ids in a currency
	GetPricesByFeedIDs(ctx context.Context, priceFeedIDs []string, currency string) ([]schema.Price, error)
	// GetBalancesByAddress retrieves every balance row of an address
	GetBalancesByAddress(ctx context.Context, address string) ([]schema.Balance, error)
	// GetStats counts rows per table
	GetStats(ctx context.Context) (*Stats, error)
	// GetKeyValue retrieves a key-value entry, nil when absent
	GetKeyValue(ctx context.Context, key string) (*schema.KeyValueStore, error)
	// SetKeyValue stores a key-value entry with an optional expiry
	SetKeyValue(ctx context.Context, key string, value string, expiresAt *time.Time) error
}

// ToDomainToken converts a token row into its domain representation
func ToDomainToken(t schema.Token) domain.Token {
	state := domain.TokenStatePlaceholder
	if t.State == schema.TokenStateResolved {
		state = domain.TokenStateResolved
	}

	return domain.Token{
		Contract:    t.Contract,
		NetworkID:   domain.NetworkID(t.NetworkID),
		Symbol:      t.Symbol,
		Name:        t.Name,
		Decimals:    t.Decimals,
		Logo:        t.Logo,
		PriceFeedID: t.PriceFeedID,
		State:       state,
	}
}
