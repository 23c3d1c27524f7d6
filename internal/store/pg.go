package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize returns how many records fit into one INSERT without exceeding
// PostgreSQL's 65535 bind parameter limit, keeping headroom for ON CONFLICT and timestamps.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000 // Total parameter headroom for batch-level overhead

	// Reserve headroom from total available parameters
	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// SeedNetworks inserts or refreshes the supported network rows
func (s *pgStore) SeedNetworks(ctx context.Context, networks []domain.Network) error {
	if len(networks) == 0 {
		return nil
	}

	rows := make([]schema.Network, 0, len(networks))
	for _, n := range networks {
		rows = append(rows, schema.Network{
			ID:                int(n.ID),
			Slug:              n.Slug,
			Name:              n.Name,
			PriceFeedPlatform: n.PriceFeedPlatform,
			UpdatedAt:         time.Now(),
		})
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"slug", "name", "price_feed_platform", "updated_at"}),
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to seed networks: %w", err)
	}

	return nil
}

// UpsertBalances writes the address, placeholder tokens for every referenced contract and then the
// balances, all inside one transaction so a failure on any network leaves nothing behind.
// Contracts repeated within a network collapse to their last occurrence.
func (s *pgStore) UpsertBalances(ctx context.Context, input UpsertBalancesInput) error {
	now := time.Now()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		address := schema.Address{ID: input.Address}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"updated_at": now}),
		}).Create(&address).Error
		if err != nil {
			return fmt.Errorf("failed to ensure address: %w", err)
		}

		for _, network := range input.Networks {
			if err := upsertNetworkBalances(tx, input.Address, network, now); err != nil {
				return fmt.Errorf("network %d: %w", network.NetworkID, err)
			}
		}

		return nil
	})
}

func upsertNetworkBalances(tx *gorm.DB, address string, network NetworkBalances, now time.Time) error {
	if len(network.Balances) == 0 {
		return nil
	}

	index := make(map[string]int, len(network.Balances))
	balances := make([]schema.Balance, 0, len(network.Balances))
	for _, b := range network.Balances {
		contract := domain.NormalizeContract(b.Contract)
		row := schema.Balance{
			AddressID:  address,
			Contract:   contract,
			NetworkID:  int(network.NetworkID),
			RawBalance: b.Balance,
			UpdatedAt:  now,
		}
		if i, ok := index[contract]; ok {
			balances[i] = row
			continue
		}
		index[contract] = len(balances)
		balances = append(balances, row)
	}

	tokens := make([]schema.Token, 0, len(balances))
	for _, b := range balances {
		tokens = append(tokens, placeholderRow(b.Contract, network.NetworkID, now))
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contract"}, {Name: "network_id"}},
		DoNothing: true,
	}).CreateInBatches(&tokens, calculateSafeBatchSize(len(tokens), 9)).Error
	if err != nil {
		return fmt.Errorf("failed to create placeholder tokens: %w", err)
	}

	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address_id"}, {Name: "contract"}, {Name: "network_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"raw_balance", "updated_at"}),
	}).CreateInBatches(&balances, calculateSafeBatchSize(len(balances), 5)).Error
	if err != nil {
		return fmt.Errorf("failed to upsert balances: %w", err)
	}

	return nil
}

// GetToken retrieves a token by contract and network
func (s *pgStore) GetToken(ctx context.Context, contract string, networkID domain.NetworkID) (*schema.Token, error) {
	var token schema.Token
	err := s.db.WithContext(ctx).
		Where("contract = ? AND network_id = ?", domain.NormalizeContract(contract), int(networkID)).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return &token, nil
}

// GetTokensByKeys retrieves tokens for the given keys
func (s *pgStore) GetTokensByKeys(ctx context.Context, keys []TokenKey) ([]schema.Token, error) {
	if len(keys) == 0 {
		return []schema.Token{}, nil
	}

	pairs := make([][]interface{}, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, []interface{}{domain.NormalizeContract(k.Contract), int(k.NetworkID)})
	}

	var tokens []schema.Token
	err := s.db.WithContext(ctx).Where("(contract, network_id) IN ?", pairs).Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens: %w", err)
	}

	return tokens, nil
}

// EnsurePlaceholderToken inserts a placeholder token unless a row already exists
func (s *pgStore) EnsurePlaceholderToken(ctx context.Context, contract string, networkID domain.NetworkID) error {
	row := placeholderRow(contract, networkID, time.Now())
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contract"}, {Name: "network_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to ensure placeholder token: %w", err)
	}

	return nil
}

// UpsertResolvedToken inserts or overwrites a token with resolved metadata
func (s *pgStore) UpsertResolvedToken(ctx context.Context, input UpsertTokenInput) error {
	row := schema.Token{
		Contract:    domain.NormalizeContract(input.Contract),
		NetworkID:   int(input.NetworkID),
		Symbol:      input.Symbol,
		Name:        input.Name,
		Decimals:    input.Decimals,
		Logo:        input.Logo,
		PriceFeedID: input.PriceFeedID,
		State:       schema.TokenStateResolved,
		UpdatedAt:   time.Now(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contract"}, {Name: "network_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"symbol", "name", "decimals", "logo", "price_feed_id", "state", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert token: %w", err)
	}

	return nil
}

// UpsertPrice inserts or overwrites a price quote
func (s *pgStore) UpsertPrice(ctx context.Context, input UpsertPriceInput) error {
	row := schema.Price{
		PriceFeedID: input.PriceFeedID,
		Currency:    input.Currency,
		Value:       input.Value,
		UpdatedAt:   time.Now(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "price_feed_id"}, {Name: "currency"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert price: %w", err)
	}

	return nil
}

// GetPricesByFeedIDs retrieves prices for the given feed ids in a currency
func (s *pgStore) GetPricesByFeedIDs(ctx context.Context, priceFeedIDs []string, currency string) ([]schema.Price, error) {
	if len(priceFeedIDs) == 0 {
		return []schema.Price{}, nil
	}

	var prices []schema.Price
	err := s.db.WithContext(ctx).
		Where("price_feed_id IN ? AND currency = ?", priceFeedIDs, currency).
		Find(&prices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get prices: %w", err)
	}

	return prices, nil
}

// GetBalancesByAddress retrieves every balance row of an address
func (s *pgStore) GetBalancesByAddress(ctx context.Context, address string) ([]schema.Balance, error) {
	var balances []schema.Balance
	err := s.db.WithContext(ctx).
		Where("address_id = ?", address).
		Order("network_id ASC, contract ASC").
		Find(&balances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}

	return balances, nil
}

// GetStats counts rows per table
func (s *pgStore) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&schema.Network{}, &stats.Networks},
		{&schema.Address{}, &stats.Addresses},
		{&schema.Balance{}, &stats.Balances},
		{&schema.Token{}, &stats.Tokens},
		{&schema.Price{}, &stats.Prices},
	}

	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}

	return &stats, nil
}

func placeholderRow(contract string, networkID domain.NetworkID, now time.Time) schema.Token {
	t := domain.PlaceholderToken(contract, networkID)
	return schema.Token{
		Contract:  t.Contract,
		NetworkID: int(t.NetworkID),
		Symbol:    t.Symbol,
		Name:      t.Name,
		Decimals:  t.Decimals,
		State:     schema.TokenStatePlaceholder,
		UpdatedAt: now,
	}
}
