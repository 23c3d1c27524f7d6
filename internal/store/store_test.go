package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

const testAddress = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

func buildTestBalances(n int, prefix string) []domain.RawBalance {
	balances := make([]domain.RawBalance, 0, n)
	for i := range n {
		balances = append(balances, domain.RawBalance{
			Contract: fmt.Sprintf("0x%s%038d", prefix, i),
			Balance:  fmt.Sprintf("%d000000", i+1),
		})
	}
	return balances
}

func stringPtr(s string) *string {
	return &s
}

func singleNetwork(address string, networkID domain.NetworkID, balances []domain.RawBalance) UpsertBalancesInput {
	return UpsertBalancesInput{
		Address:  address,
		Networks: []NetworkBalances{{NetworkID: networkID, Balances: balances}},
	}
}

// =============================================================================
// Tests
// =============================================================================

func testSeedNetworks(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("seeding twice is idempotent", func(t *testing.T) {
		require.NoError(t, store.SeedNetworks(ctx, domain.SupportedNetworks()))
		require.NoError(t, store.SeedNetworks(ctx, domain.SupportedNetworks()))

		stats, err := store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Networks)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		require.NoError(t, store.SeedNetworks(ctx, nil))
	})
}

func testUpsertBalances(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creates placeholder tokens together with balances", func(t *testing.T) {
		balances := buildTestBalances(3, "aa")
		err := store.UpsertBalances(ctx, singleNetwork(testAddress, domain.NetworkEthereum, balances))
		require.NoError(t, err)

		rows, err := store.GetBalancesByAddress(ctx, testAddress)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		for _, b := range balances {
			token, err := store.GetToken(ctx, b.Contract, domain.NetworkEthereum)
			require.NoError(t, err)
			require.NotNil(t, token)
			assert.Equal(t, "UNK", token.Symbol)
			assert.Equal(t, "Unknown", token.Name)
			assert.Equal(t, 18, token.Decimals)
			assert.Nil(t, token.Logo)
			assert.Nil(t, token.PriceFeedID)
			assert.Equal(t, schema.TokenStatePlaceholder, token.State)
		}
	})

	t.Run("second ingest overwrites raw balance", func(t *testing.T) {
		contract := "0xbb00000000000000000000000000000000000001"
		input := singleNetwork(testAddress, domain.NetworkAvalanche, []domain.RawBalance{{Contract: contract, Balance: "100"}})
		require.NoError(t, store.UpsertBalances(ctx, input))

		input.Networks[0].Balances[0].Balance = "250"
		require.NoError(t, store.UpsertBalances(ctx, input))

		rows, err := store.GetBalancesByAddress(ctx, testAddress)
		require.NoError(t, err)

		var matched []schema.Balance
		for _, r := range rows {
			if r.Contract == contract && r.NetworkID == int(domain.NetworkAvalanche) {
				matched = append(matched, r)
			}
		}
		require.Len(t, matched, 1)
		assert.Equal(t, "250", matched[0].RawBalance)
	})

	t.Run("raw balance keeps full precision", func(t *testing.T) {
		contract := "0xcc00000000000000000000000000000000000001"
		huge := "115792089237316195423570985008687907853269984665640564039457584007913129639935"
		require.NoError(t, store.UpsertBalances(ctx, singleNetwork(testAddress, domain.NetworkEthereum,
			[]domain.RawBalance{{Contract: contract, Balance: huge}})))

		rows, err := store.GetBalancesByAddress(ctx, testAddress)
		require.NoError(t, err)
		found := false
		for _, r := range rows {
			if r.Contract == contract {
				found = true
				assert.Equal(t, huge, r.RawBalance)
			}
		}
		assert.True(t, found)
	})

	t.Run("existing resolved token is not downgraded", func(t *testing.T) {
		contract := "0xdd00000000000000000000000000000000000001"
		require.NoError(t, store.UpsertResolvedToken(ctx, UpsertTokenInput{
			Contract:    contract,
			NetworkID:   domain.NetworkEthereum,
			Symbol:      "USDC",
			Name:        "USD Coin",
			Decimals:    6,
			PriceFeedID: stringPtr("usd-coin"),
		}))

		require.NoError(t, store.UpsertBalances(ctx, singleNetwork(testAddress, domain.NetworkEthereum,
			[]domain.RawBalance{{Contract: contract, Balance: "1500000"}})))

		token, err := store.GetToken(ctx, contract, domain.NetworkEthereum)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, "USDC", token.Symbol)
		assert.Equal(t, schema.TokenStateResolved, token.State)
	})

	t.Run("mixed-case and duplicate contracts collapse to one row", func(t *testing.T) {
		address := "0x0000000000000000000000000000000000000Abc"
		require.NoError(t, store.UpsertBalances(ctx, singleNetwork(address, domain.NetworkEthereum, []domain.RawBalance{
			{Contract: "0xEE00000000000000000000000000000000000001", Balance: "1"},
			{Contract: "0xee00000000000000000000000000000000000001", Balance: "2"},
		})))

		rows, err := store.GetBalancesByAddress(ctx, address)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "0xee00000000000000000000000000000000000001", rows[0].Contract)
		assert.Equal(t, "2", rows[0].RawBalance)
	})

	t.Run("writes every network together", func(t *testing.T) {
		address := "0x0000000000000000000000000000000000000Def"
		require.NoError(t, store.UpsertBalances(ctx, UpsertBalancesInput{
			Address: address,
			Networks: []NetworkBalances{
				{NetworkID: domain.NetworkEthereum, Balances: buildTestBalances(2, "e1")},
				{NetworkID: domain.NetworkAvalanche, Balances: buildTestBalances(1, "a1")},
			},
		}))

		rows, err := store.GetBalancesByAddress(ctx, address)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("failure on one network rolls back the others", func(t *testing.T) {
		before, err := store.GetStats(ctx)
		require.NoError(t, err)

		address := "0x0000000000000000000000000000000000000Fad"
		err = store.UpsertBalances(ctx, UpsertBalancesInput{
			Address: address,
			Networks: []NetworkBalances{
				{NetworkID: domain.NetworkEthereum, Balances: buildTestBalances(2, "f1")},
				// network 999 is not seeded, so its placeholder tokens violate the foreign key
				{NetworkID: domain.NetworkID(999), Balances: buildTestBalances(1, "f2")},
			},
		})
		require.Error(t, err)

		rows, err := store.GetBalancesByAddress(ctx, address)
		require.NoError(t, err)
		assert.Empty(t, rows)

		after, err := store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("address without balances is still recorded", func(t *testing.T) {
		before, err := store.GetStats(ctx)
		require.NoError(t, err)

		require.NoError(t, store.UpsertBalances(ctx, UpsertBalancesInput{
			Address:  "0x0000000000000000000000000000000000000E00",
			Networks: []NetworkBalances{{NetworkID: domain.NetworkEthereum}},
		}))

		after, err := store.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, before.Addresses+1, after.Addresses)
		assert.Equal(t, before.Balances, after.Balances)
	})
}

func testTokens(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("get missing token returns nil", func(t *testing.T) {
		token, err := store.GetToken(ctx, "0x0000000000000000000000000000000000000404", domain.NetworkEthereum)
		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("ensure placeholder does not overwrite", func(t *testing.T) {
		contract := "0xff00000000000000000000000000000000000001"
		require.NoError(t, store.UpsertResolvedToken(ctx, UpsertTokenInput{
			Contract:  contract,
			NetworkID: domain.NetworkAvalanche,
			Symbol:    "WAVAX",
			Name:      "Wrapped AVAX",
			Decimals:  18,
			Logo:      stringPtr("https://assets.example/wavax.png"),
		}))

		require.NoError(t, store.EnsurePlaceholderToken(ctx, contract, domain.NetworkAvalanche))

		token, err := store.GetToken(ctx, contract, domain.NetworkAvalanche)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, "WAVAX", token.Symbol)
		require.NotNil(t, token.Logo)
	})

	t.Run("upsert resolved overwrites placeholder in place", func(t *testing.T) {
		contract := "0xff00000000000000000000000000000000000002"
		require.NoError(t, store.EnsurePlaceholderToken(ctx, contract, domain.NetworkEthereum))
		require.NoError(t, store.UpsertResolvedToken(ctx, UpsertTokenInput{
			Contract:    contract,
			NetworkID:   domain.NetworkEthereum,
			Symbol:      "DAI",
			Name:        "Dai",
			Decimals:    18,
			PriceFeedID: stringPtr("dai"),
		}))

		token, err := store.GetToken(ctx, contract, domain.NetworkEthereum)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, "DAI", token.Symbol)
		assert.Equal(t, schema.TokenStateResolved, token.State)
		require.NotNil(t, token.PriceFeedID)
		assert.Equal(t, "dai", *token.PriceFeedID)

		domainToken := ToDomainToken(*token)
		assert.False(t, domainToken.IsPlaceholder())
		assert.True(t, domainToken.HasPriceFeed())
	})

	t.Run("get tokens by keys", func(t *testing.T) {
		a := "0xff00000000000000000000000000000000000003"
		b := "0xff00000000000000000000000000000000000004"
		require.NoError(t, store.EnsurePlaceholderToken(ctx, a, domain.NetworkEthereum))
		require.NoError(t, store.EnsurePlaceholderToken(ctx, b, domain.NetworkAvalanche))

		tokens, err := store.GetTokensByKeys(ctx, []TokenKey{
			{Contract: a, NetworkID: domain.NetworkEthereum},
			{Contract: b, NetworkID: domain.NetworkAvalanche},
			{Contract: a, NetworkID: domain.NetworkAvalanche},
		})
		require.NoError(t, err)
		assert.Len(t, tokens, 2)

		tokens, err = store.GetTokensByKeys(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})
}

func testPrices(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("upsert overwrites previous quote", func(t *testing.T) {
		require.NoError(t, store.UpsertPrice(ctx, UpsertPriceInput{PriceFeedID: "usd-coin", Currency: "usd", Value: 0.999}))
		require.NoError(t, store.UpsertPrice(ctx, UpsertPriceInput{PriceFeedID: "usd-coin", Currency: "usd", Value: 1.001}))
		require.NoError(t, store.UpsertPrice(ctx, UpsertPriceInput{PriceFeedID: "dai", Currency: "usd", Value: 1.0}))

		prices, err := store.GetPricesByFeedIDs(ctx, []string{"usd-coin", "dai", "missing"}, "usd")
		require.NoError(t, err)
		require.Len(t, prices, 2)

		byID := map[string]float64{}
		for _, p := range prices {
			byID[p.PriceFeedID] = p.Value
		}
		assert.InDelta(t, 1.001, byID["usd-coin"], 1e-9)
		assert.InDelta(t, 1.0, byID["dai"], 1e-9)
	})

	t.Run("other currency is filtered out", func(t *testing.T) {
		require.NoError(t, store.UpsertPrice(ctx, UpsertPriceInput{PriceFeedID: "weth", Currency: "eur", Value: 3000}))

		prices, err := store.GetPricesByFeedIDs(ctx, []string{"weth"}, "usd")
		require.NoError(t, err)
		assert.Empty(t, prices)
	})
}

func testStats(t *testing.T, store Store) {
	ctx := context.Background()

	before, err := store.GetStats(ctx)
	require.NoError(t, err)

	address := "0x1111111111111111111111111111111111111111"
	input := singleNetwork(address, domain.NetworkEthereum, buildTestBalances(2, "ab"))
	require.NoError(t, store.UpsertBalances(ctx, input))
	require.NoError(t, store.UpsertBalances(ctx, input))
	require.NoError(t, store.UpsertPrice(ctx, UpsertPriceInput{PriceFeedID: "stats-coin", Currency: "usd", Value: 1}))

	after, err := store.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, before.Networks, after.Networks)
	assert.Equal(t, before.Addresses+1, after.Addresses)
	assert.Equal(t, before.Balances+2, after.Balances)
	assert.Equal(t, before.Tokens+2, after.Tokens)
	assert.Equal(t, before.Prices+1, after.Prices)
}

func testKeyValueStore(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("set and get key-value", func(t *testing.T) {
		expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		require.NoError(t, store.SetKeyValue(ctx, "cg:coins:ethereum:0xabc", `{"id":"abc"}`, &expiresAt))

		kv, err := store.GetKeyValue(ctx, "cg:coins:ethereum:0xabc")
		require.NoError(t, err)
		require.NotNil(t, kv)
		assert.Equal(t, `{"id":"abc"}`, kv.Value)
		require.NotNil(t, kv.ExpiresAt)
		assert.True(t, expiresAt.Equal(*kv.ExpiresAt))
		assert.False(t, kv.Expired(time.Now()))
		assert.True(t, kv.Expired(expiresAt))
	})

	t.Run("overwrite replaces value and expiry", func(t *testing.T) {
		require.NoError(t, store.SetKeyValue(ctx, "seeded:0xabc", "1", nil))
		require.NoError(t, store.SetKeyValue(ctx, "seeded:0xabc", "2", nil))

		kv, err := store.GetKeyValue(ctx, "seeded:0xabc")
		require.NoError(t, err)
		require.NotNil(t, kv)
		assert.Equal(t, "2", kv.Value)
		assert.Nil(t, kv.ExpiresAt)
	})

	t.Run("get non-existent key returns nil", func(t *testing.T) {
		kv, err := store.GetKeyValue(ctx, "nonexistent:key")
		require.NoError(t, err)
		assert.Nil(t, kv)
	})
}

// RunStoreTests runs every store test against the given implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"SeedNetworks", testSeedNetworks},
		{"UpsertBalances", testUpsertBalances},
		{"Tokens", testTokens},
		{"Prices", testPrices},
		{"Stats", testStats},
		{"KeyValueStore", testKeyValueStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
