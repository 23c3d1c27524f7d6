package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		expected string
		err      error
	}{
		{
			name:     "lower-case address is checksummed",
			address:  "0x742d35cc6634c0532925a3b844bc454e4438f44e",
			expected: "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		},
		{
			name:     "surrounding whitespace is trimmed",
			address:  "  0x742d35Cc6634C0532925a3b844Bc454e4438f44e ",
			expected: "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		},
		{
			name:    "empty address",
			address: "",
			err:     ErrInvalidAddress,
		},
		{
			name:    "too short",
			address: "0x742d35cc",
			err:     ErrInvalidAddress,
		},
		{
			name:    "non hex characters",
			address: "0xZZ2d35cc6634c0532925a3b844bc454e4438f44e",
			err:     ErrInvalidAddress,
		},
		{
			name:    "tezos address",
			address: "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb",
			err:     ErrInvalidAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizeAddress(tt.address)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNormalizeContract(t *testing.T) {
	assert.Equal(t, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", NormalizeContract(" 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"))
}

func TestSupportedNetworks(t *testing.T) {
	networks := SupportedNetworks()
	require.Len(t, networks, 2)

	assert.Equal(t, NetworkEthereum, networks[0].ID)
	assert.Equal(t, "eth", networks[0].BalanceChain)
	assert.Equal(t, "ethereum", networks[0].PriceFeedPlatform)

	assert.Equal(t, NetworkAvalanche, networks[1].ID)
	assert.Equal(t, "Avalanche C-Chain", networks[1].Name)
	assert.Equal(t, "avalanche", networks[1].PriceFeedPlatform)

	n, ok := NetworkByID(43114)
	assert.True(t, ok)
	assert.Equal(t, "avalanche", n.Slug)

	_, ok = NetworkByID(137)
	assert.False(t, ok)
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name     string
		items    []int
		size     int
		expected [][]int
	}{
		{
			name:     "exact multiple",
			items:    []int{1, 2, 3, 4},
			size:     2,
			expected: [][]int{{1, 2}, {3, 4}},
		},
		{
			name:     "remainder in last chunk",
			items:    []int{1, 2, 3, 4, 5},
			size:     2,
			expected: [][]int{{1, 2}, {3, 4}, {5}},
		},
		{
			name:     "smaller than size",
			items:    []int{1},
			size:     10,
			expected: [][]int{{1}},
		},
		{
			name:     "empty input",
			items:    nil,
			size:     10,
			expected: nil,
		},
		{
			name:     "invalid size",
			items:    []int{1, 2},
			size:     0,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Chunk(tt.items, tt.size))
		})
	}
}

func TestEnrichmentJob_Empty(t *testing.T) {
	assert.True(t, EnrichmentJob{}.Empty())
	assert.True(t, EnrichmentJob{Networks: []NetworkContracts{{NetworkID: NetworkEthereum}}}.Empty())
	assert.False(t, EnrichmentJob{Networks: []NetworkContracts{
		{NetworkID: NetworkEthereum},
		{NetworkID: NetworkAvalanche, Contracts: []string{"0xabc"}},
	}}.Empty())
}
