package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NetworkID is the EVM chain id of a supported network
type NetworkID int

const (
	NetworkEthereum  NetworkID = 1
	NetworkAvalanche NetworkID = 43114
)

// Network describes a supported chain and how each provider addresses it
type Network struct {
	ID   NetworkID
	Slug string
	Name string
	// PriceFeedPlatform is the platform key used by the price provider
	PriceFeedPlatform string
	// BalanceChain is the chain identifier used by the balance provider
	BalanceChain string
}

// SupportedNetworks returns the static network set in ingestion order
func SupportedNetworks() []Network {
	return []Network{
		{
			ID:                NetworkEthereum,
			Slug:              "ethereum",
			Name:              "Ethereum",
			PriceFeedPlatform: "ethereum",
			BalanceChain:      "eth",
		},
		{
			ID:                NetworkAvalanche,
			Slug:              "avalanche",
			Name:              "Avalanche C-Chain",
			PriceFeedPlatform: "avalanche",
			BalanceChain:      "avalanche",
		},
	}
}

// NetworkByID looks up a supported network
func NetworkByID(id NetworkID) (Network, bool) {
	for _, n := range SupportedNetworks() {
		if n.ID == id {
			return n, true
		}
	}
	return Network{}, false
}

// NormalizeAddress validates a wallet address and returns its EIP-55 checksum form
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return "", ErrInvalidAddress
	}
	return common.HexToAddress(address).Hex(), nil
}

// NormalizeContract returns the lower-cased contract address used as a storage key
func NormalizeContract(contract string) string {
	return strings.ToLower(strings.TrimSpace(contract))
}

// RawBalance is a provider reported balance in base units
type RawBalance struct {
	Contract string
	Balance  string
}

// NetworkContracts is the list of contracts touched on one network
type NetworkContracts struct {
	NetworkID NetworkID `json:"network_id"`
	Contracts []string  `json:"contracts"`
}

// EnrichmentJob is the immutable input handed to a background enrichment task
type EnrichmentJob struct {
	Address  string             `json:"address"`
	Networks []NetworkContracts `json:"networks"`
}

// Empty reports whether the job has no contracts to enrich
func (j EnrichmentJob) Empty() bool {
	for _, n := range j.Networks {
		if len(n.Contracts) > 0 {
			return false
		}
	}
	return true
}

// IngestResult is the outcome of one ingest call
type IngestResult struct {
	Inserted int
	Touched  []NetworkContracts
}

// Chunk splits items into consecutive groups of at most size elements
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
