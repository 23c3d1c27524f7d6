package coingecko

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/feral-file/ff-portfolio/internal/adapter"
	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/fetchcache"
)

const PROVIDER_NAME = "coingecko"

const (
	METADATA_TTL = 24 * time.Hour
	PRICE_TTL    = 2 * time.Minute
)

// CoinResponse is the subset of the coin-by-contract endpoint used for token metadata
type CoinResponse struct {
	ID              string                    `json:"id"`
	Symbol          string                    `json:"symbol"`
	Name            string                    `json:"name"`
	Image           *CoinImage                `json:"image"`
	DetailPlatforms map[string]PlatformDetail `json:"detail_platforms"`
}

// CoinImage holds the logo variants of a coin
type CoinImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

// PlatformDetail holds the per-platform contract details of a coin
type PlatformDetail struct {
	DecimalPlace    *int   `json:"decimal_place"`
	ContractAddress string `json:"contract_address"`
}

// Client defines the interface for CoinGecko client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/coingecko_client.go -package=mocks -mock_names=Client=MockCoinGeckoClient
type Client interface {
	// GetTokenMetadata resolves metadata for contract on platform.
	// It returns domain.ErrNotFound when CoinGecko does not know the contract.
	GetTokenMetadata(ctx context.Context, platform string, contract string) (*domain.TokenMetadata, error)

	// GetSimplePrices quotes ids in currency with one upstream call.
	// Ids without a finite quote are absent from the result.
	GetSimplePrices(ctx context.Context, ids []string, currency string) (map[string]float64, error)
}

// CoinGeckoClient implements Client on top of a caching fetcher
type CoinGeckoClient struct {
	fetcher fetchcache.Fetcher
	apiURL  string
	json    adapter.JSON
}

// NewClient creates a new CoinGecko client
func NewClient(fetcher fetchcache.Fetcher, apiURL string, json adapter.JSON) Client {
	return &CoinGeckoClient{
		fetcher: fetcher,
		apiURL:  strings.TrimSuffix(apiURL, "/"),
		json:    json,
	}
}

// Headers returns the request headers CoinGecko expects
func Headers(apiKey string, userAgent string) map[string]string {
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": userAgent,
	}
	if apiKey != "" {
		headers["x-cg-demo-api-key"] = apiKey
	}
	return headers
}

// GetTokenMetadata fetches coin metadata by contract address
func (c *CoinGeckoClient) GetTokenMetadata(ctx context.Context, platform string, contract string) (*domain.TokenMetadata, error) {
	contract = domain.NormalizeContract(contract)
	endpoint := fmt.Sprintf("%s/coins/%s/contract/%s", c.apiURL, platform, contract)
	cacheKey := fmt.Sprintf("cg:coins:%s:%s", platform, contract)

	body, err := c.fetcher.Fetch(ctx, endpoint, cacheKey, METADATA_TTL)
	if err != nil {
		return nil, err
	}

	var coin CoinResponse
	if err := c.json.Unmarshal(body, &coin); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CoinGecko coin response: %w", err)
	}

	meta := &domain.TokenMetadata{
		Name:     coin.Name,
		Symbol:   strings.ToUpper(coin.Symbol),
		Decimals: domain.PLACEHOLDER_DECIMALS,
	}
	if coin.ID != "" {
		id := coin.ID
		meta.PriceFeedID = &id
	}
	if meta.Name == "" {
		meta.Name = domain.DEFAULT_TOKEN_NAME
	}
	if meta.Symbol == "" {
		meta.Symbol = domain.DEFAULT_TOKEN_SYMBOL
	}
	if detail, ok := coin.DetailPlatforms[platform]; ok && detail.DecimalPlace != nil && *detail.DecimalPlace >= 0 {
		meta.Decimals = *detail.DecimalPlace
	}
	if coin.Image != nil && coin.Image.Small != "" {
		logo := coin.Image.Small
		meta.Logo = &logo
	}

	return meta, nil
}

// GetSimplePrices fetches spot prices for a group of coin ids
func (c *CoinGeckoClient) GetSimplePrices(ctx context.Context, ids []string, currency string) (map[string]float64, error) {
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	csv := strings.Join(sorted, ",")

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s", c.apiURL, url.QueryEscape(csv), url.QueryEscape(currency))
	cacheKey := fmt.Sprintf("cg:prices:%s:%s", currency, csv)

	body, err := c.fetcher.Fetch(ctx, endpoint, cacheKey, PRICE_TTL)
	if err != nil {
		return nil, err
	}

	// Non-numeric quotes are skipped per id
	var quotes map[string]map[string]interface{}
	if err := c.json.Unmarshal(body, &quotes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CoinGecko price response: %w", err)
	}

	prices := make(map[string]float64, len(sorted))
	for _, id := range sorted {
		value, ok := quotes[id][currency].(float64)
		if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		prices[id] = value
	}

	return prices, nil
}
