package moralis

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/feral-file/ff-portfolio/internal/adapter"
	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/ratelimit"
)

const PROVIDER_NAME = "moralis"

var ErrNoAPIKey = errors.New("no API key provided")

// ERC20Balance represents one entry of the Moralis ERC-20 balances endpoint
type ERC20Balance struct {
	TokenAddress string  `json:"token_address"`
	Symbol       *string `json:"symbol"`
	Name         *string `json:"name"`
	Decimals     *int    `json:"decimals"`
	Balance      *string `json:"balance"`
	PossibleSpam bool    `json:"possible_spam"`
}

// Client defines the interface for Moralis client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/moralis_client.go -package=mocks -mock_names=Client=MockMoralisClient
type Client interface {
	// GetBalances lists the ERC-20 balances held by address on chain, in provider order
	GetBalances(ctx context.Context, address string, chain string) ([]domain.RawBalance, error)
}

// MoralisClient implements Client against the Moralis Web3 Data API
type MoralisClient struct {
	httpClient adapter.HTTPClient
	limiter    ratelimit.Limiter
	apiURL     string
	apiKey     string
	json       adapter.JSON
}

// NewClient creates a new Moralis client. limiter may be nil.
func NewClient(httpClient adapter.HTTPClient, limiter ratelimit.Limiter, apiURL string, apiKey string, json adapter.JSON) Client {
	return &MoralisClient{
		httpClient: httpClient,
		limiter:    limiter,
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		apiKey:     apiKey,
		json:       json,
	}
}

// GetBalances fetches the ERC-20 balances of address
func (c *MoralisClient) GetBalances(ctx context.Context, address string, chain string) ([]domain.RawBalance, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	endpoint := fmt.Sprintf("%s/%s/erc20?chain=%s", c.apiURL, address, url.QueryEscape(chain))
	headers := map[string]string{
		"Accept":    "application/json",
		"x-api-key": c.apiKey,
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, PROVIDER_NAME); err != nil {
			return nil, err
		}
	}

	respBody, err := c.httpClient.GetBytes(ctx, endpoint, headers)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: failed to call Moralis API for chain %s: %w", domain.ErrUpstreamUnavailable, chain, err)
	}

	var entries []ERC20Balance
	if err := c.json.Unmarshal(respBody, &entries); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal Moralis response: %w", domain.ErrUpstreamUnavailable, err)
	}

	balances := make([]domain.RawBalance, 0, len(entries))
	for _, e := range entries {
		contract := domain.NormalizeContract(e.TokenAddress)
		if contract == "" {
			continue
		}
		balance := "0"
		if e.Balance != nil && *e.Balance != "" {
			balance = *e.Balance
		}
		balances = append(balances, domain.RawBalance{Contract: contract, Balance: balance})
	}

	return balances, nil
}
