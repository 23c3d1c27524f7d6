package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/logger"
	"github.com/feral-file/ff-portfolio/internal/providers/moralis"
	"github.com/feral-file/ff-portfolio/internal/store"
)

// Ingestor fetches wallet balances and persists them so the address is immediately queryable
//
//go:generate mockgen -source=ingest.go -destination=../mocks/ingestor.go -package=mocks -mock_names=Ingestor=MockIngestor
type Ingestor interface {
	// Ingest stores the balances of address on every supported network.
	// limit caps the balances kept per network in provider order; zero uses the configured maximum.
	// Nothing is written unless every network was fetched successfully, and all networks are stored together.
	Ingest(ctx context.Context, address string, limit int) (*domain.IngestResult, error)
}

type ingestor struct {
	store     store.Store
	balances  moralis.Client
	networks  []domain.Network
	maxTokens int
}

// NewIngestor creates a new balance ingestor
func NewIngestor(st store.Store, balances moralis.Client, networks []domain.Network, maxTokens int) Ingestor {
	if maxTokens <= 0 {
		maxTokens = domain.DEFAULT_MAX_TOKENS
	}
	return &ingestor{
		store:     st,
		balances:  balances,
		networks:  networks,
		maxTokens: maxTokens,
	}
}

func (i *ingestor) Ingest(ctx context.Context, address string, limit int) (*domain.IngestResult, error) {
	address, err := domain.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, domain.ErrInvalidLimit
	}
	if limit == 0 {
		limit = i.maxTokens
	}

	fetched := make([][]domain.RawBalance, len(i.networks))
	g, gctx := errgroup.WithContext(ctx)
	for idx, network := range i.networks {
		g.Go(func() error {
			balances, err := i.balances.GetBalances(gctx, address, network.BalanceChain)
			if err != nil {
				return fmt.Errorf("failed to fetch balances on %s: %w", network.Slug, err)
			}
			fetched[idx] = balances
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	input := store.UpsertBalancesInput{
		Address:  address,
		Networks: make([]store.NetworkBalances, 0, len(i.networks)),
	}
	result := &domain.IngestResult{Touched: make([]domain.NetworkContracts, 0, len(i.networks))}
	for idx, network := range i.networks {
		balances := dedupe(capBalances(fetched[idx], limit))
		input.Networks = append(input.Networks, store.NetworkBalances{
			NetworkID: network.ID,
			Balances:  balances,
		})

		contracts := make([]string, len(balances))
		for j, b := range balances {
			contracts[j] = b.Contract
		}
		result.Inserted += len(balances)
		result.Touched = append(result.Touched, domain.NetworkContracts{
			NetworkID: network.ID,
			Contracts: contracts,
		})
	}

	if err := i.store.UpsertBalances(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to store balances: %w", err)
	}

	for idx, network := range i.networks {
		logger.InfoCtx(ctx, "Stored balances",
			zap.String("address", address),
			zap.String("network", network.Slug),
			zap.Int("reported", len(fetched[idx])),
			zap.Int("stored", len(input.Networks[idx].Balances)),
		)
	}

	return result, nil
}

// capBalances keeps the first limit entries in provider order
func capBalances(balances []domain.RawBalance, limit int) []domain.RawBalance {
	if len(balances) > limit {
		return balances[:limit]
	}
	return balances
}

// dedupe collapses contracts case-insensitively, keeping the first position and the last balance
func dedupe(balances []domain.RawBalance) []domain.RawBalance {
	index := make(map[string]int, len(balances))
	out := make([]domain.RawBalance, 0, len(balances))
	for _, b := range balances {
		contract := domain.NormalizeContract(b.Contract)
		if contract == "" {
			continue
		}
		if pos, ok := index[contract]; ok {
			out[pos].Balance = b.Balance
			continue
		}
		index[contract] = len(out)
		out = append(out, domain.RawBalance{Contract: contract, Balance: b.Balance})
	}
	return out
}
