package enrichment

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-portfolio/internal/adapter"
	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/logger"
	"github.com/feral-file/ff-portfolio/internal/providers/coingecko"
	"github.com/feral-file/ff-portfolio/internal/store"
)

const (
	// METADATA_GROUP_SIZE is the number of contracts resolved concurrently
	METADATA_GROUP_SIZE = 10
	// METADATA_GROUP_DELAY separates consecutive metadata groups
	METADATA_GROUP_DELAY = 1500 * time.Millisecond
	// PRICE_GROUP_SIZE is the number of price feed ids quoted per request
	PRICE_GROUP_SIZE = 50
	// PRICE_GROUP_DELAY separates consecutive price groups
	PRICE_GROUP_DELAY = 500 * time.Millisecond
)

// Engine resolves token metadata and prices for contracts touched by an ingest
//
//go:generate mockgen -source=engine.go -destination=../mocks/enrichment_engine.go -package=mocks -mock_names=Engine=MockEnrichmentEngine
type Engine interface {
	// Enrich is best effort: failures are logged and leave placeholder or stale data in place
	Enrich(ctx context.Context, job domain.EnrichmentJob)
}

type engine struct {
	store     store.Store
	coingecko coingecko.Client
	networks  []domain.Network
	clock     adapter.Clock
}

// NewEngine creates a new enrichment engine
func NewEngine(st store.Store, cg coingecko.Client, networks []domain.Network, clock adapter.Clock) Engine {
	return &engine{
		store:     st,
		coingecko: cg,
		networks:  networks,
		clock:     clock,
	}
}

func (e *engine) Enrich(ctx context.Context, job domain.EnrichmentJob) {
	if job.Empty() {
		return
	}

	start := e.clock.Now()
	queue := &feedQueue{seen: make(map[string]struct{})}

	if err := e.resolveMetadata(ctx, job, queue); err != nil {
		logger.WarnCtx(ctx, "Metadata enrichment interrupted", zap.String("address", job.Address), zap.Error(err))
		return
	}

	ids := queue.sorted()
	priced, err := e.refreshPrices(ctx, ids)
	if err != nil {
		logger.WarnCtx(ctx, "Price enrichment interrupted", zap.String("address", job.Address), zap.Error(err))
		return
	}

	logger.InfoCtx(ctx, "Enrichment completed",
		zap.String("address", job.Address),
		zap.Int("price_feeds", len(ids)),
		zap.Int("prices_stored", priced),
		zap.Duration("duration", e.clock.Since(start)),
	)
}

// resolveMetadata walks metadata groups sequentially, resolving each group's contracts concurrently
func (e *engine) resolveMetadata(ctx context.Context, job domain.EnrichmentJob, queue *feedQueue) error {
	pool := pond.NewPool(METADATA_GROUP_SIZE, pond.WithContext(ctx))
	defer pool.StopAndWait()

	first := true
	for _, nc := range job.Networks {
		idx := slices.IndexFunc(e.networks, func(n domain.Network) bool { return n.ID == nc.NetworkID })
		if idx < 0 {
			logger.WarnCtx(ctx, "Skipping unsupported network", zap.Int("network_id", int(nc.NetworkID)))
			continue
		}
		network := e.networks[idx]

		for _, group := range domain.Chunk(uniqueContracts(nc.Contracts), METADATA_GROUP_SIZE) {
			if !first {
				if err := e.sleep(ctx, METADATA_GROUP_DELAY); err != nil {
					return err
				}
			}
			first = false

			tasks := pool.NewGroup()
			for _, contract := range group {
				tasks.Submit(func() {
					e.resolveToken(ctx, network, contract, queue)
				})
			}
			if err := tasks.Wait(); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveToken upgrades one token in place, or makes sure its placeholder exists
func (e *engine) resolveToken(ctx context.Context, network domain.Network, contract string, queue *feedQueue) {
	existing, err := e.store.GetToken(ctx, contract, network.ID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read token, fetching metadata",
			zap.String("contract", contract), zap.Int("network_id", int(network.ID)), zap.Error(err))
		existing = nil
	}
	if existing != nil && existing.PriceFeedID != nil && *existing.PriceFeedID != "" {
		queue.add(*existing.PriceFeedID)
		return
	}

	meta, err := e.coingecko.GetTokenMetadata(ctx, network.PriceFeedPlatform, contract)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.DebugCtx(ctx, "Token unknown to price provider",
				zap.String("contract", contract), zap.String("platform", network.PriceFeedPlatform))
		} else {
			logger.WarnCtx(ctx, "Failed to fetch token metadata",
				zap.String("contract", contract), zap.String("platform", network.PriceFeedPlatform), zap.Error(err))
		}

		if existing == nil {
			if err := e.store.EnsurePlaceholderToken(ctx, contract, network.ID); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("contract", contract), zap.Int("network_id", int(network.ID)))
			}
		}
		return
	}

	if err := e.store.UpsertResolvedToken(ctx, store.UpsertTokenInput{
		Contract:    contract,
		NetworkID:   network.ID,
		Symbol:      meta.Symbol,
		Name:        meta.Name,
		Decimals:    meta.Decimals,
		Logo:        meta.Logo,
		PriceFeedID: meta.PriceFeedID,
	}); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("contract", contract), zap.Int("network_id", int(network.ID)))
		return
	}

	if meta.PriceFeedID != nil && *meta.PriceFeedID != "" {
		queue.add(*meta.PriceFeedID)
	}
}

// refreshPrices quotes ids in sorted groups and stores every finite price
func (e *engine) refreshPrices(ctx context.Context, ids []string) (int, error) {
	stored := 0
	for i, group := range domain.Chunk(ids, PRICE_GROUP_SIZE) {
		if i > 0 {
			if err := e.sleep(ctx, PRICE_GROUP_DELAY); err != nil {
				return stored, err
			}
		}

		prices, err := e.coingecko.GetSimplePrices(ctx, group, domain.CURRENCY_USD)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to fetch price group", zap.Int("group", i), zap.Int("size", len(group)), zap.Error(err))
			continue
		}

		for _, id := range group {
			value, ok := prices[id]
			if !ok {
				continue
			}
			if err := e.store.UpsertPrice(ctx, store.UpsertPriceInput{
				PriceFeedID: id,
				Currency:    domain.CURRENCY_USD,
				Value:       value,
			}); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("price_feed_id", id))
				continue
			}
			stored++
		}
	}

	return stored, nil
}

func (e *engine) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.clock.After(d):
		return nil
	}
}

// feedQueue collects distinct price feed ids from concurrent resolvers
type feedQueue struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func (q *feedQueue) add(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seen[id] = struct{}{}
}

func (q *feedQueue) sorted() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := make([]string, 0, len(q.seen))
	for id := range q.seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func uniqueContracts(contracts []string) []string {
	seen := make(map[string]struct{}, len(contracts))
	out := make([]string, 0, len(contracts))
	for _, c := range contracts {
		c = domain.NormalizeContract(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
