package portfolio

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/logger"
	"github.com/feral-file/ff-portfolio/internal/store"
	"github.com/feral-file/ff-portfolio/internal/store/schema"
)

// Holding is one valued balance of a portfolio
type Holding struct {
	NetworkID domain.NetworkID  `json:"networkId"`
	Contract  string            `json:"contract"`
	Symbol    string            `json:"symbol"`
	Name      string            `json:"name"`
	Decimals  int               `json:"decimals"`
	Amount    float64           `json:"amount"`
	USD       *float64          `json:"usd"`
	Logo      *string           `json:"logo"`
	State     domain.TokenState `json:"state"`
}

// Aggregator values the stored balances of an address
//
//go:generate mockgen -source=aggregator.go -destination=../mocks/aggregator.go -package=mocks -mock_names=Aggregator=MockAggregator
type Aggregator interface {
	// GetPortfolio returns the holdings of address sorted by USD value, then amount, descending.
	// Missing metadata degrades to the placeholder token and missing prices to a nil valuation.
	GetPortfolio(ctx context.Context, address string) ([]Holding, error)
}

type aggregator struct {
	store store.Store
}

// NewAggregator creates a new portfolio aggregator
func NewAggregator(st store.Store) Aggregator {
	return &aggregator{store: st}
}

type valued struct {
	holding Holding
	amount  decimal.Decimal
	usd     *decimal.Decimal
}

func (a *aggregator) GetPortfolio(ctx context.Context, address string) ([]Holding, error) {
	address, err := domain.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	balances, err := a.store.GetBalancesByAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	if len(balances) == 0 {
		return []Holding{}, nil
	}

	keys := make([]store.TokenKey, len(balances))
	for i, b := range balances {
		keys[i] = store.TokenKey{Contract: b.Contract, NetworkID: domain.NetworkID(b.NetworkID)}
	}
	rows, err := a.store.GetTokensByKeys(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens: %w", err)
	}
	tokens := make(map[store.TokenKey]domain.Token, len(rows))
	var feedIDs []string
	for _, row := range rows {
		t := store.ToDomainToken(row)
		tokens[store.TokenKey{Contract: t.Contract, NetworkID: t.NetworkID}] = t
		if t.HasPriceFeed() && !slices.Contains(feedIDs, *t.PriceFeedID) {
			feedIDs = append(feedIDs, *t.PriceFeedID)
		}
	}

	prices := make(map[string]float64, len(feedIDs))
	if len(feedIDs) > 0 {
		priceRows, err := a.store.GetPricesByFeedIDs(ctx, feedIDs, domain.CURRENCY_USD)
		if err != nil {
			return nil, fmt.Errorf("failed to get prices: %w", err)
		}
		for _, p := range priceRows {
			prices[p.PriceFeedID] = p.Value
		}
	}

	items := make([]valued, 0, len(balances))
	for i, b := range balances {
		token, ok := tokens[keys[i]]
		if !ok {
			token = domain.PlaceholderToken(b.Contract, keys[i].NetworkID)
		}
		items = append(items, value(ctx, b, token, prices))
	}

	slices.SortStableFunc(items, compare)

	holdings := make([]Holding, len(items))
	for i, item := range items {
		holdings[i] = item.holding
	}
	return holdings, nil
}

// value converts a raw balance into a display amount and its USD valuation
func value(ctx context.Context, b schema.Balance, token domain.Token, prices map[string]float64) valued {
	raw, err := decimal.NewFromString(b.RawBalance)
	if err != nil {
		logger.WarnCtx(ctx, "Unparsable raw balance",
			zap.String("contract", b.Contract), zap.String("raw_balance", b.RawBalance), zap.Error(err))
		raw = decimal.Zero
	}
	amount := raw.Shift(-int32(token.Decimals))

	v := valued{
		amount: amount,
		holding: Holding{
			NetworkID: token.NetworkID,
			Contract:  token.Contract,
			Symbol:    token.Symbol,
			Name:      token.Name,
			Decimals:  token.Decimals,
			Amount:    amount.InexactFloat64(),
			Logo:      token.Logo,
			State:     token.State,
		},
	}

	if token.HasPriceFeed() {
		if price, ok := prices[*token.PriceFeedID]; ok {
			usd := amount.Mul(decimal.NewFromFloat(price))
			f := usd.InexactFloat64()
			v.usd = &usd
			v.holding.USD = &f
		}
	}

	return v
}

// compare orders by USD descending with unpriced holdings last, then by amount descending
func compare(a, b valued) int {
	switch {
	case a.usd != nil && b.usd == nil:
		return -1
	case a.usd == nil && b.usd != nil:
		return 1
	case a.usd != nil && b.usd != nil:
		if c := b.usd.Cmp(*a.usd); c != 0 {
			return c
		}
	}
	return b.amount.Cmp(a.amount)
}
