package portfolio_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/mocks"
	"github.com/feral-file/ff-portfolio/internal/portfolio"
	"github.com/feral-file/ff-portfolio/internal/store"
	"github.com/feral-file/ff-portfolio/internal/store/schema"
)

const testAddress = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

func strPtr(s string) *string {
	return &s
}

func TestGetPortfolio_ValuesAndSorts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	aggregator := portfolio.NewAggregator(mockStore)
	ctx := context.Background()

	mockStore.EXPECT().GetBalancesByAddress(ctx, testAddress).Return([]schema.Balance{
		{AddressID: testAddress, Contract: "0xusdc", NetworkID: 1, RawBalance: "1500000"},
		{AddressID: testAddress, Contract: "0xunknown", NetworkID: 1, RawBalance: "5000000000000000000"},
		{AddressID: testAddress, Contract: "0xdust", NetworkID: 43114, RawBalance: "1"},
		{AddressID: testAddress, Contract: "0xweth", NetworkID: 1, RawBalance: "2000000000000000000"},
		{AddressID: testAddress, Contract: "0xnoquote", NetworkID: 43114, RawBalance: "7"},
	}, nil)

	mockStore.EXPECT().GetTokensByKeys(ctx, []store.TokenKey{
		{Contract: "0xusdc", NetworkID: domain.NetworkEthereum},
		{Contract: "0xunknown", NetworkID: domain.NetworkEthereum},
		{Contract: "0xdust", NetworkID: domain.NetworkAvalanche},
		{Contract: "0xweth", NetworkID: domain.NetworkEthereum},
		{Contract: "0xnoquote", NetworkID: domain.NetworkAvalanche},
	}).Return([]schema.Token{
		{Contract: "0xusdc", NetworkID: 1, Symbol: "USDC", Name: "USDC", Decimals: 6, Logo: strPtr("https://img/usdc.png"), PriceFeedID: strPtr("usd-coin"), State: schema.TokenStateResolved},
		{Contract: "0xdust", NetworkID: 43114, Symbol: "DUST", Name: "Dust", Decimals: 0, PriceFeedID: strPtr("dust"), State: schema.TokenStateResolved},
		{Contract: "0xweth", NetworkID: 1, Symbol: "WETH", Name: "Wrapped Ether", Decimals: 18, PriceFeedID: strPtr("weth"), State: schema.TokenStateResolved},
		{Contract: "0xnoquote", NetworkID: 43114, Symbol: "NOQ", Name: "No Quote", Decimals: 0, PriceFeedID: strPtr("no-quote"), State: schema.TokenStateResolved},
	}, nil)

	mockStore.EXPECT().GetPricesByFeedIDs(ctx, []string{"usd-coin", "dust", "weth", "no-quote"}, "usd").Return([]schema.Price{
		{PriceFeedID: "usd-coin", Currency: "usd", Value: 2.0},
		{PriceFeedID: "dust", Currency: "usd", Value: 0},
		{PriceFeedID: "weth", Currency: "usd", Value: 3000},
	}, nil)

	holdings, err := aggregator.GetPortfolio(ctx, "0x742d35cc6634c0532925a3b844bc454e4438f44e")
	require.NoError(t, err)
	require.Len(t, holdings, 5)

	// priced holdings first by usd, zero-valued before unpriced
	assert.Equal(t, "0xweth", holdings[0].Contract)
	require.NotNil(t, holdings[0].USD)
	assert.InDelta(t, 6000.0, *holdings[0].USD, 1e-9)

	assert.Equal(t, "0xusdc", holdings[1].Contract)
	assert.Equal(t, 1.5, holdings[1].Amount)
	require.NotNil(t, holdings[1].USD)
	assert.Equal(t, 3.0, *holdings[1].USD)
	assert.Equal(t, "https://img/usdc.png", *holdings[1].Logo)
	assert.Equal(t, domain.TokenStateResolved, holdings[1].State)

	assert.Equal(t, "0xdust", holdings[2].Contract)
	require.NotNil(t, holdings[2].USD)
	assert.Equal(t, 0.0, *holdings[2].USD)

	// unpriced holdings ordered by amount
	assert.Equal(t, "0xnoquote", holdings[3].Contract)
	assert.Nil(t, holdings[3].USD)
	assert.Equal(t, 7.0, holdings[3].Amount)

	assert.Equal(t, "0xunknown", holdings[4].Contract)
	assert.Nil(t, holdings[4].USD)
	assert.Equal(t, 5.0, holdings[4].Amount)
	assert.Equal(t, domain.PLACEHOLDER_SYMBOL, holdings[4].Symbol)
	assert.Equal(t, domain.PLACEHOLDER_NAME, holdings[4].Name)
	assert.Equal(t, domain.PLACEHOLDER_DECIMALS, holdings[4].Decimals)
	assert.Equal(t, domain.TokenStatePlaceholder, holdings[4].State)
	assert.Equal(t, domain.NetworkEthereum, holdings[4].NetworkID)
}

func TestGetPortfolio_LargeBalancesKeepPrecision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	aggregator := portfolio.NewAggregator(mockStore)

	// 2^128 base units, beyond what a float64 can carry exactly
	mockStore.EXPECT().GetBalancesByAddress(gomock.Any(), testAddress).Return([]schema.Balance{
		{Contract: "0xbig", NetworkID: 1, RawBalance: "340282366920938463463374607431768211456"},
		{Contract: "0xbigger", NetworkID: 1, RawBalance: "340282366920938463463374607431768211457"},
	}, nil)
	mockStore.EXPECT().GetTokensByKeys(gomock.Any(), gomock.Any()).Return(nil, nil)

	holdings, err := aggregator.GetPortfolio(context.Background(), testAddress)
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.Equal(t, "0xbigger", holdings[0].Contract)
	assert.InDelta(t, 340282366920938463463.374607431768211456, holdings[0].Amount, 1e6)
}

func TestGetPortfolio_NoBalances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	aggregator := portfolio.NewAggregator(mockStore)

	mockStore.EXPECT().GetBalancesByAddress(gomock.Any(), testAddress).Return(nil, nil)

	holdings, err := aggregator.GetPortfolio(context.Background(), testAddress)
	require.NoError(t, err)
	assert.NotNil(t, holdings)
	assert.Empty(t, holdings)
}

func TestGetPortfolio_InvalidAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := portfolio.NewAggregator(mocks.NewMockStore(ctrl))

	_, err := aggregator.GetPortfolio(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestGetPortfolio_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	aggregator := portfolio.NewAggregator(mockStore)

	mockStore.EXPECT().GetBalancesByAddress(gomock.Any(), testAddress).Return(nil, errors.New("connection refused"))

	_, err := aggregator.GetPortfolio(context.Background(), testAddress)
	assert.Error(t, err)
}
