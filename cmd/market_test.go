package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"morpho/config"
	"morpho/core"
	"morpho/pkg/blue"
	"morpho/pkg/contracts"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarkets struct {
	core.IMarketService
	params   *core.MarketParams
	market   *core.Market
	position *core.Position
	price    *uint256.Int
	rate     *uint256.Int
}

func (f *fakeMarkets) ExpectedMarket(_ context.Context, id core.MarketID, t time.Time) (*core.MarketState, error) {
	expected, interest, err := blue.AccrueInterest(f.market, f.rate, t)
	if err != nil {
		return nil, err
	}

	return &core.MarketState{ID: id, Params: f.params, Market: f.market, Expected: expected, BorrowRate: f.rate, Interest: interest, Time: t}, nil
}

func (f *fakeMarkets) Position(context.Context, core.MarketID, common.Address) (*core.Position, error) {
	return f.position, nil
}

func (f *fakeMarkets) OraclePrice(context.Context, common.Address) (*uint256.Int, error) {
	return f.price, nil
}

type fakeEvents struct {
	core.IEventService
	query  ethereum.FilterQuery
	events []*core.Event
}

func (f *fakeEvents) Logs(_ context.Context, query ethereum.FilterQuery) ([]*core.Event, error) {
	f.query = query
	return f.events, nil
}

func wad(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(1e18))
}

func TestBorrowAPY(t *testing.T) {
	apy, err := borrowAPY(uint256.NewInt(317097919))
	require.NoError(t, err)
	assert.Equal(t, "1.0051", apy.String())

	apy, err = borrowAPY(new(uint256.Int))
	require.NoError(t, err)
	assert.True(t, apy.IsZero())
}

func TestPrintPosition(t *testing.T) {
	f := &fakeMarkets{
		params: &core.MarketParams{Oracle: common.HexToAddress("0x01"), Lltv: uint256.NewInt(860_000_000_000_000_000)},
		market: &core.Market{
			TotalSupplyAssets: wad(2000),
			TotalSupplyShares: new(uint256.Int).Mul(wad(2000), uint256.NewInt(1e6)),
			TotalBorrowAssets: wad(1000),
			TotalBorrowShares: new(uint256.Int).Mul(wad(1000), uint256.NewInt(1e6)),
			LastUpdate:        uint256.NewInt(1_700_000_000),
			Fee:               new(uint256.Int),
		},
		position: &core.Position{
			SupplyShares: new(uint256.Int),
			BorrowShares: new(uint256.Int).Mul(wad(100), uint256.NewInt(1e6)),
			Collateral:   wad(200),
		},
		price: new(uint256.Int).Mul(wad(1e18), uint256.NewInt(1)),
		rate:  new(uint256.Int),
	}

	var out bytes.Buffer
	user := common.HexToAddress(defaultUser)
	require.NoError(t, printPosition(context.Background(), &out, f, core.MarketID{}, user, time.Unix(1_700_000_000, 0)))

	assert.Contains(t, out.String(), "User "+user.Hex()+" position on this market")
	assert.Contains(t, out.String(), "- Borrow assets: 100000000000000000000\n")
	assert.Contains(t, out.String(), "- Max borrow: 172000000000000000000\n")
	assert.Contains(t, out.String(), "- Healthy: true\n")
}

func TestPrintMarkets(t *testing.T) {
	cfg = *config.Default()

	id := common.HexToHash("0xb48bb53f0f2690c71e8813f2dc7ed6fca9ac4b0ace3faa37b4a8e5ece38fa1a2")
	f := &fakeEvents{events: []*core.Event{{
		Name:     "CreateMarket",
		Contract: contracts.SourceMorpho,
		Data:     &contracts.CreateMarket{Id: id, MarketParams: contracts.MarketParams{Lltv: uint256.NewInt(1).ToBig()}},
	}}}

	var out bytes.Buffer
	require.NoError(t, printMarkets(context.Background(), &out, f, nil, 0, false))

	assert.Equal(t, uint64(21_250_000), f.query.FromBlock.Uint64())
	assert.Equal(t, []common.Address{cfg.Morpho.MorphoAddress()}, f.query.Addresses)
	assert.Equal(t, contracts.MorphoABI.Events["CreateMarket"].ID, f.query.Topics[0][0])
	assert.Contains(t, out.String(), "Got 1 logs\nMarket with id "+id.Hex())
}
