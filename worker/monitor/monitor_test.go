package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"morpho/core"
	"morpho/pkg/blue"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yiplee/structs"
)

type fakeMarkets struct {
	core.IMarketService
	market *core.Market
	err    error
	calls  int
}

func (f *fakeMarkets) Markets(_ context.Context, ids []core.MarketID, t time.Time) ([]*core.MarketState, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	rate := uint256.NewInt(317097919)
	states := make([]*core.MarketState, 0, len(ids))
	for _, id := range ids {
		expected, interest, err := blue.AccrueInterest(f.market, rate, t)
		if err != nil {
			return nil, err
		}

		states = append(states, &core.MarketState{
			ID:         id,
			Market:     f.market,
			Expected:   expected,
			BorrowRate: rate,
			Interest:   interest,
			Time:       t,
		})
	}

	return states, nil
}

func testMarket() *core.Market {
	wad := uint256.NewInt(1e18)
	return &core.Market{
		TotalSupplyAssets: new(uint256.Int).Mul(uint256.NewInt(2_000_000), wad),
		TotalSupplyShares: new(uint256.Int).Mul(uint256.NewInt(2_000_000_000_000), wad),
		TotalBorrowAssets: new(uint256.Int).Mul(uint256.NewInt(1_000_000), wad),
		TotalBorrowShares: new(uint256.Int).Mul(uint256.NewInt(1_000_000_000_000), wad),
		LastUpdate:        uint256.NewInt(1_700_000_000),
		Fee:               new(uint256.Int),
	}
}

var id = core.MarketID(common.HexToHash("0xb48bb53f0f2690c71e8813f2dc7ed6fca9ac4b0ace3faa37b4a8e5ece38fa1a2"))

func TestNew(t *testing.T) {
	_, err := New(&fakeMarkets{}, nil, core.Monitor{Spec: "@every 30s"}, time.UTC)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = New(&fakeMarkets{}, []core.MarketID{id}, core.Monitor{Spec: "sometimes"}, time.UTC)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = New(&fakeMarkets{}, []core.MarketID{id}, core.Monitor{Spec: "@every 30s"}, time.UTC)
	assert.NoError(t, err)
}

func TestNewView(t *testing.T) {
	structs.DefaultTagName = "json"

	f := &fakeMarkets{market: testMarket()}
	states, err := f.Markets(context.Background(), []core.MarketID{id}, time.Unix(1_700_000_000+31536000, 0))
	require.NoError(t, err)

	view, err := NewView(states[0])
	require.NoError(t, err)

	fields := structs.Map(view)
	assert.Equal(t, id.Hex(), fields["market"])
	assert.Equal(t, "10050166639985185000000", fields["interest"])
	assert.Equal(t, "1010050166639985185000000", fields["total_borrow_assets"])
	assert.Equal(t, int64(31536000), fields["elapsed"])
	assert.Equal(t, "0.502499979056936951", fields["utilization"])
}

func TestOnWork(t *testing.T) {
	f := &fakeMarkets{market: testMarket()}
	w, err := New(f, []core.MarketID{id, id}, core.Monitor{Spec: "@every 30s"}, time.UTC)
	require.NoError(t, err)
	w.now = func() time.Time { return time.Unix(1_700_000_060, 0) }

	require.NoError(t, w.onWork(context.Background()))
	assert.Equal(t, 1, f.calls)

	f.err = errors.New("rpc down")
	assert.Error(t, w.onWork(context.Background()))
}
