package core

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// MarketID morpho blue market id, keccak256 of the abi encoded market params
type MarketID common.Hash

// ParseMarketID parse a 0x prefixed 32 bytes hex string
func ParseMarketID(s string) (MarketID, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return MarketID{}, fmt.Errorf("invalid market id %q: %w", s, err)
	}

	if len(b) != common.HashLength {
		return MarketID{}, fmt.Errorf("invalid market id %q: want %d bytes, got %d", s, common.HashLength, len(b))
	}

	return MarketID(common.BytesToHash(b)), nil
}

// Hex 0x prefixed hex string
func (id MarketID) Hex() string {
	return common.Hash(id).Hex()
}

func (id MarketID) String() string {
	return id.Hex()
}

// MarshalText hex text encoding
func (id MarketID) MarshalText() ([]byte, error) {
	return common.Hash(id).MarshalText()
}

// MarketParams immutable params a market is created with
type MarketParams struct {
	LoanToken       common.Address `json:"loan_token"`
	CollateralToken common.Address `json:"collateral_token"`
	Oracle          common.Address `json:"oracle"`
	Irm             common.Address `json:"irm"`
	// liquidation loan to value, WAD
	Lltv *uint256.Int `json:"lltv"`
}

// Market market state as stored by morpho, all values are raw token units
type Market struct {
	TotalSupplyAssets *uint256.Int `json:"total_supply_assets"`
	TotalSupplyShares *uint256.Int `json:"total_supply_shares"`
	TotalBorrowAssets *uint256.Int `json:"total_borrow_assets"`
	TotalBorrowShares *uint256.Int `json:"total_borrow_shares"`
	// unix seconds of the last interest accrual
	LastUpdate *uint256.Int `json:"last_update"`
	// share of the interest taken by the protocol, WAD
	Fee *uint256.Int `json:"fee"`
}

// Clone deep copy
func (m *Market) Clone() *Market {
	return &Market{
		TotalSupplyAssets: cloneInt(m.TotalSupplyAssets),
		TotalSupplyShares: cloneInt(m.TotalSupplyShares),
		TotalBorrowAssets: cloneInt(m.TotalBorrowAssets),
		TotalBorrowShares: cloneInt(m.TotalBorrowShares),
		LastUpdate:        cloneInt(m.LastUpdate),
		Fee:               cloneInt(m.Fee),
	}
}

// Position a user position on one market
type Position struct {
	SupplyShares *uint256.Int `json:"supply_shares"`
	BorrowShares *uint256.Int `json:"borrow_shares"`
	Collateral   *uint256.Int `json:"collateral"`
}

// MarketState on-chain market together with its interest projection
type MarketState struct {
	ID     MarketID      `json:"id"`
	Params *MarketParams `json:"params"`
	// as last written on chain
	Market *Market `json:"market"`
	// projected to Time
	Expected   *Market      `json:"expected"`
	BorrowRate *uint256.Int `json:"borrow_rate"`
	Interest   *uint256.Int `json:"interest"`
	Time       time.Time    `json:"time"`
}

// IMarketService market query interface
type IMarketService interface {
	Params(ctx context.Context, id MarketID) (*MarketParams, error)
	Market(ctx context.Context, id MarketID) (*Market, error)
	Position(ctx context.Context, id MarketID, user common.Address) (*Position, error)
	OraclePrice(ctx context.Context, oracle common.Address) (*uint256.Int, error)
	BorrowRate(ctx context.Context, params *MarketParams, market *Market) (*uint256.Int, error)
	ExpectedMarket(ctx context.Context, id MarketID, t time.Time) (*MarketState, error)
	Markets(ctx context.Context, ids []MarketID, t time.Time) ([]*MarketState, error)
}

func cloneInt(x *uint256.Int) *uint256.Int {
	if x == nil {
		return new(uint256.Int)
	}

	return x.Clone()
}
