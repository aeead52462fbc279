package contracts

import (
	"fmt"
	"math/big"

	"morpho/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// MarketParams abi MarketParams tuple, field order follows the solidity struct
type MarketParams struct {
	LoanToken       common.Address
	CollateralToken common.Address
	Oracle          common.Address
	Irm             common.Address
	Lltv            *big.Int
}

// Market abi Market tuple, also the outputs of Morpho.market
type Market struct {
	TotalSupplyAssets *big.Int
	TotalSupplyShares *big.Int
	TotalBorrowAssets *big.Int
	TotalBorrowShares *big.Int
	LastUpdate        *big.Int
	Fee               *big.Int
}

// Position outputs of Morpho.position
type Position struct {
	SupplyShares *big.Int
	BorrowShares *big.Int
	Collateral   *big.Int
}

// NewMarketParams abi tuple from core params
func NewMarketParams(p *core.MarketParams) MarketParams {
	return MarketParams{
		LoanToken:       p.LoanToken,
		CollateralToken: p.CollateralToken,
		Oracle:          p.Oracle,
		Irm:             p.Irm,
		Lltv:            ToBig(p.Lltv),
	}
}

// Core convert to core params
func (p MarketParams) Core() (*core.MarketParams, error) {
	lltv, err := ToUint256(p.Lltv)
	if err != nil {
		return nil, fmt.Errorf("lltv: %w", err)
	}

	return &core.MarketParams{
		LoanToken:       p.LoanToken,
		CollateralToken: p.CollateralToken,
		Oracle:          p.Oracle,
		Irm:             p.Irm,
		Lltv:            lltv,
	}, nil
}

// NewMarket abi tuple from core market
func NewMarket(m *core.Market) Market {
	return Market{
		TotalSupplyAssets: ToBig(m.TotalSupplyAssets),
		TotalSupplyShares: ToBig(m.TotalSupplyShares),
		TotalBorrowAssets: ToBig(m.TotalBorrowAssets),
		TotalBorrowShares: ToBig(m.TotalBorrowShares),
		LastUpdate:        ToBig(m.LastUpdate),
		Fee:               ToBig(m.Fee),
	}
}

// Core convert to core market
func (m Market) Core() (*core.Market, error) {
	values, err := toUint256s(m.TotalSupplyAssets, m.TotalSupplyShares, m.TotalBorrowAssets, m.TotalBorrowShares, m.LastUpdate, m.Fee)
	if err != nil {
		return nil, fmt.Errorf("market: %w", err)
	}

	return &core.Market{
		TotalSupplyAssets: values[0],
		TotalSupplyShares: values[1],
		TotalBorrowAssets: values[2],
		TotalBorrowShares: values[3],
		LastUpdate:        values[4],
		Fee:               values[5],
	}, nil
}

// Core convert to core position
func (p Position) Core() (*core.Position, error) {
	values, err := toUint256s(p.SupplyShares, p.BorrowShares, p.Collateral)
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}

	return &core.Position{
		SupplyShares: values[0],
		BorrowShares: values[1],
		Collateral:   values[2],
	}, nil
}

// ToUint256 nil is zero, negative or wider than 256 bits is a decode error
func ToUint256(x *big.Int) (*uint256.Int, error) {
	if x == nil {
		return new(uint256.Int), nil
	}

	if x.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s: %w", x, core.ErrDecode)
	}

	v, overflow := uint256.FromBig(x)
	if overflow {
		return nil, fmt.Errorf("value %s exceeds 256 bits: %w", x, core.ErrDecode)
	}

	return v, nil
}

// ToBig nil is zero
func ToBig(x *uint256.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}

	return x.ToBig()
}

func toUint256s(xs ...*big.Int) ([]*uint256.Int, error) {
	values := make([]*uint256.Int, len(xs))
	for i, x := range xs {
		v, err := ToUint256(x)
		if err != nil {
			return nil, err
		}

		values[i] = v
	}

	return values, nil
}
