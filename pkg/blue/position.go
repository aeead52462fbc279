package blue

import (
	"morpho/core"
	"morpho/internal/morpho"

	"github.com/holiman/uint256"
)

// SupplyAssets loan assets a position can withdraw, rounded down
func SupplyAssets(position *core.Position, market *core.Market) (*uint256.Int, error) {
	return morpho.ToAssetsDown(orZero(position.SupplyShares), orZero(market.TotalSupplyAssets), orZero(market.TotalSupplyShares))
}

// BorrowAssets loan assets a position owes, rounded up
func BorrowAssets(position *core.Position, market *core.Market) (*uint256.Int, error) {
	return morpho.ToAssetsUp(orZero(position.BorrowShares), orZero(market.TotalBorrowAssets), orZero(market.TotalBorrowShares))
}

// MaxBorrow collateral value in loan assets times lltv.
// price is the oracle price scaled by 1e36.
func MaxBorrow(position *core.Position, params *core.MarketParams, price *uint256.Int) (*uint256.Int, error) {
	collateralValue, err := morpho.MulDivDown(orZero(position.Collateral), orZero(price), morpho.OraclePriceScale)
	if err != nil {
		return nil, err
	}

	return morpho.WMulDown(collateralValue, orZero(params.Lltv))
}

// IsHealthy position with no debt is always healthy
func IsHealthy(position *core.Position, params *core.MarketParams, market *core.Market, price *uint256.Int) (bool, error) {
	if orZero(position.BorrowShares).IsZero() {
		return true, nil
	}

	borrowed, err := BorrowAssets(position, market)
	if err != nil {
		return false, err
	}

	maxBorrow, err := MaxBorrow(position, params, price)
	if err != nil {
		return false, err
	}

	return !borrowed.Gt(maxBorrow), nil
}

func orZero(x *uint256.Int) *uint256.Int {
	if x == nil {
		return new(uint256.Int)
	}

	return x
}
