package blue

import (
	"fmt"
	"time"

	"morpho/core"
	"morpho/internal/morpho"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// MaxUint128 market totals are stored as uint128 on chain
var MaxUint128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))

// MarketID keccak256(abi.encode(params))
func MarketID(params *core.MarketParams) core.MarketID {
	lltv := new(uint256.Int)
	if params.Lltv != nil {
		lltv = params.Lltv
	}

	b := lltv.Bytes32()
	hash := crypto.Keccak256Hash(
		common.LeftPadBytes(params.LoanToken.Bytes(), 32),
		common.LeftPadBytes(params.CollateralToken.Bytes(), 32),
		common.LeftPadBytes(params.Oracle.Bytes(), 32),
		common.LeftPadBytes(params.Irm.Bytes(), 32),
		b[:],
	)

	return core.MarketID(hash)
}

// AccrueInterest project market to t with the borrow rate per second,
// returns the projected copy and the interest accrued since LastUpdate.
//
// Mirrors Morpho._accrueInterest: the interest is added to both total supply
// and total borrow, the fee part is minted as supply shares to the fee recipient.
// The input market is never mutated.
func AccrueInterest(market *core.Market, borrowRate *uint256.Int, t time.Time) (*core.Market, *uint256.Int, error) {
	expected := market.Clone()
	interest := new(uint256.Int)

	now := unixSeconds(t)
	if !now.Gt(expected.LastUpdate) {
		return expected, interest, nil
	}

	elapsed := new(uint256.Int).Sub(now, expected.LastUpdate)
	expected.LastUpdate = now

	// nothing accrues, but the market is still touched
	if borrowRate == nil || borrowRate.IsZero() || expected.TotalBorrowAssets.IsZero() {
		return expected, interest, nil
	}

	growth, err := morpho.WTaylorCompounded(borrowRate, elapsed)
	if err != nil {
		return nil, nil, fmt.Errorf("compound rate %s over %s seconds: %w", borrowRate, elapsed, err)
	}

	interest, err = morpho.WMulDown(expected.TotalBorrowAssets, growth)
	if err != nil {
		return nil, nil, fmt.Errorf("interest: %w", err)
	}

	if expected.TotalBorrowAssets, err = addUint128(expected.TotalBorrowAssets, interest); err != nil {
		return nil, nil, fmt.Errorf("total borrow assets: %w", err)
	}

	if expected.TotalSupplyAssets, err = addUint128(expected.TotalSupplyAssets, interest); err != nil {
		return nil, nil, fmt.Errorf("total supply assets: %w", err)
	}

	if !expected.Fee.IsZero() {
		feeAmount, err := morpho.WMulDown(interest, expected.Fee)
		if err != nil {
			return nil, nil, fmt.Errorf("fee amount: %w", err)
		}

		if feeAmount.Gt(expected.TotalSupplyAssets) {
			return nil, nil, fmt.Errorf("fee amount %s exceeds total supply %s: %w", feeAmount, expected.TotalSupplyAssets, morpho.ErrOverflow)
		}

		// shares are priced on the supply before the fee is added
		supplyBeforeFee := new(uint256.Int).Sub(expected.TotalSupplyAssets, feeAmount)
		feeShares, err := morpho.ToSharesDown(feeAmount, supplyBeforeFee, expected.TotalSupplyShares)
		if err != nil {
			return nil, nil, fmt.Errorf("fee shares: %w", err)
		}

		if expected.TotalSupplyShares, err = addUint128(expected.TotalSupplyShares, feeShares); err != nil {
			return nil, nil, fmt.Errorf("total supply shares: %w", err)
		}
	}

	return expected, interest, nil
}

// Utilization total borrow / total supply in WAD, zero for an empty market
func Utilization(market *core.Market) (*uint256.Int, error) {
	if market.TotalSupplyAssets == nil || market.TotalSupplyAssets.IsZero() {
		return new(uint256.Int), nil
	}

	return morpho.WDivDown(market.TotalBorrowAssets, market.TotalSupplyAssets)
}

func unixSeconds(t time.Time) *uint256.Int {
	sec := t.Unix()
	if sec < 0 {
		return new(uint256.Int)
	}

	return uint256.NewInt(uint64(sec))
}

func addUint128(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow || z.Gt(MaxUint128) {
		return nil, fmt.Errorf("%s + %s exceeds uint128: %w", x, y, morpho.ErrOverflow)
	}

	return z, nil
}
