package morpho

import (
	"github.com/holiman/uint256"
)

var (
	// VirtualShares virtual shares added to every share total, protects against share inflation
	VirtualShares = uint256.NewInt(1e6)
	// VirtualAssets virtual assets added to every asset total
	VirtualAssets = uint256.NewInt(1)
	// OraclePriceScale scale of the price returned by a market oracle, 1e36
	OraclePriceScale = new(uint256.Int).Mul(WAD, WAD)
)

// ToSharesDown assets -> shares, rounded down
func ToSharesDown(assets, totalAssets, totalShares *uint256.Int) (*uint256.Int, error) {
	shares, total, err := virtualTotals(totalShares, totalAssets)
	if err != nil {
		return nil, err
	}

	return MulDivDown(assets, shares, total)
}

// ToSharesUp assets -> shares, rounded up
func ToSharesUp(assets, totalAssets, totalShares *uint256.Int) (*uint256.Int, error) {
	shares, total, err := virtualTotals(totalShares, totalAssets)
	if err != nil {
		return nil, err
	}

	return MulDivUp(assets, shares, total)
}

// ToAssetsDown shares -> assets, rounded down
func ToAssetsDown(shares, totalAssets, totalShares *uint256.Int) (*uint256.Int, error) {
	shareTotal, assetTotal, err := virtualTotals(totalShares, totalAssets)
	if err != nil {
		return nil, err
	}

	return MulDivDown(shares, assetTotal, shareTotal)
}

// ToAssetsUp shares -> assets, rounded up
func ToAssetsUp(shares, totalAssets, totalShares *uint256.Int) (*uint256.Int, error) {
	shareTotal, assetTotal, err := virtualTotals(totalShares, totalAssets)
	if err != nil {
		return nil, err
	}

	return MulDivUp(shares, assetTotal, shareTotal)
}

func virtualTotals(totalShares, totalAssets *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	shares, overflow := new(uint256.Int).AddOverflow(totalShares, VirtualShares)
	if overflow {
		return nil, nil, ErrOverflow
	}

	assets, overflow := new(uint256.Int).AddOverflow(totalAssets, VirtualAssets)
	if overflow {
		return nil, nil, ErrOverflow
	}

	return shares, assets, nil
}
