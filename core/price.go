package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Asset price index entry
type Asset struct {
	Token common.Address `json:"token"`
	// nil when the index has no price for the asset
	PriceUsd *float64 `json:"price_usd,omitempty"`
	Decimals uint64   `json:"decimals"`
	Symbol   string   `json:"symbol"`
	ChainID  uint64   `json:"chain_id"`
}

// IPriceService usd price feed interface
type IPriceService interface {
	UsdPrices(ctx context.Context) ([]*Asset, error)
}
