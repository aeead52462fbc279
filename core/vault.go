package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Vault metamorpho vault, an ERC4626 allocating one asset over morpho markets
type Vault struct {
	Address     common.Address `json:"address"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Asset       common.Address `json:"asset"`
	Decimals    uint8          `json:"decimals"`
	TotalAssets *uint256.Int   `json:"total_assets"`
	TotalSupply *uint256.Int   `json:"total_supply"`
}

// IVaultService vault query interface
type IVaultService interface {
	Vault(ctx context.Context, address common.Address) (*Vault, error)
}

// Token ERC20 metadata
type Token struct {
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
}

// ITokenService token metadata interface
type ITokenService interface {
	Find(ctx context.Context, address common.Address) (*Token, error)
}
