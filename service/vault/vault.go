package vault

import (
	"context"
	"fmt"
	"math/big"

	"morpho/core"
	"morpho/pkg/contracts"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

type service struct {
	caller ethereum.ContractCaller
}

// New new metamorpho vault service
func New(caller ethereum.ContractCaller) core.IVaultService {
	return &service{caller: caller}
}

func (s *service) Vault(ctx context.Context, address common.Address) (*core.Vault, error) {
	c := contracts.New(address, contracts.VaultABI, s.caller)
	vault := &core.Vault{Address: address}

	if err := c.Call(ctx, &vault.Name, "name"); err != nil {
		return nil, err
	}

	if err := c.Call(ctx, &vault.Symbol, "symbol"); err != nil {
		return nil, err
	}

	if err := c.Call(ctx, &vault.Asset, "asset"); err != nil {
		return nil, err
	}

	if err := c.Call(ctx, &vault.Decimals, "decimals"); err != nil {
		return nil, err
	}

	var totalAssets, totalSupply *big.Int
	if err := c.Call(ctx, &totalAssets, "totalAssets"); err != nil {
		return nil, err
	}

	if err := c.Call(ctx, &totalSupply, "totalSupply"); err != nil {
		return nil, err
	}

	var err error
	if vault.TotalAssets, err = contracts.ToUint256(totalAssets); err != nil {
		return nil, fmt.Errorf("vault %s total assets: %w", address.Hex(), err)
	}

	if vault.TotalSupply, err = contracts.ToUint256(totalSupply); err != nil {
		return nil, fmt.Errorf("vault %s total supply: %w", address.Hex(), err)
	}

	return vault, nil
}
