package token

import (
	"context"

	"morpho/core"
	"morpho/pkg/contracts"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

type service struct {
	caller ethereum.ContractCaller
}

// New new erc20 token service
func New(caller ethereum.ContractCaller) core.ITokenService {
	return &service{caller: caller}
}

func (s *service) Find(ctx context.Context, address common.Address) (*core.Token, error) {
	c := contracts.New(address, contracts.ERC20ABI, s.caller)
	token := &core.Token{Address: address}

	if err := c.Call(ctx, &token.Symbol, "symbol"); err != nil {
		return nil, err
	}

	if err := c.Call(ctx, &token.Decimals, "decimals"); err != nil {
		return nil, err
	}

	return token, nil
}
