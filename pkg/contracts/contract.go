package contracts

import (
	"context"
	"fmt"

	"morpho/core"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract read only binding of a deployed contract
type Contract struct {
	address common.Address
	abi     abi.ABI
	caller  ethereum.ContractCaller
}

// New bind abi to address
func New(address common.Address, contractABI abi.ABI, caller ethereum.ContractCaller) *Contract {
	return &Contract{
		address: address,
		abi:     contractABI,
		caller:  caller,
	}
}

// Address contract address
func (c *Contract) Address() common.Address {
	return c.address
}

// Call eth_call method at the latest block and unpack the result into out.
// A single output must be unpacked into a pointer to its go type, multiple
// outputs into a struct whose fields are the camel cased output names.
func (c *Contract) Call(ctx context.Context, out interface{}, method string, args ...interface{}) error {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("pack %s: %w: %w", method, core.ErrInvalidArgument, err)
	}

	msg := ethereum.CallMsg{To: &c.address, Data: input}
	output, err := c.caller.CallContract(ctx, msg, nil)
	if err != nil {
		return fmt.Errorf("call %s on %s: %w: %w", method, c.address.Hex(), core.ErrNetwork, err)
	}

	if len(output) == 0 {
		return fmt.Errorf("call %s on %s: empty result: %w", method, c.address.Hex(), core.ErrDecode)
	}

	if err := c.abi.UnpackIntoInterface(out, method, output); err != nil {
		return fmt.Errorf("unpack %s from %s: %w: %w", method, c.address.Hex(), core.ErrDecode, err)
	}

	return nil
}
