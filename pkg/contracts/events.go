package contracts

import (
	"fmt"
	"math/big"

	"morpho/core"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	// SourceMorpho morpho blue singleton
	SourceMorpho = "morpho"
	// SourceVault metamorpho vault
	SourceVault = "vault"
	// SourceFactory metamorpho factory
	SourceFactory = "factory"
)

// Field names below are the camel cased abi argument names, abi.ParseTopics
// and abi.Arguments.Copy look them up by name.

// CreateMarket Morpho.CreateMarket
type CreateMarket struct {
	Id           common.Hash
	MarketParams MarketParams
}

// Supply Morpho.Supply
type Supply struct {
	Id       common.Hash
	Caller   common.Address
	OnBehalf common.Address
	Assets   *big.Int
	Shares   *big.Int
}

// Withdraw Morpho.Withdraw
type Withdraw struct {
	Id       common.Hash
	Caller   common.Address
	OnBehalf common.Address
	Receiver common.Address
	Assets   *big.Int
	Shares   *big.Int
}

// Borrow Morpho.Borrow
type Borrow struct {
	Id       common.Hash
	Caller   common.Address
	OnBehalf common.Address
	Receiver common.Address
	Assets   *big.Int
	Shares   *big.Int
}

// Repay Morpho.Repay
type Repay struct {
	Id       common.Hash
	Caller   common.Address
	OnBehalf common.Address
	Assets   *big.Int
	Shares   *big.Int
}

// SupplyCollateral Morpho.SupplyCollateral
type SupplyCollateral struct {
	Id       common.Hash
	Caller   common.Address
	OnBehalf common.Address
	Assets   *big.Int
}

// WithdrawCollateral Morpho.WithdrawCollateral
type WithdrawCollateral struct {
	Id       common.Hash
	Caller   common.Address
	OnBehalf common.Address
	Receiver common.Address
	Assets   *big.Int
}

// Liquidate Morpho.Liquidate
type Liquidate struct {
	Id            common.Hash
	Caller        common.Address
	Borrower      common.Address
	RepaidAssets  *big.Int
	RepaidShares  *big.Int
	SeizedAssets  *big.Int
	BadDebtAssets *big.Int
	BadDebtShares *big.Int
}

// AccrueInterest Morpho.AccrueInterest
type AccrueInterest struct {
	Id             common.Hash
	PrevBorrowRate *big.Int
	Interest       *big.Int
	FeeShares      *big.Int
}

// VaultDeposit MetaMorpho.Deposit
type VaultDeposit struct {
	Sender common.Address
	Owner  common.Address
	Assets *big.Int
	Shares *big.Int
}

// VaultWithdraw MetaMorpho.Withdraw
type VaultWithdraw struct {
	Sender   common.Address
	Receiver common.Address
	Owner    common.Address
	Assets   *big.Int
	Shares   *big.Int
}

// Transfer MetaMorpho share transfer
type Transfer struct {
	From  common.Address
	To    common.Address
	Value *big.Int
}

// UpdateLastTotalAssets MetaMorpho.UpdateLastTotalAssets
type UpdateLastTotalAssets struct {
	UpdatedTotalAssets *big.Int
}

// CreateMetaMorpho MetaMorphoFactory.CreateMetaMorpho
type CreateMetaMorpho struct {
	MetaMorpho      common.Address
	Caller          common.Address
	InitialOwner    common.Address
	InitialTimelock *big.Int
	Asset           common.Address
	Name            string
	Symbol          string
	Salt            common.Hash
}

type eventDecoder struct {
	source string
	event  abi.Event
	alloc  func() interface{}
}

var decoders = map[common.Hash]eventDecoder{}

func register(source string, contractABI abi.ABI, name string, alloc func() interface{}) {
	event, ok := contractABI.Events[name]
	if !ok {
		panic(fmt.Sprintf("event %s not found in %s abi", name, source))
	}

	decoders[event.ID] = eventDecoder{
		source: source,
		event:  event,
		alloc:  alloc,
	}
}

func init() {
	register(SourceMorpho, MorphoABI, "CreateMarket", func() interface{} { return &CreateMarket{} })
	register(SourceMorpho, MorphoABI, "Supply", func() interface{} { return &Supply{} })
	register(SourceMorpho, MorphoABI, "Withdraw", func() interface{} { return &Withdraw{} })
	register(SourceMorpho, MorphoABI, "Borrow", func() interface{} { return &Borrow{} })
	register(SourceMorpho, MorphoABI, "Repay", func() interface{} { return &Repay{} })
	register(SourceMorpho, MorphoABI, "SupplyCollateral", func() interface{} { return &SupplyCollateral{} })
	register(SourceMorpho, MorphoABI, "WithdrawCollateral", func() interface{} { return &WithdrawCollateral{} })
	register(SourceMorpho, MorphoABI, "Liquidate", func() interface{} { return &Liquidate{} })
	register(SourceMorpho, MorphoABI, "AccrueInterest", func() interface{} { return &AccrueInterest{} })

	register(SourceVault, VaultABI, "Deposit", func() interface{} { return &VaultDeposit{} })
	register(SourceVault, VaultABI, "Withdraw", func() interface{} { return &VaultWithdraw{} })
	register(SourceVault, VaultABI, "Transfer", func() interface{} { return &Transfer{} })
	register(SourceVault, VaultABI, "UpdateLastTotalAssets", func() interface{} { return &UpdateLastTotalAssets{} })

	register(SourceFactory, FactoryABI, "CreateMetaMorpho", func() interface{} { return &CreateMetaMorpho{} })
}

// EventID topic0 of a known event
func EventID(source, name string) (common.Hash, bool) {
	for id, d := range decoders {
		if d.source == source && d.event.Name == name {
			return id, true
		}
	}

	return common.Hash{}, false
}

// DecodeLog decode a log by its topic0. Logs of events this package does not
// know return core.ErrUnknownEvent.
func DecodeLog(log types.Log) (*core.Event, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("log %s#%d has no topics: %w", log.TxHash.Hex(), log.Index, core.ErrUnknownEvent)
	}

	d, ok := decoders[log.Topics[0]]
	if !ok {
		return nil, fmt.Errorf("topic %s: %w", log.Topics[0].Hex(), core.ErrUnknownEvent)
	}

	out := d.alloc()
	if err := decodeInto(d.event, out, log); err != nil {
		return nil, fmt.Errorf("decode %s log %s#%d: %w: %w", d.event.Name, log.TxHash.Hex(), log.Index, core.ErrDecode, err)
	}

	return &core.Event{
		Name:     d.event.Name,
		Contract: d.source,
		Address:  log.Address,
		Block:    log.BlockNumber,
		TxHash:   log.TxHash,
		Index:    log.Index,
		Data:     out,
	}, nil
}

func decodeInto(event abi.Event, out interface{}, log types.Log) error {
	values, err := event.Inputs.Unpack(log.Data)
	if err != nil {
		return err
	}

	if err := event.Inputs.Copy(out, values); err != nil {
		return err
	}

	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}

	if len(log.Topics)-1 != len(indexed) {
		return fmt.Errorf("want %d indexed topics, got %d", len(indexed), len(log.Topics)-1)
	}

	return abi.ParseTopics(out, indexed, log.Topics[1:])
}
