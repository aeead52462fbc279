package core

import (
	"github.com/ethereum/go-ethereum/common"
)

// Config morpho reader config
type Config struct {
	Chain       Chain       `json:"chain"`
	Morpho      Morpho      `json:"morpho"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Monitor     Monitor     `json:"monitor"`
	App         App         `json:"app"`
}

// Chain node endpoints
type Chain struct {
	RPC string `json:"rpc" valid:"required,url"`
	// websocket endpoint, only needed by watch
	WS string `json:"ws"`
}

// Morpho contract addresses and log ranges
type Morpho struct {
	Address   string `json:"address" valid:"required,morphoaddress"`
	FromBlock uint64 `json:"from_block"`
	// metamorpho factory
	Factory          string `json:"factory" valid:"required,morphoaddress"`
	FactoryFromBlock uint64 `json:"factory_from_block"`
	// markets watched by monitor, hex ids
	Markets []string `json:"markets"`
	// vaults watched by watch and vault-activity
	Vaults         []string `json:"vaults"`
	VaultFromBlock uint64   `json:"vault_from_block"`
}

// MorphoAddress morpho singleton address
func (m Morpho) MorphoAddress() common.Address {
	return common.HexToAddress(m.Address)
}

// FactoryAddress metamorpho factory address
func (m Morpho) FactoryAddress() common.Address {
	return common.HexToAddress(m.Factory)
}

// VaultAddresses configured vault addresses
func (m Morpho) VaultAddresses() []common.Address {
	addresses := make([]common.Address, 0, len(m.Vaults))
	for _, v := range m.Vaults {
		addresses = append(addresses, common.HexToAddress(v))
	}

	return addresses
}

// PriceOracle price api config
type PriceOracle struct {
	EndPoint string `json:"end_point" valid:"required,url"`
	// max assets per query
	Limit int `json:"limit"`
}

// Monitor monitor worker config
type Monitor struct {
	// cron spec, e.g. "@every 30s"
	Spec        string `json:"spec"`
	Concurrency int64  `json:"concurrency"`
}

// App app config
type App struct {
	Location string `json:"location"`
}
