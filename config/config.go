package config

import (
	"fmt"

	"morpho/core"

	"github.com/asaskevich/govalidator"
	"github.com/ethereum/go-ethereum/common"
	configUtil "github.com/fox-one/pkg/config"
)

const (
	envPrefix = "MORPHO"

	defaultMorpho           = "0xBBBBBbbBBb9cC5e90e3b3Af64bdAF62C37EEFFCb"
	defaultMorphoFromBlock  = 21_250_000
	defaultFactory          = "0xA9c3D3a366466Fa809d1Ae982Fb2c46E5fC41101"
	defaultFactoryFromBlock = 18_925_584
	defaultVault            = "0xBEEF01735c132Ada46AA9aA4c54623cAA92A64CB"
	defaultVaultFromBlock   = 21_200_000
	defaultMarket           = "0xb48bb53f0f2690c71e8813f2dc7ed6fca9ac4b0ace3faa37b4a8e5ece38fa1a2"
	defaultPriceEndPoint    = "https://blue-api.morpho.org/graphql"
	defaultPriceLimit       = 1000
	defaultMonitorSpec      = "@every 30s"
	defaultConcurrency      = 4
	defaultLocation         = "UTC"
)

func init() {
	govalidator.TagMap["morphoaddress"] = govalidator.Validator(common.IsHexAddress)
}

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv(envPrefix)
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultConfig(config)
	return Validate(config)
}

// Validate check required fields and formats
func Validate(config *core.Config) error {
	if _, err := govalidator.ValidateStruct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	for _, id := range config.Morpho.Markets {
		if _, err := core.ParseMarketID(id); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	for _, v := range config.Morpho.Vaults {
		if !common.IsHexAddress(v) {
			return fmt.Errorf("invalid config: vault %q is not an address", v)
		}
	}

	return nil
}

// Default config pointing at the ethereum mainnet deployment, without any node endpoint
func Default() *core.Config {
	var config core.Config
	defaultConfig(&config)
	return &config
}

func defaultConfig(config *core.Config) {
	m := &config.Morpho
	if m.Address == "" {
		m.Address = defaultMorpho
	}

	if m.FromBlock == 0 {
		m.FromBlock = defaultMorphoFromBlock
	}

	if m.Factory == "" {
		m.Factory = defaultFactory
	}

	if m.FactoryFromBlock == 0 {
		m.FactoryFromBlock = defaultFactoryFromBlock
	}

	if len(m.Markets) == 0 {
		m.Markets = []string{defaultMarket}
	}

	if len(m.Vaults) == 0 {
		m.Vaults = []string{defaultVault}
	}

	if m.VaultFromBlock == 0 {
		m.VaultFromBlock = defaultVaultFromBlock
	}

	if config.PriceOracle.EndPoint == "" {
		config.PriceOracle.EndPoint = defaultPriceEndPoint
	}

	if config.PriceOracle.Limit <= 0 {
		config.PriceOracle.Limit = defaultPriceLimit
	}

	if config.Monitor.Spec == "" {
		config.Monitor.Spec = defaultMonitorSpec
	}

	if config.Monitor.Concurrency <= 0 {
		config.Monitor.Concurrency = defaultConcurrency
	}

	if config.App.Location == "" {
		config.App.Location = defaultLocation
	}
}
