package contracts

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed abis/*.json
var abiFS embed.FS

var (
	// MorphoABI morpho blue singleton
	MorphoABI = mustParse("morpho.json")
	// IrmABI interest rate model, adaptive curve or any IIrm
	IrmABI = mustParse("irm.json")
	// OracleABI IOracle
	OracleABI = mustParse("oracle.json")
	// VaultABI metamorpho vault
	VaultABI = mustParse("vault.json")
	// FactoryABI metamorpho factory
	FactoryABI = mustParse("factory.json")
	// ERC20ABI erc20 metadata
	ERC20ABI = mustParse("erc20.json")
)

// ParseABI parse the embedded abi file
func ParseABI(name string) (abi.ABI, error) {
	data, err := abiFS.ReadFile("abis/" + name)
	if err != nil {
		return abi.ABI{}, err
	}

	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse abi %s: %w", name, err)
	}

	return parsed, nil
}

func mustParse(name string) abi.ABI {
	parsed, err := ParseABI(name)
	if err != nil {
		panic(err)
	}

	return parsed
}
