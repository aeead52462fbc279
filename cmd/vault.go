package cmd

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"morpho/core"
	"morpho/pkg/contracts"
	"morpho/pkg/number"
	eventservice "morpho/service/event"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "show metamorpho vault details",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		address, err := vaultAddressFlag(cmd)
		if err != nil {
			return err
		}

		client, err := provideClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		return printVault(ctx, cmd.OutOrStdout(), provideVaultService(client), provideTokenService(client), address)
	},
}

var vaultsCmd = &cobra.Command{
	Use:   "vaults",
	Short: "list vaults created by the metamorpho factory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := provideClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		return printVaults(ctx, cmd.OutOrStdout(), provideEventService(client))
	},
}

var vaultActivityCmd = &cobra.Command{
	Use:   "vault-activity",
	Short: "decode deposits, withdrawals, transfers and total asset updates of a vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		from, _ := cmd.Flags().GetUint64("from")

		address, err := vaultAddressFlag(cmd)
		if err != nil {
			return err
		}

		client, err := provideClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		return printVaultActivity(ctx, cmd.OutOrStdout(), provideEventService(client), address, from)
	},
}

func init() {
	vaultCmd.Flags().String("address", "", "vault address, default is the first configured vault")
	rootCmd.AddCommand(vaultCmd)

	rootCmd.AddCommand(vaultsCmd)

	vaultActivityCmd.Flags().String("address", "", "vault address, default is the first configured vault")
	vaultActivityCmd.Flags().Uint64("from", 0, "from block, default is morpho.vault_from_block")
	rootCmd.AddCommand(vaultActivityCmd)
}

func vaultAddressFlag(cmd *cobra.Command) (common.Address, error) {
	s, _ := cmd.Flags().GetString("address")
	if s == "" {
		if len(cfg.Morpho.Vaults) == 0 {
			return common.Address{}, fmt.Errorf("no vault address: %w", core.ErrInvalidArgument)
		}

		s = cfg.Morpho.Vaults[0]
	}

	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("vault %q: %w", s, core.ErrInvalidArgument)
	}

	return common.HexToAddress(s), nil
}

func printVault(ctx context.Context, out io.Writer, vaults core.IVaultService, tokens core.ITokenService, address common.Address) error {
	vault, err := vaults.Vault(ctx, address)
	if err != nil {
		return err
	}

	asset := findToken(ctx, tokens, vault.Asset)
	fmt.Fprintf(out, "Vault %s at address %s has underlying token %s and currently has %s assets under management (%s %s)\n",
		vault.Name, vault.Address.Hex(), vault.Asset.Hex(), vault.TotalAssets.Dec(),
		number.FromUint256(vault.TotalAssets, int32(asset.Decimals)), asset.Symbol)
	fmt.Fprintf(out, "- Symbol: %s\n- Total supply: %s shares\n", vault.Symbol, number.FromUint256(vault.TotalSupply, int32(vault.Decimals)))

	return nil
}

func printVaults(ctx context.Context, out io.Writer, events core.IEventService) error {
	topic, _ := contracts.EventID(contracts.SourceFactory, "CreateMetaMorpho")
	logs, err := events.Logs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(cfg.Morpho.FactoryFromBlock),
		Addresses: []common.Address{cfg.Morpho.FactoryAddress()},
		Topics:    [][]common.Hash{{topic}},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Got %d logs\n", len(logs))
	for _, event := range logs {
		fmt.Fprintln(out, eventservice.Describe(event))
	}

	return nil
}

func printVaultActivity(ctx context.Context, out io.Writer, events core.IEventService, address common.Address, from uint64) error {
	if from == 0 {
		from = cfg.Morpho.VaultFromBlock
	}

	var topics []common.Hash
	for _, name := range []string{"Deposit", "Withdraw", "Transfer", "UpdateLastTotalAssets"} {
		topic, _ := contracts.EventID(contracts.SourceVault, name)
		topics = append(topics, topic)
	}

	logs, err := events.Logs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		Addresses: []common.Address{address},
		Topics:    [][]common.Hash{topics},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Got %d logs\n", len(logs))
	for _, event := range logs {
		fmt.Fprintln(out, eventservice.Describe(event))
	}

	return nil
}
