package cmd

import (
	"fmt"
	"time"

	"github.com/drone/signal"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var exampleCmd = &cobra.Command{
	Use:   "exam",
	Short: "run every reader once: market, markets, events, vault, vaults, vault activity, prices, then watch",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		out := cmd.OutOrStdout()

		id, err := marketIDFlag(cmd)
		if err != nil {
			return err
		}

		address, err := vaultAddressFlag(cmd)
		if err != nil {
			return err
		}

		client, err := provideClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		markets := provideMarketService(client)
		tokens := provideTokenService(client)
		events := provideEventService(client)

		steps := []struct {
			name string
			run  func() error
		}{
			{"market", func() error { return printMarket(ctx, out, markets, tokens, id, time.Now()) }},
			{"position", func() error {
				return printPosition(ctx, out, markets, id, common.HexToAddress(defaultUser), time.Now())
			}},
			{"markets", func() error { return printMarkets(ctx, out, events, markets, 0, false) }},
			{"events", func() error { return printEvents(ctx, out, events, 0) }},
			{"vault", func() error { return printVault(ctx, out, provideVaultService(client), tokens, address) }},
			{"vaults", func() error { return printVaults(ctx, out, events) }},
			{"vault-activity", func() error { return printVaultActivity(ctx, out, events, address, 0) }},
			{"prices", func() error { return printPrices(ctx, out, providePriceService()) }},
		}

		for _, step := range steps {
			fmt.Fprintf(out, "== %s\n", step.name)
			if err := step.run(); err != nil {
				return fmt.Errorf("%s: %w", step.name, err)
			}
		}

		if cfg.Chain.WS == "" {
			log.Infoln("chain.ws is not configured, skip watch")
			return nil
		}

		fmt.Fprintln(out, "== watch")
		ws, err := provideWSClient(ctx)
		if err != nil {
			return err
		}
		defer ws.Close()

		return watch(ctx, out, provideEventService(ws))
	},
}

func init() {
	exampleCmd.Flags().String("id", "", "market id, default is the first configured market")
	exampleCmd.Flags().String("address", "", "vault address, default is the first configured vault")
	rootCmd.AddCommand(exampleCmd)
}
