package cmd

import (
	"context"
	"fmt"
	"io"

	"morpho/core"

	"github.com/spf13/cobra"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "list usd prices from the morpho api",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPrices(cmd.Context(), cmd.OutOrStdout(), providePriceService())
	},
}

func init() {
	rootCmd.AddCommand(pricesCmd)
}

func printPrices(ctx context.Context, out io.Writer, prices core.IPriceService) error {
	assets, err := prices.UsdPrices(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Got %d assets\n", len(assets))
	for _, asset := range assets {
		price := "none"
		if asset.PriceUsd != nil {
			price = fmt.Sprintf("%g", *asset.PriceUsd)
		}

		fmt.Fprintf(out, "chain %d %s %s decimals %d price %s\n", asset.ChainID, asset.Symbol, asset.Token.Hex(), asset.Decimals, price)
	}

	return nil
}
