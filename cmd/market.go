package cmd

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"morpho/core"
	"morpho/internal/morpho"
	"morpho/pkg/blue"
	"morpho/pkg/contracts"
	"morpho/pkg/number"
	eventservice "morpho/service/event"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const (
	secondsPerYear = 365 * 24 * 60 * 60
	defaultUser    = "0x171c53d55B1BCb725F660677d9e8BAd7fD084282"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "show market params, state, oracle price and projected totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id, err := marketIDFlag(cmd)
		if err != nil {
			return err
		}

		client, err := provideClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		return printMarket(ctx, cmd.OutOrStdout(), provideMarketService(client), provideTokenService(client), id, time.Now())
	},
}

var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "show a user position on a market",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id, err := marketIDFlag(cmd)
		if err != nil {
			return err
		}

		userFlag, _ := cmd.Flags().GetString("user")
		if !common.IsHexAddress(userFlag) {
			return fmt.Errorf("user %q: %w", userFlag, core.ErrInvalidArgument)
		}

		client, err := provideClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		return printPosition(ctx, cmd.OutOrStdout(), provideMarketService(client), id, common.HexToAddress(userFlag), time.Now())
	},
}

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "list markets created since a block",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		from, _ := cmd.Flags().GetUint64("from")
		details, _ := cmd.Flags().GetBool("details")

		client, err := provideClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		return printMarkets(ctx, cmd.OutOrStdout(), provideEventService(client), provideMarketService(client), from, details)
	},
}

func init() {
	marketCmd.Flags().String("id", "", "market id, default is the first configured market")
	rootCmd.AddCommand(marketCmd)

	positionCmd.Flags().String("id", "", "market id, default is the first configured market")
	positionCmd.Flags().String("user", defaultUser, "user address")
	rootCmd.AddCommand(positionCmd)

	marketsCmd.Flags().Uint64("from", 0, "from block, default is morpho.from_block")
	marketsCmd.Flags().Bool("details", false, "also query state and projection of every market")
	rootCmd.AddCommand(marketsCmd)
}

func marketIDFlag(cmd *cobra.Command) (core.MarketID, error) {
	s, _ := cmd.Flags().GetString("id")
	if s == "" {
		if len(cfg.Morpho.Markets) == 0 {
			return core.MarketID{}, fmt.Errorf("no market id: %w", core.ErrInvalidArgument)
		}

		s = cfg.Morpho.Markets[0]
	}

	return core.ParseMarketID(s)
}

func printMarket(ctx context.Context, out io.Writer, markets core.IMarketService, tokens core.ITokenService, id core.MarketID, now time.Time) error {
	state, err := markets.ExpectedMarket(ctx, id, now)
	if err != nil {
		return err
	}

	p, m := state.Params, state.Market
	loan := findToken(ctx, tokens, p.LoanToken)
	collateral := findToken(ctx, tokens, p.CollateralToken)

	fmt.Fprintf(out, "Market with id %s was updated for the last time at timestamp %s\n", id.Hex(), m.LastUpdate.Dec())
	fmt.Fprintf(out, "Market Params:\n- Collateral asset: %s (%s)\n- Loan asset: %s (%s)\n- LLTV: %s\n- Oracle: %s\n- IRM: %s\n",
		p.CollateralToken.Hex(), collateral.Symbol, p.LoanToken.Hex(), loan.Symbol, p.Lltv.Dec(), p.Oracle.Hex(), p.Irm.Hex())
	fmt.Fprintf(out, "Market Data:\n- Fee: %s\n- Total borrow assets: %s\n- Total borrow shares: %s\n- Total supply assets: %s\n- Total supply shares: %s\n",
		m.Fee.Dec(), m.TotalBorrowAssets.Dec(), m.TotalBorrowShares.Dec(), m.TotalSupplyAssets.Dec(), m.TotalSupplyShares.Dec())

	if p.Oracle != (common.Address{}) {
		price, err := markets.OraclePrice(ctx, p.Oracle)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Current price of market oracle is %s\n", price.Dec())
	}

	apy, err := borrowAPY(state.BorrowRate)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Current average rate since last update for this market is %s (%s%% APY)\n", state.BorrowRate.Dec(), apy)

	utilization, err := blue.Utilization(state.Expected)
	if err != nil {
		return err
	}

	e := state.Expected
	fmt.Fprintf(out, "Projected at %s:\n- Interest: %s\n- Total borrow assets: %s (%s %s)\n- Total supply assets: %s (%s %s)\n- Total supply shares: %s\n- Utilization: %s\n",
		now.UTC().Format(time.RFC3339),
		state.Interest.Dec(),
		e.TotalBorrowAssets.Dec(), number.FromUint256(e.TotalBorrowAssets, int32(loan.Decimals)), loan.Symbol,
		e.TotalSupplyAssets.Dec(), number.FromUint256(e.TotalSupplyAssets, int32(loan.Decimals)), loan.Symbol,
		e.TotalSupplyShares.Dec(),
		number.FromWad(utilization),
	)

	return nil
}

func printPosition(ctx context.Context, out io.Writer, markets core.IMarketService, id core.MarketID, user common.Address, now time.Time) error {
	state, err := markets.ExpectedMarket(ctx, id, now)
	if err != nil {
		return err
	}

	position, err := markets.Position(ctx, id, user)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "User %s position on this market:\n- Collateral: %s\n- Borrow shares: %s\n- Supply shares: %s\n",
		user.Hex(), position.Collateral.Dec(), position.BorrowShares.Dec(), position.SupplyShares.Dec())

	supplied, err := blue.SupplyAssets(position, state.Expected)
	if err != nil {
		return err
	}

	borrowed, err := blue.BorrowAssets(position, state.Expected)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "- Supply assets: %s\n- Borrow assets: %s\n", supplied.Dec(), borrowed.Dec())

	if state.Params.Oracle == (common.Address{}) {
		return nil
	}

	price, err := markets.OraclePrice(ctx, state.Params.Oracle)
	if err != nil {
		return err
	}

	maxBorrow, err := blue.MaxBorrow(position, state.Params, price)
	if err != nil {
		return err
	}

	healthy, err := blue.IsHealthy(position, state.Params, state.Expected, price)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "- Max borrow: %s\n- Healthy: %t\n", maxBorrow.Dec(), healthy)
	return nil
}

func printMarkets(ctx context.Context, out io.Writer, events core.IEventService, markets core.IMarketService, from uint64, details bool) error {
	if from == 0 {
		from = cfg.Morpho.FromBlock
	}

	topic, _ := contracts.EventID(contracts.SourceMorpho, "CreateMarket")
	logs, err := events.Logs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		Addresses: []common.Address{cfg.Morpho.MorphoAddress()},
		Topics:    [][]common.Hash{{topic}},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Got %d logs\n", len(logs))

	ids := make([]core.MarketID, 0, len(logs))
	for _, event := range logs {
		fmt.Fprintln(out, eventservice.Describe(event))
		if created, ok := event.Data.(*contracts.CreateMarket); ok {
			ids = append(ids, core.MarketID(created.Id))
		}
	}

	if !details || len(ids) == 0 {
		return nil
	}

	states, err := markets.Markets(ctx, ids, time.Now())
	if err != nil {
		return err
	}

	for _, state := range states {
		utilization, err := blue.Utilization(state.Expected)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Market %s: supply %s, borrow %s, utilization %s, rate %s\n",
			state.ID.Hex(), state.Expected.TotalSupplyAssets.Dec(), state.Expected.TotalBorrowAssets.Dec(),
			number.FromWad(utilization), state.BorrowRate.Dec())
	}

	return nil
}

// borrowAPY e^(rate*year)-1 in percent, rounded up to 4 places
func borrowAPY(rate *uint256.Int) (decimal.Decimal, error) {
	growth, err := morpho.WTaylorCompounded(rate, uint256.NewInt(secondsPerYear))
	if err != nil {
		return decimal.Zero, err
	}

	return number.Ceil(number.FromWad(growth).Shift(2), 4), nil
}

// findToken token metadata, falls back to the address when the lookup fails
func findToken(ctx context.Context, tokens core.ITokenService, address common.Address) *core.Token {
	if address == (common.Address{}) {
		return &core.Token{Address: address, Symbol: "none"}
	}

	token, err := tokens.Find(ctx, address)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Debugln("token lookup", address.Hex())
		return &core.Token{Address: address, Symbol: address.Hex()}
	}

	return token
}
