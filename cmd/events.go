package cmd

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"morpho/core"
	eventservice "morpho/service/event"
	"morpho/worker/watcher"

	"github.com/drone/signal"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "decode morpho logs since a block",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		from, _ := cmd.Flags().GetUint64("from")

		client, err := provideClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		return printEvents(ctx, cmd.OutOrStdout(), provideEventService(client), from)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "stream morpho and vault events over websocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := signal.WithContextFunc(cmd.Context(), func() {
			logger.FromContext(cmd.Context()).Infoln("stopping watcher")
		})

		client, err := provideWSClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		return watch(ctx, cmd.OutOrStdout(), provideEventService(client))
	},
}

func init() {
	eventsCmd.Flags().Uint64("from", 0, "from block, default is morpho.from_block")
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(watchCmd)
}

func printEvents(ctx context.Context, out io.Writer, events core.IEventService, from uint64) error {
	if from == 0 {
		from = cfg.Morpho.FromBlock
	}

	logs, err := events.Logs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		Addresses: []common.Address{cfg.Morpho.MorphoAddress()},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Got %d logs\n", len(logs))
	for _, event := range logs {
		fmt.Fprintf(out, "%d %s\n", event.Block, eventservice.Describe(event))
	}

	return nil
}

func watch(ctx context.Context, out io.Writer, events core.IEventService) error {
	addresses := append([]common.Address{cfg.Morpho.MorphoAddress()}, cfg.Morpho.VaultAddresses()...)

	w := watcher.New(events, addresses...)
	w.OnEvent = func(_ context.Context, event *core.Event) error {
		_, err := fmt.Fprintf(out, "%d %s\n", event.Block, eventservice.Describe(event))
		return err
	}

	return w.Run(ctx)
}
