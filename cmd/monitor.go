package cmd

import (
	"morpho/worker/monitor"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "log projected totals of the configured markets on a cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := signal.WithContextFunc(cmd.Context(), func() {
			logger.FromContext(cmd.Context()).Infoln("stopping monitor")
		})

		ids, err := provideMarketIDs()
		if err != nil {
			return err
		}

		location, err := provideLocation()
		if err != nil {
			return err
		}

		client, err := provideClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		w, err := monitor.New(provideMarketService(client), ids, cfg.Monitor, location)
		if err != nil {
			return err
		}

		logger.FromContext(ctx).Infoln("monitor", len(ids), "markets", cfg.Monitor.Spec)
		return w.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
