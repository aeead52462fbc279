package monitor

import (
	"context"
	"fmt"
	"time"

	"morpho/core"
	"morpho/pkg/blue"
	"morpho/pkg/number"
	"morpho/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

// Worker logs the interest projection of markets on a cron schedule
type Worker struct {
	markets  core.IMarketService
	ids      []core.MarketID
	spec     string
	location *time.Location
	now      func() time.Time
}

// New new monitor worker
func New(markets core.IMarketService, ids []core.MarketID, cfg core.Monitor, location *time.Location) (*Worker, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no market to monitor: %w", core.ErrInvalidArgument)
	}

	if _, err := cron.ParseStandard(cfg.Spec); err != nil {
		return nil, fmt.Errorf("monitor spec %q: %w: %w", cfg.Spec, core.ErrInvalidArgument, err)
	}

	return &Worker{
		markets:  markets,
		ids:      ids,
		spec:     cfg.Spec,
		location: location,
		now:      time.Now,
	}, nil
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	job, err := worker.NewBaseJob(w.location, w.spec, func() error {
		return w.onWork(ctx)
	})
	if err != nil {
		return err
	}

	return worker.RunJob(ctx, job)
}

// View flat log fields of a projected market
type View struct {
	ID                string `json:"market"`
	TotalSupplyAssets string `json:"total_supply_assets"`
	TotalBorrowAssets string `json:"total_borrow_assets"`
	TotalSupplyShares string `json:"total_supply_shares"`
	Interest          string `json:"interest"`
	BorrowRate        string `json:"borrow_rate"`
	Utilization       string `json:"utilization"`
	Elapsed           int64  `json:"elapsed"`
}

// NewView flatten a market state for logging
func NewView(state *core.MarketState) (*View, error) {
	utilization, err := blue.Utilization(state.Expected)
	if err != nil {
		return nil, err
	}

	return &View{
		ID:                state.ID.Hex(),
		TotalSupplyAssets: state.Expected.TotalSupplyAssets.Dec(),
		TotalBorrowAssets: state.Expected.TotalBorrowAssets.Dec(),
		TotalSupplyShares: state.Expected.TotalSupplyShares.Dec(),
		Interest:          state.Interest.Dec(),
		BorrowRate:        state.BorrowRate.Dec(),
		Utilization:       number.FromWad(utilization).String(),
		Elapsed:           int64(state.Expected.LastUpdate.Uint64()) - int64(state.Market.LastUpdate.Uint64()),
	}, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "monitor")

	states, err := w.markets.Markets(ctx, w.ids, w.now())
	if err != nil {
		log.WithError(err).Errorln("project markets")
		return err
	}

	for _, state := range states {
		view, err := NewView(state)
		if err != nil {
			log.WithError(err).Errorln("market view", state.ID.Hex())
			continue
		}

		log.WithFields(logrus.Fields(structs.Map(view))).Infoln("market projected")
	}

	return nil
}
