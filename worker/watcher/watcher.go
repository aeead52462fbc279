package watcher

import (
	"context"
	"errors"

	"morpho/core"
	eventservice "morpho/service/event"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

// Worker streams decoded morpho and vault events to the log
type Worker struct {
	events    core.IEventService
	addresses []common.Address
	// optional extra sink, used by the watch command to print events
	OnEvent core.EventHandler
}

// New new watcher worker
func New(events core.IEventService, addresses ...common.Address) *Worker {
	return &Worker{
		events:    events,
		addresses: addresses,
	}
}

// Run subscribe until ctx is done or the subscription fails
func (w *Worker) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "watcher")

	query := ethereum.FilterQuery{Addresses: w.addresses}
	err := w.events.Subscribe(ctx, query, func(ctx context.Context, event *core.Event) error {
		log.WithFields(map[string]interface{}{
			"event":    event.Name,
			"contract": event.Contract,
			"address":  event.Address.Hex(),
			"block":    event.Block,
			"tx":       event.TxHash.Hex(),
		}).Infoln(eventservice.Describe(event))

		if w.OnEvent != nil {
			return w.OnEvent(ctx, event)
		}

		return nil
	})

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
