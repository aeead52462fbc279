package event

import (
	"context"
	"errors"
	"fmt"

	"morpho/core"
	"morpho/pkg/contracts"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/fox-one/pkg/logger"
)

type service struct {
	client ethereum.LogFilterer
}

// New new event service, Subscribe needs a websocket client
func New(client ethereum.LogFilterer) core.IEventService {
	return &service{client: client}
}

// Logs eth_getLogs and decode. Logs of unknown events are skipped.
func (s *service) Logs(ctx context.Context, query ethereum.FilterQuery) ([]*core.Event, error) {
	log := logger.FromContext(ctx).WithField("service", "event")

	logs, err := s.client.FilterLogs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get logs: %w: %w", core.ErrNetwork, err)
	}

	events := make([]*core.Event, 0, len(logs))
	for _, l := range logs {
		event, err := contracts.DecodeLog(l)
		if errors.Is(err, core.ErrUnknownEvent) {
			log.WithError(err).Debugln("skip log", l.TxHash.Hex(), l.Index)
			continue
		}

		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	log.Debugf("got %d logs, %d decoded", len(logs), len(events))
	return events, nil
}

// Subscribe eth_subscribe logs, the client must be connected over websocket.
// Runs until ctx is done, the subscription fails or handle returns an error.
func (s *service) Subscribe(ctx context.Context, query ethereum.FilterQuery, handle core.EventHandler) error {
	log := logger.FromContext(ctx).WithField("service", "event")

	ch := make(chan types.Log)
	sub, err := s.client.SubscribeFilterLogs(ctx, query, ch)
	if err != nil {
		return fmt.Errorf("subscribe logs: %w: %w", core.ErrNetwork, err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			if err == nil {
				return nil
			}

			return fmt.Errorf("logs subscription: %w: %w", core.ErrNetwork, err)
		case l := <-ch:
			if l.Removed {
				log.Debugln("skip removed log", l.TxHash.Hex(), l.Index)
				continue
			}

			event, err := contracts.DecodeLog(l)
			if errors.Is(err, core.ErrUnknownEvent) {
				log.WithError(err).Debugln("skip log", l.TxHash.Hex(), l.Index)
				continue
			}

			if err != nil {
				return err
			}

			if err := handle(ctx, event); err != nil {
				return err
			}
		}
	}
}
