package core

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// Event decoded contract log
type Event struct {
	Name string `json:"name"`
	// emitting contract kind: morpho, vault or factory
	Contract string         `json:"contract"`
	Address  common.Address `json:"address"`
	Block    uint64         `json:"block"`
	TxHash   common.Hash    `json:"tx_hash"`
	Index    uint           `json:"index"`
	// typed event body, one of the contracts event structs
	Data interface{} `json:"data"`
}

// EventHandler called for every decoded event of a subscription
type EventHandler func(ctx context.Context, event *Event) error

// IEventService event log interface
type IEventService interface {
	Logs(ctx context.Context, query ethereum.FilterQuery) ([]*Event, error)
	Subscribe(ctx context.Context, query ethereum.FilterQuery, handle EventHandler) error
}
