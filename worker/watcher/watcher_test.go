package watcher

import (
	"context"
	"errors"
	"testing"

	"morpho/core"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvents struct {
	core.IEventService
	query  ethereum.FilterQuery
	events []*core.Event
	err    error
}

func (f *fakeEvents) Subscribe(ctx context.Context, query ethereum.FilterQuery, handle core.EventHandler) error {
	f.query = query
	for _, e := range f.events {
		if err := handle(ctx, e); err != nil {
			return err
		}
	}

	return f.err
}

func TestRun(t *testing.T) {
	morpho := common.HexToAddress("0xBBBBBbbBBb9cC5e90e3b3Af64bdAF62C37EEFFCb")
	vault := common.HexToAddress("0xBEEF01735c132Ada46AA9aA4c54623cAA92A64CB")

	f := &fakeEvents{
		events: []*core.Event{{Name: "Supply", Contract: "morpho"}, {Name: "Deposit", Contract: "vault"}},
		err:    context.Canceled,
	}

	w := New(f, morpho, vault)
	var got []string
	w.OnEvent = func(_ context.Context, e *core.Event) error {
		got = append(got, e.Name)
		return nil
	}

	require.NoError(t, w.Run(context.Background()))
	assert.Equal(t, []common.Address{morpho, vault}, f.query.Addresses)
	assert.Equal(t, []string{"Supply", "Deposit"}, got)

	f.err = core.ErrNetwork
	assert.ErrorIs(t, w.Run(context.Background()), core.ErrNetwork)

	stop := errors.New("stop")
	w.OnEvent = func(context.Context, *core.Event) error { return stop }
	assert.ErrorIs(t, w.Run(context.Background()), stop)
}
