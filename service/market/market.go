package market

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"morpho/core"
	"morpho/pkg/blue"
	"morpho/pkg/contracts"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type service struct {
	caller      ethereum.ContractCaller
	morpho      *contracts.Contract
	concurrency int64
}

// New new market service
func New(
	caller ethereum.ContractCaller,
	morpho common.Address,
	concurrency int64,
) core.IMarketService {
	if concurrency <= 0 {
		concurrency = 1
	}

	return &service{
		caller:      caller,
		morpho:      contracts.New(morpho, contracts.MorphoABI, caller),
		concurrency: concurrency,
	}
}

func (s *service) Params(ctx context.Context, id core.MarketID) (*core.MarketParams, error) {
	var out contracts.MarketParams
	if err := s.morpho.Call(ctx, &out, "idToMarketParams", common.Hash(id)); err != nil {
		return nil, err
	}

	// every market has a loan token, collateral may be zero for idle markets
	if out.LoanToken == (common.Address{}) {
		return nil, fmt.Errorf("market %s: %w", id, core.ErrNotFound)
	}

	params, err := out.Core()
	if err != nil {
		return nil, fmt.Errorf("market %s params: %w", id, err)
	}

	if got := blue.MarketID(params); got != id {
		return nil, fmt.Errorf("market %s params hash to %s: %w", id, got, core.ErrDecode)
	}

	return params, nil
}

func (s *service) Market(ctx context.Context, id core.MarketID) (*core.Market, error) {
	var out contracts.Market
	if err := s.morpho.Call(ctx, &out, "market", common.Hash(id)); err != nil {
		return nil, err
	}

	return out.Core()
}

func (s *service) Position(ctx context.Context, id core.MarketID, user common.Address) (*core.Position, error) {
	var out contracts.Position
	if err := s.morpho.Call(ctx, &out, "position", common.Hash(id), user); err != nil {
		return nil, err
	}

	return out.Core()
}

func (s *service) OraclePrice(ctx context.Context, oracle common.Address) (*uint256.Int, error) {
	if oracle == (common.Address{}) {
		return nil, fmt.Errorf("market has no oracle: %w", core.ErrInvalidArgument)
	}

	var out *big.Int
	if err := contracts.New(oracle, contracts.OracleABI, s.caller).Call(ctx, &out, "price"); err != nil {
		return nil, err
	}

	return contracts.ToUint256(out)
}

func (s *service) BorrowRate(ctx context.Context, params *core.MarketParams, market *core.Market) (*uint256.Int, error) {
	// markets created without irm never accrue interest
	if params.Irm == (common.Address{}) {
		return new(uint256.Int), nil
	}

	var out *big.Int
	irm := contracts.New(params.Irm, contracts.IrmABI, s.caller)
	if err := irm.Call(ctx, &out, "borrowRateView", contracts.NewMarketParams(params), contracts.NewMarket(market)); err != nil {
		return nil, err
	}

	return contracts.ToUint256(out)
}

func (s *service) ExpectedMarket(ctx context.Context, id core.MarketID, t time.Time) (*core.MarketState, error) {
	log := logger.FromContext(ctx).WithField("market", id.Hex())

	params, err := s.Params(ctx, id)
	if err != nil {
		return nil, err
	}

	market, err := s.Market(ctx, id)
	if err != nil {
		return nil, err
	}

	rate, err := s.BorrowRate(ctx, params, market)
	if err != nil {
		return nil, err
	}

	expected, interest, err := blue.AccrueInterest(market, rate, t)
	if err != nil {
		return nil, fmt.Errorf("accrue interest on market %s: %w", id, err)
	}

	log.WithField("borrow_rate", rate.Dec()).Debugln("interest accrued:", interest.Dec())

	return &core.MarketState{
		ID:         id,
		Params:     params,
		Market:     market,
		Expected:   expected,
		BorrowRate: rate,
		Interest:   interest,
		Time:       t,
	}, nil
}

func (s *service) Markets(ctx context.Context, ids []core.MarketID, t time.Time) ([]*core.MarketState, error) {
	states := make([]*core.MarketState, len(ids))
	sem := semaphore.NewWeighted(s.concurrency)
	g, gctx := errgroup.WithContext(ctx)

	var acquireErr error
	for idx := range ids {
		idx := idx
		if acquireErr = sem.Acquire(gctx, 1); acquireErr != nil {
			break
		}

		g.Go(func() error {
			defer sem.Release(1)

			state, err := s.ExpectedMarket(gctx, ids[idx], t)
			if err != nil {
				return err
			}

			states[idx] = state
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if acquireErr != nil {
		return nil, acquireErr
	}

	return states, nil
}
