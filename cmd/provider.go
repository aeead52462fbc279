package cmd

import (
	"context"
	"fmt"
	"time"

	"morpho/core"
	eventservice "morpho/service/event"
	marketservice "morpho/service/market"
	priceservice "morpho/service/price"
	tokenservice "morpho/service/token"
	vaultservice "morpho/service/vault"

	"github.com/ethereum/go-ethereum/ethclient"
)

const tokenCacheSize = 1024

func provideClient(ctx context.Context) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.Chain.RPC)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w: %w", cfg.Chain.RPC, core.ErrNetwork, err)
	}

	return client, nil
}

func provideWSClient(ctx context.Context) (*ethclient.Client, error) {
	if cfg.Chain.WS == "" {
		return nil, fmt.Errorf("chain.ws is not configured: %w", core.ErrInvalidArgument)
	}

	client, err := ethclient.DialContext(ctx, cfg.Chain.WS)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w: %w", cfg.Chain.WS, core.ErrNetwork, err)
	}

	return client, nil
}

func provideMarketService(client *ethclient.Client) core.IMarketService {
	return marketservice.New(client, cfg.Morpho.MorphoAddress(), cfg.Monitor.Concurrency)
}

func provideVaultService(client *ethclient.Client) core.IVaultService {
	return vaultservice.New(client)
}

func provideTokenService(client *ethclient.Client) core.ITokenService {
	return tokenservice.Cache(tokenservice.New(client), tokenCacheSize)
}

func provideEventService(client *ethclient.Client) core.IEventService {
	return eventservice.New(client)
}

func providePriceService() core.IPriceService {
	return priceservice.New(cfg.PriceOracle)
}

func provideLocation() (*time.Location, error) {
	return time.LoadLocation(cfg.App.Location)
}

func provideMarketIDs() ([]core.MarketID, error) {
	ids := make([]core.MarketID, 0, len(cfg.Morpho.Markets))
	for _, s := range cfg.Morpho.Markets {
		id, err := core.ParseMarketID(s)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}
