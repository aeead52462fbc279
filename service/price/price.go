package price

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"morpho/core"
	"morpho/pkg/resthttp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
	"github.com/spf13/cast"
)

const assetsQuery = `query {
  assets(first: %d) {
    items {
      priceUsd
      address
      decimals
      symbol
      chain {
        id
      }
    }
  }
}`

// the api is loosely typed, fields are converted with cast
type assetItem struct {
	PriceUsd interface{} `json:"priceUsd"`
	Address  interface{} `json:"address"`
	Decimals interface{} `json:"decimals"`
	Symbol   interface{} `json:"symbol"`
	Chain    *struct {
		ID interface{} `json:"id"`
	} `json:"chain"`
}

type assetsResponse struct {
	Data struct {
		Assets struct {
			Items []assetItem `json:"items"`
		} `json:"assets"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type service struct {
	endPoint string
	limit    int
}

// New new morpho api price service
func New(cfg core.PriceOracle) core.IPriceService {
	return &service{
		endPoint: cfg.EndPoint,
		limit:    cfg.Limit,
	}
}

// UsdPrices list assets known by the morpho api with their usd price
func (s *service) UsdPrices(ctx context.Context) ([]*core.Asset, error) {
	log := logger.FromContext(ctx).WithField("service", "price")

	body := map[string]string{
		"query": fmt.Sprintf(assetsQuery, s.limit),
	}

	var resp assetsResponse
	if err := resthttp.Post(resthttp.WithRequestID(ctx, uuid.New()), s.endPoint, body, &resp); err != nil {
		if errors.Is(err, resthttp.ErrParse) {
			return nil, fmt.Errorf("query %s: %w: %w", s.endPoint, core.ErrDecode, err)
		}

		return nil, fmt.Errorf("query %s: %w: %w", s.endPoint, core.ErrNetwork, err)
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			messages = append(messages, e.Message)
		}

		return nil, fmt.Errorf("query %s: %s: %w", s.endPoint, strings.Join(messages, "; "), core.ErrNetwork)
	}

	assets := make([]*core.Asset, 0, len(resp.Data.Assets.Items))
	for _, item := range resp.Data.Assets.Items {
		asset, err := decodeAsset(item)
		if err != nil {
			return nil, err
		}

		if asset == nil {
			continue
		}

		assets = append(assets, asset)
	}

	log.Debugf("%d assets, %d skipped", len(assets), len(resp.Data.Assets.Items)-len(assets))
	return assets, nil
}

// decodeAsset items without an address are skipped and decode to nil
func decodeAsset(item assetItem) (*core.Asset, error) {
	address, ok := item.Address.(string)
	if !ok || address == "" {
		return nil, nil
	}

	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("asset address %q: %w", address, core.ErrDecode)
	}

	asset := &core.Asset{Token: common.HexToAddress(address)}

	if item.PriceUsd != nil {
		price, err := cast.ToFloat64E(item.PriceUsd)
		if err != nil {
			return nil, fmt.Errorf("asset %s price: %w: %w", address, core.ErrDecode, err)
		}

		asset.PriceUsd = &price
	}

	decimals, err := cast.ToUint64E(item.Decimals)
	if err != nil {
		return nil, fmt.Errorf("asset %s decimals: %w: %w", address, core.ErrDecode, err)
	}
	asset.Decimals = decimals

	if asset.Symbol, err = cast.ToStringE(item.Symbol); err != nil {
		return nil, fmt.Errorf("asset %s symbol: %w: %w", address, core.ErrDecode, err)
	}

	if item.Chain == nil {
		return nil, fmt.Errorf("asset %s has no chain: %w", address, core.ErrDecode)
	}

	if asset.ChainID, err = cast.ToUint64E(item.Chain.ID); err != nil {
		return nil, fmt.Errorf("asset %s chain: %w: %w", address, core.ErrDecode, err)
	}

	return asset, nil
}
