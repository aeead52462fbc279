package token

import (
	"context"
	"fmt"

	"morpho/core"

	"github.com/bluele/gcache"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/singleflight"
)

// Cache token metadata never changes, lookups are kept in a lru cache
// and concurrent lookups of one token share a single call
func Cache(service core.ITokenService, size int) core.ITokenService {
	return &cacheTokenService{
		ITokenService: service,
		cache:         gcache.New(size).LRU().Build(),
		sf:            &singleflight.Group{},
	}
}

type cacheTokenService struct {
	core.ITokenService
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheTokenService) Find(ctx context.Context, address common.Address) (*core.Token, error) {
	key := s.tokenKey(address)
	if v, err := s.cache.Get(key); err == nil {
		if token, ok := v.(*core.Token); ok {
			return token, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		token, err := s.ITokenService.Find(ctx, address)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(key, token)
		return token, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Token), nil
}

func (s *cacheTokenService) tokenKey(address common.Address) string {
	return fmt.Sprintf("token:%s", address.Hex())
}
