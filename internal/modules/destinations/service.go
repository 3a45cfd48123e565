// Package destinations looks up the popular attractions of a destination,
// caching results between plans.
package destinations

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"travelplan/internal/maps"
)

type searcher interface {
	SearchAttractions(ctx context.Context, destination string, limit int) ([]maps.Place, error)
}

type cache interface {
	Get(ctx context.Context, destination string) ([]maps.Place, bool, error)
	Set(ctx context.Context, destination string, places []maps.Place) error
}

type Service struct {
	search searcher
	cache  cache
	limit  int
}

func NewService(search searcher, cache cache, limit int) *Service {
	return &Service{search: search, cache: cache, limit: limit}
}

// PopularDestinations returns attractions for destination. Cache failures are
// logged and fall through to a live search.
func (s *Service) PopularDestinations(ctx context.Context, destination string) ([]maps.Place, error) {
	places, ok, err := s.cache.Get(ctx, destination)
	if err != nil {
		zap.L().Warn("destinations cache read failed", zap.String("destination", destination), zap.Error(err))
	}
	if ok {
		return places, nil
	}

	places, err = s.search.SearchAttractions(ctx, destination, s.limit)
	if err != nil {
		return nil, fmt.Errorf("popular destinations for %q: %w", destination, err)
	}

	if err := s.cache.Set(ctx, destination, places); err != nil {
		zap.L().Warn("destinations cache write failed", zap.String("destination", destination), zap.Error(err))
	}
	return places, nil
}
