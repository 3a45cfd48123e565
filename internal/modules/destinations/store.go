// README: Popular-destinations cache backed by Redis string keys with TTL.
package destinations

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"travelplan/internal/maps"
)

const popularKeyPrefix = "destinations:popular:%s"

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

// Get returns the cached places for destination and whether they were cached.
func (s *Store) Get(ctx context.Context, destination string) ([]maps.Place, bool, error) {
	val, err := s.redis.Get(ctx, popularKey(destination)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var places []maps.Place
	if err := json.Unmarshal(val, &places); err != nil {
		return nil, false, fmt.Errorf("decode cached places: %w", err)
	}
	return places, true, nil
}

func (s *Store) Set(ctx context.Context, destination string, places []maps.Place) error {
	val, err := json.Marshal(places)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, popularKey(destination), val, s.ttl).Err()
}

func popularKey(destination string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(destination)), " ")
	return fmt.Sprintf(popularKeyPrefix, norm)
}
