package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"rapifarma/internal/dto"
)

const (
	cartKeyPrefix    = "ordenCompra:"
	overlayKeyPrefix = "cuentasParaPagar:"
	// Ephemeral state: carts and overlays expire if abandoned
	cartTTL    = 7 * 24 * time.Hour
	overlayTTL = 24 * time.Hour
)

// ─── CartStore ───────────────────────────────────────────────────────────────

type redisCartStore struct{ rdb *redis.Client }

func NewRedisCartStore(rdb *redis.Client) CartStore { return &redisCartStore{rdb: rdb} }

func (s *redisCartStore) Get(ctx context.Context, userID string) ([]OrdenItem, error) {
	raw, err := s.rdb.Get(ctx, cartKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []OrdenItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *redisCartStore) Set(ctx context.Context, userID string, items []OrdenItem) error {
	if len(items) == 0 {
		return s.Clear(ctx, userID)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKeyPrefix+userID, data, cartTTL).Err()
}

func (s *redisCartStore) Clear(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, cartKeyPrefix+userID).Err()
}

// ─── OverlayStore ────────────────────────────────────────────────────────────

// redisOverlayStore keeps all overlays of one user in a single hash keyed by
// cuenta id. Reads and writes are per-field; the whole hash shares one TTL.
type redisOverlayStore struct{ rdb *redis.Client }

func NewRedisOverlayStore(rdb *redis.Client) OverlayStore { return &redisOverlayStore{rdb: rdb} }

func (s *redisOverlayStore) Get(ctx context.Context, userID, cuentaID string) (*dto.EdicionCuentaRequest, error) {
	raw, err := s.rdb.HGet(ctx, overlayKeyPrefix+userID, cuentaID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e dto.EdicionCuentaRequest
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *redisOverlayStore) GetAll(ctx context.Context, userID string) (map[string]dto.EdicionCuentaRequest, error) {
	raw, err := s.rdb.HGetAll(ctx, overlayKeyPrefix+userID).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]dto.EdicionCuentaRequest, len(raw))
	for id, v := range raw {
		var e dto.EdicionCuentaRequest
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			return nil, err
		}
		out[id] = e
	}
	return out, nil
}

func (s *redisOverlayStore) Set(ctx context.Context, userID, cuentaID string, e dto.EdicionCuentaRequest) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	key := overlayKeyPrefix + userID
	if err := s.rdb.HSet(ctx, key, cuentaID, data).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, overlayTTL).Err()
}

func (s *redisOverlayStore) Delete(ctx context.Context, userID, cuentaID string) error {
	return s.rdb.HDel(ctx, overlayKeyPrefix+userID, cuentaID).Err()
}

func (s *redisOverlayStore) Clear(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, overlayKeyPrefix+userID).Err()
}
