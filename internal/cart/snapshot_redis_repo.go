package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/harvestlink-app/harvestlink-backend/pkg/errors"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
	"github.com/harvestlink-app/harvestlink-backend/pkg/metrics"
	redispkg "github.com/harvestlink-app/harvestlink-backend/pkg/redis"
)

type snapshotKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SnapshotKey(sessionKey string) string
}

// RedisSnapshotRepository keeps cart snapshots in Redis for deployments that
// share cart state across instances.
type RedisSnapshotRepository struct {
	kv      snapshotKV
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

// NewRedisSnapshotRepository wires the Redis-backed snapshot store. A zero
// TTL keeps snapshots until explicitly deleted.
func NewRedisSnapshotRepository(kv snapshotKV, ttl time.Duration, logg *logger.Logger, cartMetrics *metrics.CartMetrics) (*RedisSnapshotRepository, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisSnapshotRepository{kv: kv, ttl: ttl, logg: logg, metrics: cartMetrics}, nil
}

func (r *RedisSnapshotRepository) Load(ctx context.Context, sessionKey string) (*Cart, error) {
	raw, err := r.kv.Get(ctx, r.kv.SnapshotKey(sessionKey))
	if errors.Is(err, redispkg.Nil) {
		return NewCart(), nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}

	cart, decodeErr := DecodeSnapshot([]byte(raw))
	if decodeErr != nil {
		r.metrics.IncSnapshotDiscard()
		if r.logg != nil {
			ctx = r.logg.WithSessionKey(ctx, sessionKey)
			r.logg.Warn(r.logg.WithField(ctx, "reason", decodeErr.Error()), "discarding cart snapshot")
		}
		return NewCart(), nil
	}
	return cart, nil
}

func (r *RedisSnapshotRepository) Save(ctx context.Context, sessionKey string, cart *Cart) error {
	payload, err := EncodeSnapshot(cart)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return r.kv.Set(ctx, r.kv.SnapshotKey(sessionKey), string(payload), r.ttl)
}

func (r *RedisSnapshotRepository) Delete(ctx context.Context, sessionKey string) error {
	return r.kv.Del(ctx, r.kv.SnapshotKey(sessionKey))
}
