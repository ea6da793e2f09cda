package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// errStaleRead aborts a cache fill when a write bumped the key's version
// while the row was being loaded.
var errStaleRead = errors.New("cache: entity changed during read")

// cachedRepository serves GetByID from Redis and invalidates on writes.
// Redis failures never fail a request; the inner repository is authoritative.
//
// Every write bumps a per-key version before evicting. A cache fill only
// lands if the version it saw before loading is still current.
type cachedRepository[T any, K comparable] struct {
	inner  Repository[T, K]
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	keyOf  func(*T) K
	logger *zap.Logger
}

// NewCachedRepository wraps inner with a Redis read-through cache.
func NewCachedRepository[T any, K comparable](
	inner Repository[T, K],
	client redis.UniversalClient,
	table Table[T, K],
	ttl time.Duration,
	logger *zap.Logger,
) Repository[T, K] {
	return &cachedRepository[T, K]{
		inner:  inner,
		client: client,
		prefix: "entity:" + table.Name + ":",
		ttl:    ttl,
		keyOf:  func(e *T) K { return *table.KeyRef(e) },
		logger: logger,
	}
}

func (r *cachedRepository[T, K]) GetAll(ctx context.Context) ([]T, error) {
	return r.inner.GetAll(ctx)
}

func (r *cachedRepository[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	key := r.key(id)

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entity T
		if jsonErr := json.Unmarshal(data, &entity); jsonErr == nil {
			return &entity, nil
		}
		r.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	version, verErr := r.client.Get(ctx, versionKey(key)).Int64()
	if verErr != nil && !errors.Is(verErr, redis.Nil) {
		r.logger.Warn("cache version read failed", zap.String("key", key), zap.Error(verErr))
	}

	entity, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if verErr == nil || errors.Is(verErr, redis.Nil) {
		r.store(ctx, key, version, entity)
	}
	return entity, nil
}

func (r *cachedRepository[T, K]) Add(ctx context.Context, entity T) (*T, error) {
	created, err := r.inner.Add(ctx, entity)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, r.keyOf(created))
	return created, nil
}

func (r *cachedRepository[T, K]) Update(ctx context.Context, entity *T) error {
	if err := r.inner.Update(ctx, entity); err != nil {
		return err
	}
	r.evict(ctx, r.keyOf(entity))
	return nil
}

func (r *cachedRepository[T, K]) Delete(ctx context.Context, id K) (bool, error) {
	removed, err := r.inner.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	r.evict(ctx, id)
	return removed, nil
}

func (r *cachedRepository[T, K]) key(id K) string {
	return fmt.Sprintf("%s%v", r.prefix, id)
}

func versionKey(key string) string {
	return key + ":ver"
}

// store caches entity under key unless the version moved past seen.
func (r *cachedRepository[T, K]) store(ctx context.Context, key string, seen int64, entity *T) {
	data, err := json.Marshal(entity)
	if err != nil {
		r.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	verKey := versionKey(key)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != seen {
			return errStaleRead
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}, verKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleRead), errors.Is(err, redis.TxFailedErr):
		r.logger.Debug("skipping stale cache fill", zap.String("key", key))
	default:
		r.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *cachedRepository[T, K]) evict(ctx context.Context, id K) {
	key := r.key(id)
	verKey := versionKey(key)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, verKey)
		pipe.Expire(ctx, verKey, r.ttl)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		r.logger.Warn("cache eviction failed", zap.String("key", key), zap.Error(err))
	}
}
