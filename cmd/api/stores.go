package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/poseidon-api/internal/config"
	"github.com/spec-kit/poseidon-api/internal/domain"
	"github.com/spec-kit/poseidon-api/internal/persistence"
	"github.com/spec-kit/poseidon-api/internal/repository"
)

type entityStores struct {
	bidLists    repository.Repository[domain.BidList, int64]
	trades      repository.Repository[domain.Trade, int64]
	curvePoints repository.Repository[domain.CurvePoint, int64]
	ratings     repository.Repository[domain.Rating, int64]
	ruleNames   repository.Repository[domain.RuleName, int64]
}

func newEntityStores(db repository.Querier, redis *persistence.Redis, cfg config.CacheConfig, logger *zap.Logger) entityStores {
	ttl := cfg.EntityTTL()
	if ttl > 0 {
		logger.Info("entity cache enabled", zap.Duration("ttl", ttl))
	}
	return entityStores{
		bidLists:    store(db, repository.BidListTable, redis, ttl, logger),
		trades:      store(db, repository.TradeTable, redis, ttl, logger),
		curvePoints: store(db, repository.CurvePointTable, redis, ttl, logger),
		ratings:     store(db, repository.RatingTable, redis, ttl, logger),
		ruleNames:   store(db, repository.RuleNameTable, redis, ttl, logger),
	}
}

// store builds the Postgres repository for table, fronted by Redis when ttl is positive.
func store[T any](db repository.Querier, table repository.Table[T, int64], redis *persistence.Redis, ttl time.Duration, logger *zap.Logger) repository.Repository[T, int64] {
	repo := repository.NewRepository(db, table)
	if ttl <= 0 || redis == nil || redis.Client == nil {
		return repo
	}
	return repository.NewCachedRepository(repo, redis.Client, table, ttl, logger)
}
