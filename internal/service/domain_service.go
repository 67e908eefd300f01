package service

import (
	"context"
	"encoding/json"
	"time"

	"quiz_portal_backend/internal/model"
	"quiz_portal_backend/internal/repository"
	"quiz_portal_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const domainCacheKey = "quiz:domains"
const domainCacheTTL = 5 * time.Minute

// DomainService serves the quiz filter dropdown. The domain list changes
// rarely, so reads go through redis when a client is wired; a nil client
// falls straight through to the database.
type DomainService struct {
	Domains *repository.DomainRepository
	Redis   *redis.Client
}

func NewDomainService(domains *repository.DomainRepository, rdb *redis.Client) *DomainService {
	return &DomainService{Domains: domains, Redis: rdb}
}

func (s *DomainService) List(ctx context.Context) ([]model.Domain, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, domainCacheKey).Result()
		if err == nil {
			var domains []model.Domain
			if jsonErr := json.Unmarshal([]byte(cached), &domains); jsonErr == nil {
				return domains, nil
			}
		}
	}

	domains, err := s.Domains.List()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(domains); err == nil {
			if err := s.Redis.Set(ctx, domainCacheKey, payload, domainCacheTTL).Err(); err != nil {
				logger.Log.Warn("domain cache write failed", zap.Error(err))
			}
		}
	}

	return domains, nil
}

// Invalidate drops the cached list; called after admin edits to domains.
func (s *DomainService) Invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, domainCacheKey).Err(); err != nil {
		logger.Log.Warn("domain cache invalidation failed", zap.Error(err))
	}
}
