package service

import (
	"context"
	"encoding/json"
	"time"

	"auralearn/internal/cache"
	"auralearn/internal/domain"
	"auralearn/internal/logger"
	"auralearn/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// cachingGenerator decorates a domain.QuizGenerator with a
// content-addressed cache. Two uploads of the same document produce the
// same key, so repeated generations are served from the cache, and
// concurrent generations for the same content are collapsed through
// singleflight.
type cachingGenerator struct {
	inner   domain.QuizGenerator
	cache   domain.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewCachingGenerator wraps a generator with cache lookups. Workflow
// semantics are unchanged; only repeated work is avoided.
func NewCachingGenerator(inner domain.QuizGenerator, c domain.Cache, ttl time.Duration) domain.QuizGenerator {
	return &cachingGenerator{inner: inner, cache: c, ttl: ttl}
}

func (g *cachingGenerator) GenerateQuiz(ctx context.Context, file *domain.SourceFile) (*domain.GeneratedQuiz, error) {
	appLogger := logger.Get()

	contentHash := util.HashBytes(file.Content)
	cacheKey := cache.GenerateCacheKey("generation", "quiz", contentHash)

	if cached, err := g.cache.Get(ctx, cacheKey); err == nil {
		var quiz domain.GeneratedQuiz
		if decodeErr := json.Unmarshal([]byte(cached), &quiz); decodeErr == nil {
			appLogger.Debug("Generated quiz served from cache", zap.String("key", cacheKey))
			return &quiz, nil
		}
		appLogger.Warn("Failed to decode cached quiz, regenerating", zap.String("key", cacheKey))
	} else if err != domain.ErrCacheMiss {
		appLogger.Error("Cache lookup failed, falling through to generator", zap.Error(err), zap.String("key", cacheKey))
	}

	res, err, _ := g.sfGroup.Do(cacheKey, func() (interface{}, error) {
		quiz, genErr := g.inner.GenerateQuiz(ctx, file)
		if genErr != nil {
			return nil, genErr
		}

		if encoded, encErr := json.Marshal(quiz); encErr == nil {
			if setErr := g.cache.Set(ctx, cacheKey, string(encoded), g.ttl); setErr != nil {
				appLogger.Error("Failed to cache generated quiz", zap.Error(setErr), zap.String("key", cacheKey))
			}
		}
		return quiz, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.GeneratedQuiz), nil
}

var _ domain.QuizGenerator = (*cachingGenerator)(nil)
