package ratelimit

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-portfolio/internal/adapter"
	"github.com/feral-file/ff-portfolio/internal/logger"
)

// redisRetryInterval is how long the limiter stays on the local fallback after a redis failure
const redisRetryInterval = 30 * time.Second

// ProviderLimit is the request budget of one upstream provider
type ProviderLimit struct {
	RequestsPerSecond int
	Burst             int
}

// Limiter blocks callers until a request to a provider fits its budget
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Wait blocks until a request to provider is allowed or ctx is done.
	// Providers without a configured limit are never blocked.
	Wait(ctx context.Context, provider string) error
}

type limiter struct {
	keyPrefix   string
	distributed adapter.RedisRateLimiter
	clock       adapter.Clock
	providers   map[string]*providerLimiter
	// redisFailedAt is the unix nano time of the last redis error, 0 when healthy
	redisFailedAt atomic.Int64
}

type providerLimiter struct {
	name  string
	limit ProviderLimit
	local *rate.Limiter
}

// NewLimiter creates a limiter. When distributed is nil every provider is limited
// in-process only; otherwise the budget is shared through redis and the in-process
// limiter takes over while redis is failing.
func NewLimiter(limits map[string]ProviderLimit, distributed adapter.RedisRateLimiter, keyPrefix string, clock adapter.Clock) Limiter {
	providers := make(map[string]*providerLimiter, len(limits))
	for name, l := range limits {
		if l.RequestsPerSecond <= 0 {
			continue
		}
		if l.Burst <= 0 {
			l.Burst = l.RequestsPerSecond
		}
		providers[name] = &providerLimiter{
			name:  name,
			limit: l,
			local: rate.NewLimiter(rate.Limit(l.RequestsPerSecond), l.Burst),
		}
	}

	return &limiter{
		keyPrefix:   keyPrefix + "limiter:",
		distributed: distributed,
		clock:       clock,
		providers:   providers,
	}
}

func (l *limiter) Wait(ctx context.Context, provider string) error {
	p, ok := l.providers[provider]
	if !ok {
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !l.useDistributed() {
			return p.local.Wait(ctx)
		}

		res, err := l.distributed.Allow(ctx, l.keyPrefix+p.name, redis_rate.PerSecond(p.limit.RequestsPerSecond))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.redisFailedAt.Store(l.clock.Now().UnixNano())
			logger.Warn("Redis rate limiter error, falling back to local",
				zap.String("provider", p.name),
				zap.Error(err),
			)
			continue
		}

		if res.Allowed > 0 {
			return nil
		}

		// spread retries over 50-150% of the advertised wait
		wait := time.Duration(float64(res.RetryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
		logger.Debug("Rate limit token unavailable, waiting",
			zap.String("provider", p.name),
			zap.Duration("retry_after", wait),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.clock.After(wait):
		}
	}
}

func (l *limiter) useDistributed() bool {
	if l.distributed == nil {
		return false
	}
	failedAt := l.redisFailedAt.Load()
	if failedAt == 0 {
		return true
	}
	if l.clock.Since(time.Unix(0, failedAt)) < redisRetryInterval {
		return false
	}
	l.redisFailedAt.Store(0)
	return true
}
