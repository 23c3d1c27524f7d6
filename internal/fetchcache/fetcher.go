package fetchcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-portfolio/internal/adapter"
	"github.com/feral-file/ff-portfolio/internal/cache"
	"github.com/feral-file/ff-portfolio/internal/domain"
	"github.com/feral-file/ff-portfolio/internal/logger"
	"github.com/feral-file/ff-portfolio/internal/ratelimit"
)

// Fetcher reads JSON documents through a cache, retrying throttled and failing upstream calls
//
//go:generate mockgen -source=fetcher.go -destination=../mocks/fetcher.go -package=mocks -mock_names=Fetcher=MockFetcher
type Fetcher interface {
	// Fetch returns the JSON body for url. A live entry under cacheKey is returned without a
	// network call; a fresh 2xx body is cached for ttl. It returns domain.ErrNotFound on 404
	// and domain.ErrUpstreamUnavailable once the attempt budget is spent.
	Fetch(ctx context.Context, url string, cacheKey string, ttl time.Duration) ([]byte, error)
}

// Config holds the per-provider fetcher settings
type Config struct {
	// Provider names the upstream for rate limiting and logs
	Provider string
	// Headers are sent with every request
	Headers map[string]string
	Policy  RetryPolicy
}

type fetcher struct {
	cfg        Config
	httpClient adapter.HTTPClient
	cache      cache.Cache
	limiter    ratelimit.Limiter
	clock      adapter.Clock
	json       adapter.JSON
}

// New creates a fetcher. limiter may be nil.
func New(cfg Config, httpClient adapter.HTTPClient, c cache.Cache, limiter ratelimit.Limiter, clock adapter.Clock, json adapter.JSON) Fetcher {
	if cfg.Policy.MaxAttempts <= 0 {
		cfg.Policy = DefaultRetryPolicy()
	}
	return &fetcher{
		cfg:        cfg,
		httpClient: httpClient,
		cache:      c,
		limiter:    limiter,
		clock:      clock,
		json:       json,
	}
}

func (f *fetcher) Fetch(ctx context.Context, url string, cacheKey string, ttl time.Duration) ([]byte, error) {
	cached, found, err := f.cache.Get(ctx, cacheKey)
	if err != nil {
		logger.WarnCtx(ctx, "Cache read failed, fetching upstream", zap.String("key", cacheKey), zap.Error(err))
	} else if found {
		return []byte(cached), nil
	}

	var lastErr error
	var last Decision
	for attempt := 1; attempt <= f.cfg.Policy.MaxAttempts; attempt++ {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx, f.cfg.Provider); err != nil {
				return nil, err
			}
		}

		resp, err := f.httpClient.GetOnce(ctx, url, f.cfg.Headers)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			last = f.cfg.Policy.DecideTransportError(attempt)
		} else {
			last = f.cfg.Policy.Decide(resp.StatusCode, resp.Header.Get("Retry-After"), attempt)
			lastErr = &adapter.StatusError{StatusCode: resp.StatusCode, Body: truncate(string(resp.Body), 256)}
		}

		switch last.Outcome {
		case OutcomeSuccess:
			if !f.json.Valid(resp.Body) {
				return nil, fmt.Errorf("%w: %s returned a malformed JSON body", domain.ErrUpstreamUnavailable, f.cfg.Provider)
			}
			if err := f.cache.Put(ctx, cacheKey, string(resp.Body), ttl); err != nil {
				logger.WarnCtx(ctx, "Cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
			return resp.Body, nil
		case OutcomeNotFound:
			return nil, domain.ErrNotFound
		}

		logger.DebugCtx(ctx, "Upstream attempt failed",
			zap.String("provider", f.cfg.Provider),
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.String("outcome", string(last.Outcome)),
			zap.Duration("wait", last.Wait),
			zap.Error(lastErr),
		)

		if attempt == f.cfg.Policy.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-f.clock.After(last.Wait):
		}
	}

	if last.Outcome == OutcomeRateLimited {
		lastErr = errors.Join(domain.ErrRateLimited, lastErr)
	}
	return nil, fmt.Errorf("%w: %s gave up after %d attempts: %w",
		domain.ErrUpstreamUnavailable, f.cfg.Provider, f.cfg.Policy.MaxAttempts, lastErr)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
