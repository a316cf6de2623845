package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Hamid-2027/seatMeCombine/internal/config"
)

// RateLimitService throttles booking and checkout requests per client using
// a Redis fixed window counter. When no Redis address is configured the
// service is disabled and every request passes.
type RateLimitService struct {
	client   *redis.Client
	requests int64
	window   time.Duration
	logger   *logrus.Logger
}

// NewRateLimitService creates a rate limit service. Returns a disabled
// service when cfg.Redis.Addr is empty.
func NewRateLimitService(cfg *config.Config, logger *logrus.Logger) *RateLimitService {
	s := &RateLimitService{
		requests: int64(cfg.RateLimit.Requests),
		window:   time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		logger:   logger,
	}
	if cfg.Redis.Addr == "" {
		logger.Info("Rate limiting disabled: no Redis address configured")
		return s
	}
	s.client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return s
}

// RateLimitError reports an exhausted window
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// Allow checks and counts one request for the identifier. Redis outages
// fail open: throttling is protection, not a correctness requirement.
func (s *RateLimitService) Allow(ctx context.Context, identifier string) error {
	if s.client == nil {
		return nil
	}

	windowIndex := time.Now().Unix() / int64(s.window.Seconds())
	key := fmt.Sprintf("rate_limit:%s:%d", identifier, windowIndex)

	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.WithError(err).Warn("Rate limit check failed, allowing request")
		return nil
	}

	if incr.Val() > s.requests {
		windowEnd := time.Unix((windowIndex+1)*int64(s.window.Seconds()), 0)
		return &RateLimitError{RetryAfter: time.Until(windowEnd)}
	}
	return nil
}

// Close releases the Redis connection
func (s *RateLimitService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
