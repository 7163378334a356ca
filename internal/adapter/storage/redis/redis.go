package redis

import (
	"context"
	"fmt"
	"time"

	"mypayment-ledger/config"

	"github.com/cenkalti/backoff/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ping := func() error { return client.Ping(ctx).Err() }
	var err error
	if cfg.ConnectTimeout > 0 {
		b := backoff.NewExponentialBackOff(backoff.WithMaxElapsedTime(cfg.ConnectTimeout))
		err = backoff.RetryNotify(ping, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
			log.Warn().Err(err).Dur("retry_in", wait).Msg("Redis not reachable yet")
		})
	} else {
		err = ping()
	}
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Msg("Redis connection established")

	return client, nil
}
