package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wiki-quiz/internal/config"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// NewRedisClient connects to redis.address and pings it. The address is
// either host:port or a redis:// / rediss:// URL; password and db from the
// config only apply to the host:port form or fill in what the URL omits.
func NewRedisClient(redisCfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redisOptions(redisCfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

func redisOptions(redisCfg config.RedisConfig) (*redis.Options, error) {
	address := strings.TrimSpace(redisCfg.Address)
	if address == "" {
		return nil, fmt.Errorf("redis address is empty")
	}

	if !strings.HasPrefix(address, "redis://") && !strings.HasPrefix(address, "rediss://") {
		return &redis.Options{
			Addr:     address,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		}, nil
	}

	opts, err := redis.ParseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if opts.Password == "" {
		opts.Password = redisCfg.Password
	}
	if opts.DB == 0 {
		opts.DB = redisCfg.DB
	}
	return opts, nil
}
