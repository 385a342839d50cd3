package cache

import (
	"context"
	"time"

	"learnhub/pkg/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis. Used only by the rate limiter; no
// application data is cached here.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
