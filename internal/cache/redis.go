package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/florimart/florimart/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewClient connects to the revocation cache and verifies the
// connection before returning it.
func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
	}

	return client, nil
}
