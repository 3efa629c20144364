package pkg

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/authuser-service/internal/config"
)

// NewRedisClient creates a Redis client from the configured URL
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return redis.NewClient(opt), nil
}
