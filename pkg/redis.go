package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/exam-engine/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects the exam content cache. The cache is an optimization
// layer, but a misconfigured URL should fail startup loudly rather than turn
// every exam load into a slow miss.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}
