package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
)

// NewRedis подключается к Redis, повторяя ping, пока сервер поднимается
func NewRedis(ctx context.Context, addr string, maxTries uint) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	_, err := backoff.Retry(ctx, func() (string, error) {
		res, err := client.Ping(ctx).Result()
		if err != nil {
			log.Printf("[REDIS] ping %s: %v", addr, err)
		}
		return res, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(maxTries))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("redis %s unavailable: %w", addr, err)
	}
	return client, nil
}
