package db

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	RunLogKey    = "todosummary:runs"
	FailedRunKey = "todosummary:runs:failed"
)

func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
