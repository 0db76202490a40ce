package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

const (
	labelKeyPrefix = "sentibot:label:"
	labelTTL       = 48 * time.Hour
)

func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(context.Background()).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// ClassifierCache adapts the shared redis client to llm.LabelCache.
type ClassifierCache struct{}

func (ClassifierCache) Get(ctx context.Context, key string) (string, bool, error) {
	label, err := Redis.Get(ctx, labelKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return label, true, nil
}

func (ClassifierCache) Set(ctx context.Context, key string, label string) error {
	return Redis.Set(ctx, labelKeyPrefix+key, label, labelTTL).Err()
}
