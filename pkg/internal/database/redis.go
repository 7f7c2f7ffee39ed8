package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// R holds the key-value store used for last-used station sessions.
var R *redis.Client

func NewRedis() error {
	opts, err := redis.ParseURL(viper.GetString("cache.redis"))
	if err != nil {
		return fmt.Errorf("invalid redis url: %v", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("unable to ping redis: %v", err)
	}

	R = client
	return nil
}
