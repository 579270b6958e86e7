// Package db wires optional external connections. Redis only mirrors
// batch events across instances; the service keeps no durable state.
package db

import (
	"github.com/hughac94/rungrade-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
