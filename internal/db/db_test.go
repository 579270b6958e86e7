package db

import (
	"testing"

	"github.com/hughac94/rungrade-backend/internal/config"
)

func TestConnectRedisEmpty(t *testing.T) {
	cfg := config.Config{RedisAddr: ""}
	client := ConnectRedis(cfg)
	if client != nil {
		t.Fatalf("expected nil redis client when addr empty")
	}
}

func TestConnectRedisConfigured(t *testing.T) {
	cfg := config.Config{RedisAddr: "localhost:6379"}
	client := ConnectRedis(cfg)
	if client == nil {
		t.Fatalf("expected redis client")
	}
	_ = client.Close()
}
