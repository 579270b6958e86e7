package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.BinLengthM != 100 {
		t.Fatalf("expected default bin length 100, got %v", cfg.BinLengthM)
	}
	if cfg.JobTTL().Seconds() != 600 {
		t.Fatalf("expected default job ttl 600s")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("BIN_LENGTH_M", "250")
	t.Setenv("JOB_TTL_SECONDS", "60")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.BinLengthM != 250 {
		t.Fatalf("expected override bin length")
	}
	if cfg.JobTTLSeconds != 60 {
		t.Fatalf("expected override ttl")
	}
}
