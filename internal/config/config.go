package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string  `mapstructure:"SERVER_PORT"`
	RedisAddr       string  `mapstructure:"REDIS_ADDR"`
	RedisPassword   string  `mapstructure:"REDIS_PASSWORD"`
	BinLengthM      float64 `mapstructure:"BIN_LENGTH_M"`
	JobTTLSeconds   int     `mapstructure:"JOB_TTL_SECONDS"`
	ProgressDelayMs int     `mapstructure:"PROGRESS_DELAY_MS"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("BIN_LENGTH_M", 100.0)
	viper.SetDefault("JOB_TTL_SECONDS", 600)
	viper.SetDefault("PROGRESS_DELAY_MS", 25)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

func (c Config) JobTTL() time.Duration {
	return time.Duration(c.JobTTLSeconds) * time.Second
}

func (c Config) ProgressDelay() time.Duration {
	return time.Duration(c.ProgressDelayMs) * time.Millisecond
}
