// Package config loads runtime configuration from environment variables
// and an optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Shop   ShopConfig
	Fetch  FetchConfig
	Cache  CacheConfig
	Log    LogConfig
	Output OutputConfig
}

type ShopConfig struct {
	Name        string
	AccessToken string
	APIVersion  string
}

type FetchConfig struct {
	PageSize         int
	MaxConcurrency   int
	MaxRetries       int
	RetryDelay       time.Duration
	ThrottleInterval time.Duration
}

type CacheConfig struct {
	// RedisAddr enables the page-response cache when non-empty.
	RedisAddr string
	TTL       time.Duration
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type OutputConfig struct {
	ReturnsPath  string
	ReordersPath string
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Missing .env is fine, environment variables still apply.
	_ = viper.ReadInConfig()

	viper.SetDefault("SHOP_NAME", "")
	viper.SetDefault("ACCESS_TOKEN", "")
	viper.SetDefault("API_VERSION", "2025-01")
	viper.SetDefault("PAGE_SIZE", 250)
	viper.SetDefault("MAX_CONCURRENCY", 10)
	viper.SetDefault("MAX_RETRIES", 5)
	viper.SetDefault("RETRY_DELAY_SECONDS", 2)
	viper.SetDefault("THROTTLE_INTERVAL_MS", 300)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("CACHE_TTL_MINUTES", 15)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)
	viper.SetDefault("RETURNS_PATH", "returns.csv")
	viper.SetDefault("REORDERS_PATH", "reorders.csv")

	cfg := &Config{
		Shop: ShopConfig{
			Name:        viper.GetString("SHOP_NAME"),
			AccessToken: viper.GetString("ACCESS_TOKEN"),
			APIVersion:  viper.GetString("API_VERSION"),
		},
		Fetch: FetchConfig{
			PageSize:         viper.GetInt("PAGE_SIZE"),
			MaxConcurrency:   viper.GetInt("MAX_CONCURRENCY"),
			MaxRetries:       viper.GetInt("MAX_RETRIES"),
			RetryDelay:       time.Duration(viper.GetInt("RETRY_DELAY_SECONDS")) * time.Second,
			ThrottleInterval: time.Duration(viper.GetInt("THROTTLE_INTERVAL_MS")) * time.Millisecond,
		},
		Cache: CacheConfig{
			RedisAddr: viper.GetString("REDIS_ADDR"),
			TTL:       time.Duration(viper.GetInt("CACHE_TTL_MINUTES")) * time.Minute,
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
		Output: OutputConfig{
			ReturnsPath:  viper.GetString("RETURNS_PATH"),
			ReordersPath: viper.GetString("REORDERS_PATH"),
		},
	}

	if cfg.Shop.Name == "" {
		return nil, fmt.Errorf("SHOP_NAME is required")
	}
	if cfg.Shop.AccessToken == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN is required")
	}

	return cfg, nil
}
