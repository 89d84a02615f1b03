package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BielosX/wombat/poke-search/src/pokeapi"
)

type Config struct {
	BaseUrl       string
	Timeout       time.Duration
	ListenAddr    string
	Region        string
	BucketName    string
	ArchivePrefix string
	Handler       string
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func Load() (Config, error) {
	cfg := Config{
		BaseUrl:       getEnv("POKEAPI_BASE_URL", pokeapi.DefaultBaseUrl),
		Timeout:       pokeapi.DefaultTimeout,
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		Region:        os.Getenv("AWS_REGION"),
		BucketName:    os.Getenv("BUCKET_NAME"),
		ArchivePrefix: getEnv("ARCHIVE_PREFIX", "pokemons"),
		Handler:       os.Getenv("_HANDLER"),
	}
	if raw := os.Getenv("POKEAPI_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid POKEAPI_TIMEOUT %q: %w", raw, err)
		}
		if timeout <= 0 {
			return Config{}, fmt.Errorf("POKEAPI_TIMEOUT must be positive, got %s", timeout)
		}
		cfg.Timeout = timeout
	}
	return cfg, nil
}
