package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config struct holds application configuration
type Config struct {
	BackendURL     string
	ListenAddr     string
	RequestTimeout time.Duration
	LogMode        string
	DefaultHorizon int
}

// Load reads configuration from the environment. BACKEND_URL is the only
// required value; everything else has a sensible default.
func Load() (Config, error) {
	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		return Config{}, fmt.Errorf("BACKEND_URL is not set")
	}

	cfg := Config{
		BackendURL:     backendURL,
		ListenAddr:     getEnv("LISTEN_ADDR", ":3000"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT", 15)) * time.Second,
		LogMode:        getEnv("LOG_MODE", "dev"),
		DefaultHorizon: getEnvInt("DEFAULT_HORIZON", 7),
	}

	// Backend clamps forecast horizons to 1..30, keep the default inside that.
	if cfg.DefaultHorizon < 1 {
		cfg.DefaultHorizon = 1
	}
	if cfg.DefaultHorizon > 30 {
		cfg.DefaultHorizon = 30
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
