// Package config provides centralized configuration management.
// All environment lookups for the storefront live here.
package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// DefaultAPIURL is used when GLOWIFY_API_URL is not set.
const DefaultAPIURL = "http://localhost:8000"

// ShopEnv holds all storefront environment variables.
type ShopEnv struct {
	// APIURL is the commerce API base URL (GLOWIFY_API_URL)
	APIURL string

	// Locale is the display locale tag (GLOWIFY_LOCALE)
	Locale string

	// Timeout is the per-request timeout (GLOWIFY_TIMEOUT_SECONDS)
	Timeout time.Duration

	// NoColor disables colored CLI output (NO_COLOR)
	NoColor bool
}

var (
	env     *ShopEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *ShopEnv {
	envOnce.Do(func() {
		env = &ShopEnv{
			APIURL:  getEnvDefault("GLOWIFY_API_URL", DefaultAPIURL),
			Locale:  getEnvDefault("GLOWIFY_LOCALE", "id-ID"),
			Timeout: time.Duration(getEnvInt("GLOWIFY_TIMEOUT_SECONDS", 15)) * time.Second,
			NoColor: os.Getenv("NO_COLOR") != "",
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvDefault(key, fallback string) string {
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
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
