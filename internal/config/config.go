package config

import "os"

// Config is read once at startup from the environment. A .env file, if
// present, is loaded by main before this runs.
type Config struct {
	// Addr is the listen address for the storefront UI.
	Addr string
	// APIBaseURL is the remote backend, e.g. "http://localhost:3001/api".
	APIBaseURL string
	// RedisURL enables persistent token storage when set; empty falls
	// back to the in-memory store.
	RedisURL string
}

func Load() Config {
	return Config{
		Addr:       getenv("SHOPFRONT_ADDR", ":8082"),
		APIBaseURL: getenv("SHOPFRONT_API_URL", "http://localhost:3001/api"),
		RedisURL:   os.Getenv("SHOPFRONT_REDIS_URL"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
