// Package config loads operational settings for the trustcore library from
// the environment. Cryptographic parameters (key sizes, bucket capacity,
// validity windows) are not configurable here; they are fixed constants in
// the oram and pki packages.
package config

import "os"

type Config struct {
	LogLevel string
	LogJSON  bool
}

func Load() Config {
	return Config{
		LogLevel: getEnv("TRUSTCORE_LOG_LEVEL", "info"),
		LogJSON:  getEnvBool("TRUSTCORE_LOG_JSON", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return value == "1" || value == "true" || value == "TRUE"
}
