// Package config loads runtime configuration from environment
// variables.  Every setting has a default suitable for running the
// demo locally, so a bare `go run` works without a .env file.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.
type Config struct {
	Env              string // application environment (APP_ENV, e.g. "dev", "prod")
	Port             string // HTTP port to listen on (APP_PORT)
	ReservationsFile string // path of the persisted reservations JSON file (RESERVATIONS_FILE)
	EventsEnabled    bool   // publish reservation.confirmed events to RabbitMQ (EVENTS_ENABLED)
	ConsumerEnabled  bool   // run the background reservation-event consumer (CONSUMER_ENABLED)
}

// Load reads the configuration from the environment, applying
// defaults for unset variables.
func Load() Config {
	return Config{
		Env:              getenv("APP_ENV", "dev"),
		Port:             getenv("APP_PORT", "8080"),
		ReservationsFile: getenv("RESERVATIONS_FILE", "reservations.json"),
		EventsEnabled:    envBool("EVENTS_ENABLED", false),
		ConsumerEnabled:  envBool("CONSUMER_ENABLED", false),
	}
}

// getenv returns the variable's value or the default when unset or
// empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
