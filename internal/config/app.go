package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	return port
}

func lookupDuration(key string, fallback time.Duration) (time.Duration, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse %s env variable: %w", key, err)
	}
	if d <= 0 {
		return 0, errNotPositive(key)
	}
	return d, nil
}

func lookupInt(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return n, nil
}

func errNotPositive(key string) error {
	return fmt.Errorf("%s env variable must be positive", key)
}
