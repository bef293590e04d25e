// Package config loads the credentials and defaults the report needs from
// the process environment, with optional .env support.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultHTTPTimeoutSeconds = 30

type Config struct {
	Token       string
	Org         string
	HTTPTimeout time.Duration
	// Team and Months are defaults for the corresponding flags.
	Team   string
	Months string
}

// LoadFromEnv reads configuration from the environment after merging in a
// .env file if one is present. Token and organization are required;
// HTTP_TIMEOUT (seconds) and the flag defaults are not.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Token:       os.Getenv("GITHUB_TOKEN"),
		Org:         os.Getenv("GITHUB_ORG"),
		HTTPTimeout: time.Duration(getEnvAsInt("HTTP_TIMEOUT", defaultHTTPTimeoutSeconds)) * time.Second,
		Team:        os.Getenv("REPORT_TEAM"),
		Months:      os.Getenv("REPORT_MONTHS"),
	}
	if cfg.Token == "" {
		return nil, errors.New("GITHUB_TOKEN is not set")
	}
	if cfg.Org == "" {
		return nil, errors.New("GITHUB_ORG is not set")
	}
	return cfg, nil
}

func getEnvAsInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return d
	}
	return i
}
