package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env string

	BaseURL   string
	RoundPath string
	Timeout   time.Duration
	RawQuery  bool

	ClientID  string
	JWTSecret string

	RedisURL  string
	RedisPass string
	RedisDB   int
	BoardName string

	DisplayWSURL string
}

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultRoundPath = "/round"
	DefaultBoardName = "live"
)

// Load reads the client configuration from the environment. Callers are
// expected to have run godotenv.Load beforehand.
func Load() (*Config, error) {
	cfg := &Config{
		Env:          getEnv("ENV", "development"),
		BaseURL:      getEnv("ROUND_BASE_URL", DefaultBaseURL),
		RoundPath:    getEnv("ROUND_PATH", DefaultRoundPath),
		ClientID:     getEnv("ROUND_CLIENT_ID", ""),
		JWTSecret:    getEnv("ROUND_JWT_SECRET", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		RedisPass:    getEnv("REDIS_PASSWORD", ""),
		BoardName:    getEnv("BOARD_NAME", DefaultBoardName),
		DisplayWSURL: getEnv("DISPLAY_WS_URL", ""),
	}

	var err error
	if cfg.Timeout, err = getDuration("ROUND_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.RawQuery, err = getBool("ROUND_RAW_QUERY", false); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("ROUND_BASE_URL must not be empty")
	}
	if !strings.HasPrefix(c.RoundPath, "/") {
		return fmt.Errorf("ROUND_PATH must start with '/': %q", c.RoundPath)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("ROUND_TIMEOUT must not be negative: %s", c.Timeout)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %v", key, err)
	}
	return val, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %v", key, err)
	}
	return val, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %v", key, err)
	}
	return val, nil
}
