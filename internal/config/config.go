package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the client.
type Config struct {
	AppName     string
	Environment string
	API         APIConfig
	State       StateConfig
	Logger      LoggerConfig
}

type APIConfig struct {
	BaseURL         string
	ReadTimeout     time.Duration
	MutationTimeout time.Duration
	PageLimit       int
}

type StateConfig struct {
	Path string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the client can run against a local backend.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "taskboard-client"),
		Environment: getString("APP_ENV", "development"),
		API: APIConfig{
			BaseURL:         getString("API_BASE_URL", "http://localhost:5000"),
			ReadTimeout:     getDuration("API_READ_TIMEOUT", 10*time.Second),
			MutationTimeout: getDuration("API_MUTATION_TIMEOUT", 30*time.Second),
			PageLimit:       getInt("API_PAGE_LIMIT", 6),
		},
		State: StateConfig{
			Path: getString("STATE_PATH", "./data/session.db"),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "console"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
