package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings. Run parameters (feed URL,
// episode window, output paths) come from flags; secrets and infrastructure
// endpoints live here.
type Config struct {
	Whisper WhisperConfig
	Store   StoreConfig

	// OutputDir is the default root for episode artifacts
	OutputDir string

	// Workers is the default number of parallel episode workers
	Workers int
}

// WhisperConfig configures the speech-to-text backend
type WhisperConfig struct {
	APIKey   string
	BaseURL  string // set for Whisper-compatible endpoints
	Model    string
	Language string
}

// StoreConfig configures optional result persistence
type StoreConfig struct {
	MongoURI        string
	MongoDB         string
	MongoCollection string
	PostgresDSN     string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	workers, err := getEnvInt("WORKERS", 2)
	if err != nil {
		return nil, fmt.Errorf("invalid WORKERS: %w", err)
	}

	cfg := &Config{
		Whisper: WhisperConfig{
			APIKey:   getEnv("OPENAI_API_KEY", ""),
			BaseURL:  getEnv("WHISPER_BASE_URL", ""),
			Model:    getEnv("WHISPER_MODEL", "whisper-1"),
			Language: getEnv("WHISPER_LANGUAGE", ""),
		},
		Store: StoreConfig{
			MongoURI:        getEnv("MONGO_URI", ""),
			MongoDB:         getEnv("MONGO_DB", "handgrabber"),
			MongoCollection: getEnv("MONGO_COLLECTION", "episode_results"),
			PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		},
		OutputDir: getEnv("OUTPUT_DIR", "./output"),
		Workers:   workers,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
