package config

import (
	"os"
	"strconv"
	"time"

	"yakugen/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	AI       AIConfig
	Sampling SamplingConfig
	Server   ServerConfig
	Database DatabaseConfig
	Paths    PathConfig
}

// AIConfig holds LLM related settings
type AIConfig struct {
	OpenAIKey   string
	OpenAIModel string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// SamplingConfig holds repeated-sampling settings
type SamplingConfig struct {
	CandidateCount     int
	MaxConcurrent      int64
	MaxParallelBatch   int64
	InstructionTimeout time.Duration
	Seed               int64
	EnableJudge        bool
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. URL empty means
// persistence is disabled.
type DatabaseConfig struct {
	URL string
}

// PathConfig holds file system paths
type PathConfig struct {
	InstructionFile string
	OutputDir       string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	aiConfig, err := loadAIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}

	config := &Config{
		AI:       *aiConfig,
		Sampling: loadSamplingConfig(),
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Paths: PathConfig{
			InstructionFile: getEnvOrDefault("INSTRUCTION_FILE", "instructions.csv"),
			OutputDir:       getEnvOrDefault("OUTPUT_DIR", "output"),
		},
	}

	if config.Sampling.CandidateCount <= 0 {
		return nil, errors.ConfigInvalid("CANDIDATE_COUNT must be positive")
	}
	return config, nil
}

func loadAIConfig() (*AIConfig, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, errors.ConfigInvalid("OPENAI_API_KEY is required")
	}

	return &AIConfig{
		OpenAIKey:   key,
		OpenAIModel: getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", ""),
		MaxTokens:   getEnvIntOrDefault("OPENAI_MAX_TOKENS", 2048),
		Temperature: getEnvFloatOrDefault("OPENAI_TEMPERATURE", 1.0),
		Timeout:     getEnvDurationOrDefault("OPENAI_TIMEOUT", 120*time.Second),
	}, nil
}

func loadSamplingConfig() SamplingConfig {
	return SamplingConfig{
		CandidateCount:     getEnvIntOrDefault("CANDIDATE_COUNT", 5),
		MaxConcurrent:      int64(getEnvIntOrDefault("MAX_CONCURRENT", 5)),
		MaxParallelBatch:   int64(getEnvIntOrDefault("MAX_PARALLEL_BATCH", 3)),
		InstructionTimeout: getEnvDurationOrDefault("INSTRUCTION_TIMEOUT", 5*time.Minute),
		Seed:               int64(getEnvIntOrDefault("SAMPLING_SEED", 0)),
		EnableJudge:        getEnvBoolOrDefault("ENABLE_JUDGE", false),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
