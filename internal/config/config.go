package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/myebookchess-cloud/jyro-demo/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Site fetch configuration
	FetchCfg FetchConfig `envPrefix:"FETCH_"`

	// Bounded context budgets (characters, prefix cut)
	SiteContextMaxChars     int `env:"SITE_CONTEXT_MAX_CHARS" envDefault:"12000"`
	DocumentContextMaxChars int `env:"DOC_CONTEXT_MAX_CHARS" envDefault:"20000"`

	// OpenAI completion gateway
	OpenAICfg OpenAIConfig `envPrefix:"OPENAI_"`

	// Session store
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration: when true, the completion gateway is replaced by a
	// canned-answer mock and no API key is required.
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// FetchConfig bounds the single-attempt site fetch.
type FetchConfig struct {
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"12s"`
	ConnTimeout  time.Duration `env:"CONN_TIMEOUT" envDefault:"5s"`
	MaxBodyBytes int64         `env:"MAX_BODY_BYTES" envDefault:"4194304"`
	UserAgent    string        `env:"USER_AGENT" envDefault:"jyro-demo-bot/1.0"`
}

// OpenAIConfig configures the chat-completion gateway.
type OpenAIConfig struct {
	APIKey      string               `env:"API_KEY"`
	BaseURL     string               `env:"BASE_URL" envDefault:"https://api.openai.com"`
	Model       string               `env:"MODEL" envDefault:"gpt-4.1-mini"`
	Temperature float64              `env:"TEMPERATURE" envDefault:"0.3"`
	Timeout     time.Duration        `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout time.Duration        `env:"CONN_TIMEOUT" envDefault:"10s"`
	Retry       pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// SessionConfig controls the in-memory chat session store.
type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// FileUploadConfig holds document upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"10485760"`   // 10 MiB
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"12582912"` // 12 MiB multipart budget
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	// The API key is the one fatal precondition: without it no completion
	// request may ever be attempted.
	if !cfg.EnableMocks && cfg.OpenAICfg.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set; set it in the environment or enable ENABLE_MOCKS")
	}

	if cfg.SiteContextMaxChars <= 0 {
		return fmt.Errorf("SITE_CONTEXT_MAX_CHARS must be positive, got %d", cfg.SiteContextMaxChars)
	}

	if cfg.DocumentContextMaxChars <= 0 {
		return fmt.Errorf("DOC_CONTEXT_MAX_CHARS must be positive, got %d", cfg.DocumentContextMaxChars)
	}

	if cfg.OpenAICfg.Temperature < 0 || cfg.OpenAICfg.Temperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE must be between 0 and 2, got %v", cfg.OpenAICfg.Temperature)
	}

	if cfg.FileUploadCfg.MaxFileSize < 1 {
		return fmt.Errorf("FILE_UPLOAD_MAX_FILE_SIZE must be positive, got %d", cfg.FileUploadCfg.MaxFileSize)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
