package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config represents the application configuration
type Config struct {
	Database   DatabaseConfig   `json:"database"   envPrefix:"DB_SCOUT_"`
	LLM        LLMConfig        `json:"llm"        envPrefix:"DB_SCOUT_"`
	Pagination PaginationConfig `json:"pagination" envPrefix:"DB_SCOUT_"`
	Logging    LoggingConfig    `json:"logging"    envPrefix:"DB_SCOUT_"`
	Policy     PolicyConfig     `json:"policy"     envPrefix:"DB_SCOUT_"`
}

// DatabaseConfig represents database connection configuration. The memory
// driver needs none of the connection fields and serves as the zero-config
// default backend.
type DatabaseConfig struct {
	Driver          string `json:"driver"            env:"DB_DRIVER"            envDefault:"memory"` // memory, mysql, duckdb
	Host            string `json:"host"              env:"DB_HOST"              envDefault:"127.0.0.1"`
	Port            int    `json:"port"              env:"DB_PORT"              envDefault:"3306"`
	User            string `json:"user"              env:"DB_USER"              envDefault:"root"`
	Password        string `json:"password"          env:"DB_PASSWORD"          envDefault:""`
	Name            string `json:"name"              env:"DB_NAME"              envDefault:"test_db"`
	Path            string `json:"path"              env:"DB_PATH"              envDefault:""` // duckdb file path; empty = in-memory
	MaxConnections  int    `json:"max_connections"   env:"DB_MAX_CONNECTIONS"   envDefault:"10"`
	MaxIdleConns    int    `json:"max_idle_conns"    env:"DB_MAX_IDLE_CONNS"    envDefault:"5"`
	ConnMaxLifetime string `json:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// LLMConfig represents language model configuration
type LLMConfig struct {
	Provider    string  `json:"provider"    env:"LLM_PROVIDER"    envDefault:"ollama"` // openai, anthropic, ollama
	Model       string  `json:"model"       env:"LLM_MODEL"       envDefault:"llama2"`
	APIKey      string  `json:"api_key"     env:"LLM_API_KEY"     envDefault:""`
	BaseURL     string  `json:"base_url"    env:"LLM_BASE_URL"    envDefault:""`
	MaxTokens   int     `json:"max_tokens"  env:"LLM_MAX_TOKENS"  envDefault:"1024"`
	Temperature float64 `json:"temperature" env:"LLM_TEMPERATURE" envDefault:"0.1"`
}

// PaginationConfig represents result pagination configuration
type PaginationConfig struct {
	PageSize int `json:"page_size" env:"PAGE_SIZE" envDefault:"10"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level"  env:"LOG_LEVEL"  envDefault:"info"`   // debug, info, warn, error
	Format string `json:"format" env:"LOG_FORMAT" envDefault:"text"`   // text, json
	Output string `json:"output" env:"LOG_OUTPUT" envDefault:"stderr"` // stdout, stderr, file
	File   string `json:"file"   env:"LOG_FILE"   envDefault:""`
}

// PolicyConfig controls prompt-level generation policy. BlockedColumns is a
// comma-separated list of name fragments the model is told never to select;
// it is a hint to the model, not a hard gate (the safety validator is).
type PolicyConfig struct {
	BlockSensitive bool     `json:"block_sensitive" env:"POLICY_BLOCK_SENSITIVE" envDefault:"true"`
	BlockedColumns []string `json:"blocked_columns" env:"POLICY_BLOCKED_COLUMNS" envDefault:"password,passwd,secret,token,salary" envSeparator:","`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validateConfig checks configuration consistency. A missing API key for a
// remote provider is the one condition treated as fatal at startup; every
// other failure surfaces per-request.
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case "memory", "mysql", "duckdb":
	default:
		return fmt.Errorf("unsupported database driver: %s", config.Database.Driver)
	}

	switch strings.ToLower(config.LLM.Provider) {
	case "openai", "anthropic":
		if config.LLM.APIKey == "" {
			return fmt.Errorf("API key is required for provider %q", config.LLM.Provider)
		}
	case "ollama", "local":
	default:
		return fmt.Errorf("unsupported LLM provider: %s", config.LLM.Provider)
	}

	if config.Pagination.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", config.Pagination.PageSize)
	}

	return nil
}
