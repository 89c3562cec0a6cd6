// Package config provides configuration management for the agenterra
// CLI, handling environment variables, a .env file, and runtime
// defaults for generation behavior.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	CLI        CLIConfig        `json:"cli"`
	Generation GenerationConfig `json:"generation"`
	OpenAPI    OpenAPIConfig    `json:"openapi"`
	Hooks      HooksConfig      `json:"hooks"`
	Logging    LoggingConfig    `json:"logging"`
	Server     ServerConfig     `json:"server"`
}

// CLIConfig represents top-level CLI behavior
type CLIConfig struct {
	DefaultOutputDir string `json:"default_output_dir"`
	TemplateDir      string `json:"template_dir,omitempty"` // overrides the embedded template repository when set
	NoColor          bool   `json:"no_color"`
}

// GenerationConfig represents defaults applied when a generate command
// omits a flag
type GenerationConfig struct {
	DefaultProtocol string `json:"default_protocol"`
	DefaultLanguage string `json:"default_language"`
	MaxEndpoints    int    `json:"max_endpoints"` // safety cap on operations fanned out per template
}

// OpenAPIConfig represents OpenAPI document loading behavior
type OpenAPIConfig struct {
	AllowRemoteSchemas bool          `json:"allow_remote_schemas"`
	FetchTimeout       time.Duration `json:"fetch_timeout"`
	StrictValidation   bool          `json:"strict_validation"` // reject documents with schema warnings, not just errors
}

// HooksConfig represents post-generation hook execution behavior
type HooksConfig struct {
	Enabled        bool          `json:"enabled"`
	CommandTimeout time.Duration `json:"command_timeout"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// ServerConfig represents the `serve` subcommand's doc server behavior
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CLI: CLIConfig{
			DefaultOutputDir: "./generated",
			NoColor:          false,
		},
		Generation: GenerationConfig{
			DefaultProtocol: "mcp",
			DefaultLanguage: "rust",
			MaxEndpoints:    500,
		},
		OpenAPI: OpenAPIConfig{
			AllowRemoteSchemas: false,
			FetchTimeout:       30 * time.Second,
			StrictValidation:   false,
		},
		Hooks: HooksConfig{
			Enabled:        true,
			CommandTimeout: 2 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Port: 8081,
			Host: "localhost",
		},
	}
}

// LoadConfig loads configuration from environment variables and defaults
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := DefaultConfig()
	loadFromEnv(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadFromEnv(config *Config) {
	loadCLIConfig(config)
	loadGenerationConfig(config)
	loadOpenAPIConfig(config)
	loadHooksConfig(config)
	loadLoggingConfig(config)
	loadServerConfig(config)
}

func loadCLIConfig(config *Config) {
	config.CLI.DefaultOutputDir = getStringEnvWithDefault("AGENTERRA_OUTPUT_DIR", config.CLI.DefaultOutputDir)
	config.CLI.TemplateDir = getStringEnvWithDefault("AGENTERRA_TEMPLATE_DIR", config.CLI.TemplateDir)
	config.CLI.NoColor = getBoolEnvWithDefault("AGENTERRA_NO_COLOR", config.CLI.NoColor)
}

func loadGenerationConfig(config *Config) {
	config.Generation.DefaultProtocol = getStringEnvWithDefault("AGENTERRA_DEFAULT_PROTOCOL", config.Generation.DefaultProtocol)
	config.Generation.DefaultLanguage = getStringEnvWithDefault("AGENTERRA_DEFAULT_LANGUAGE", config.Generation.DefaultLanguage)
	config.Generation.MaxEndpoints = getIntEnvWithDefault("AGENTERRA_MAX_ENDPOINTS", config.Generation.MaxEndpoints)
}

func loadOpenAPIConfig(config *Config) {
	config.OpenAPI.AllowRemoteSchemas = getBoolEnvWithDefault("AGENTERRA_ALLOW_REMOTE_SCHEMAS", config.OpenAPI.AllowRemoteSchemas)
	config.OpenAPI.StrictValidation = getBoolEnvWithDefault("AGENTERRA_STRICT_VALIDATION", config.OpenAPI.StrictValidation)
	if timeout := os.Getenv("AGENTERRA_OPENAPI_FETCH_TIMEOUT"); timeout != "" {
		if duration, err := time.ParseDuration(timeout); err == nil {
			config.OpenAPI.FetchTimeout = duration
		}
	}
}

func loadHooksConfig(config *Config) {
	config.Hooks.Enabled = getBoolEnvWithDefault("AGENTERRA_HOOKS_ENABLED", config.Hooks.Enabled)
	if timeout := os.Getenv("AGENTERRA_HOOKS_TIMEOUT"); timeout != "" {
		if duration, err := time.ParseDuration(timeout); err == nil {
			config.Hooks.CommandTimeout = duration
		}
	}
}

func loadLoggingConfig(config *Config) {
	config.Logging.Level = getStringEnvWithDefault("AGENTERRA_LOG_LEVEL", config.Logging.Level)
	config.Logging.Format = getStringEnvWithDefault("AGENTERRA_LOG_FORMAT", config.Logging.Format)
}

func loadServerConfig(config *Config) {
	config.Server.Port = getIntEnvWithDefault("AGENTERRA_SERVER_PORT", config.Server.Port)
	config.Server.Host = getStringEnvWithDefault("AGENTERRA_SERVER_HOST", config.Server.Host)
}

func getStringEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnvWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.CLI.DefaultOutputDir == "" {
		return errors.New("default output dir cannot be empty")
	}
	if err := c.validateGenerationConfig(); err != nil {
		return err
	}
	if c.Hooks.CommandTimeout <= 0 {
		return errors.New("hooks command timeout must be positive")
	}
	if c.OpenAPI.FetchTimeout <= 0 {
		return errors.New("openapi fetch timeout must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateGenerationConfig() error {
	if c.Generation.MaxEndpoints <= 0 {
		return errors.New("max endpoints must be positive")
	}
	switch strings.ToLower(c.Generation.DefaultProtocol) {
	case "mcp", "acp", "a2a", "anp":
	default:
		return fmt.Errorf("unknown default protocol: %s", c.Generation.DefaultProtocol)
	}
	return nil
}
