// Package config provides configuration management for bikeq.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - LLM: provider, model, api_key, base_url, temperature, timeout
//   - Server: port
//   - Query: reference_date
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Populate.SourcePath, Populate.Truncate (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use BIKEQ_ prefix with underscores for nesting:
//
//	BIKEQ_DATABASE_HOST=localhost
//	BIKEQ_LLM_PROVIDER=openai
//	BIKEQ_LLM_API_KEY=sk-...
//	BIKEQ_SERVER_PORT=5000
//
// OPENAI_API_KEY and GEMINI_API_KEY are accepted as fallbacks for the
// LLM key.
package config

import (
	"runtime"
)

// Config represents the complete bikeq configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// LLM contains settings of the language model that writes SQL.
	LLM LLMConfig `mapstructure:"llm" yaml:"llm"`

	// Server contains settings of the HTTP server.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Query contains settings that change how questions are interpreted.
	Query QueryConfig `mapstructure:"query" yaml:"query"`

	// Populate contains settings specific to the populate command.
	Populate PopulateConfig `mapstructure:"populate" yaml:"populate"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of rows sent per CopyFrom call
	// during populate.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LLMConfig describes the language model used for SQL synthesis.
type LLMConfig struct {
	// Provider is either "openai" (any OpenAI-compatible chat completions
	// endpoint) or "gemini".
	Provider string `mapstructure:"provider" yaml:"provider"`

	// Model is the model name sent with each request.
	Model string `mapstructure:"model" yaml:"model"`

	// APIKey authenticates requests to the provider.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BaseURL overrides the endpoint of OpenAI-compatible providers.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Temperature is the sampling temperature, kept low so that the same
	// question produces the same SQL.
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`

	// Timeout is the limit in seconds for one generation call.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Port the server listens on.
	Port int `mapstructure:"port" yaml:"port"`
}

// QueryConfig contains settings for question interpretation.
type QueryConfig struct {
	// ReferenceDate (YYYY-MM-DD) anchors relative phrases like
	// "last month". Empty means today.
	ReferenceDate string `mapstructure:"reference_date" yaml:"reference_date"`
}

// PopulateConfig contains settings specific to the populate command.
type PopulateConfig struct {
	// SourcePath is a path to an SQLite export with stations, bikes,
	// trips and daily_weather tables.
	SourcePath string `mapstructure:"source_path" yaml:"source_path"`

	// Truncate removes existing rows before import.
	Truncate bool `mapstructure:"truncate" yaml:"truncate"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "bike_share",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o",
			BaseURL:     "https://api.openai.com/v1",
			Temperature: 0.1,
			Timeout:     30,
		},
		Server: ServerConfig{
			Port: 5000,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
