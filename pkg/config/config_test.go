package config_test

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/bikeq/bikeq/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "bikeq"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "bikeq"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "bikeq", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "bikeq", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "bike_share", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10_000, cfg.Database.BatchSize)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, 30*time.Second, cfg.GenerationTimeout())
	assert.Empty(t, cfg.LLM.APIKey)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.True(t, cfg.ReferenceTime().IsZero())

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets valid host", "db.example.com", "db.example.com"},
		{"trims whitespace", "  db.example.com  ", "db.example.com"},
		{"ignores empty string", "", "localhost"},
		{"ignores whitespace-only", "   ", "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseHost(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets require", "require", "require"},
		{"normalizes case", "VERIFY-FULL", "verify-full"},
		{"ignores invalid", "sometimes", "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseSSLMode(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionLLMProvider(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets gemini", "gemini", "gemini"},
		{"normalizes case", " OpenAI ", "openai"},
		{"ignores unknown provider", "claude-local", "openai"},
		{"ignores empty", "", "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLLMProvider(tt.input)})
			assert.Equal(t, tt.expected, cfg.LLM.Provider)
		})
	}
}

func TestOptionLLMTemperature(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"sets zero", 0, 0},
		{"sets value in range", 0.7, 0.7},
		{"ignores negative", -0.5, 0.1},
		{"ignores too large", 3, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLLMTemperature(tt.input)})
			assert.InDelta(t, tt.expected, cfg.LLM.Temperature, 0.0001)
		})
	}
}

func TestOptionLLMBaseURL(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptLLMBaseURL("http://localhost:11434/v1/"),
	})
	assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.BaseURL)
}

func TestOptionQueryReferenceDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets valid date", "2025-07-15", "2025-07-15"},
		{"trims whitespace", " 2025-07-15 ", "2025-07-15"},
		{"ignores wrong format", "07/15/2025", ""},
		{"ignores impossible date", "2025-02-30", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptQueryReferenceDate(tt.input)})
			assert.Equal(t, tt.expected, cfg.Query.ReferenceDate)
		})
	}

	cfg := config.New()
	cfg.Update([]config.Option{config.OptQueryReferenceDate("2025-07-15")})
	ref := cfg.ReferenceTime()
	assert.Equal(t, 2025, ref.Year())
	assert.Equal(t, time.July, ref.Month())
	assert.Equal(t, 15, ref.Day())
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets debug", "debug", "debug"},
		{"normalizes case", "WARN", "warn"},
		{"ignores invalid", "verbose", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionPositiveInts(t *testing.T) {
	tests := []struct {
		name  string
		opt   func(int) config.Option
		get   func(*config.Config) int
		input int
		keep  bool
	}{
		{
			name:  "server port",
			opt:   config.OptServerPort,
			get:   func(c *config.Config) int { return c.Server.Port },
			input: 8080,
		},
		{
			name:  "server port negative",
			opt:   config.OptServerPort,
			get:   func(c *config.Config) int { return c.Server.Port },
			input: -1,
			keep:  true,
		},
		{
			name:  "llm timeout",
			opt:   config.OptLLMTimeout,
			get:   func(c *config.Config) int { return c.LLM.Timeout },
			input: 5,
		},
		{
			name:  "llm timeout zero",
			opt:   config.OptLLMTimeout,
			get:   func(c *config.Config) int { return c.LLM.Timeout },
			input: 0,
			keep:  true,
		},
		{
			name:  "batch size",
			opt:   config.OptDatabaseBatchSize,
			get:   func(c *config.Config) int { return c.Database.BatchSize },
			input: 500,
		},
		{
			name:  "jobs number",
			opt:   config.OptJobsNumber,
			get:   func(c *config.Config) int { return c.JobsNumber },
			input: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			before := tt.get(cfg)
			cfg.Update([]config.Option{tt.opt(tt.input)})
			if tt.keep {
				assert.Equal(t, before, tt.get(cfg))
				return
			}
			assert.Equal(t, tt.input, tt.get(cfg))
		})
	}
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(6543),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptDatabaseBatchSize(2000),
			config.OptLLMProvider("gemini"),
			config.OptLLMModel("gemini-2.5-flash"),
			config.OptLLMAPIKey("secret"),
			config.OptLLMBaseURL("http://llm.local/v1"),
			config.OptLLMTemperature(0),
			config.OptLLMTimeout(12),
			config.OptServerPort(8081),
			config.OptQueryReferenceDate("2025-07-01"),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(8),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Database, newCfg.Database)
		assert.Equal(t, original.LLM, newCfg.LLM)
		assert.Equal(t, original.Server, newCfg.Server)
		assert.Equal(t, original.Query, newCfg.Query)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptPopulateSourcePath("/tmp/bikes.sqlite"),
			config.OptPopulateTruncate(true),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.Equal(t, "", newCfg.Populate.SourcePath)
		assert.False(t, newCfg.Populate.Truncate)
	})
}
