package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per CopyFrom batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptLLMProvider sets the language model provider.
// Valid values: "openai", "gemini".
func OptLLMProvider(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("LLM.Provider", s) {
			c.LLM.Provider = s
		}
	}
}

// OptLLMModel sets the model name.
func OptLLMModel(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("LLM Model", s) {
			c.LLM.Model = s
		}
	}
}

// OptLLMAPIKey sets the provider API key.
func OptLLMAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("LLM API Key", s) {
			c.LLM.APIKey = s
		}
	}
}

// OptLLMBaseURL sets the endpoint of an OpenAI-compatible provider.
func OptLLMBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "/")
	return func(c *Config) {
		if isValidString("LLM Base URL", s) {
			c.LLM.BaseURL = s
		}
	}
}

// OptLLMTemperature sets the sampling temperature, from 0 to 2.
func OptLLMTemperature(f float64) Option {
	return func(c *Config) {
		if isValidRange("LLM Temperature", f, 0, 2) {
			c.LLM.Temperature = f
		}
	}
}

// OptLLMTimeout sets the generation timeout in seconds.
func OptLLMTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("LLM Timeout", i) {
			c.LLM.Timeout = i
		}
	}
}

// OptServerPort sets the HTTP server port.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptQueryReferenceDate sets the date used to resolve relative phrases.
// Format: YYYY-MM-DD.
func OptQueryReferenceDate(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidDate("Query Reference Date", s) {
			c.Query.ReferenceDate = s
		}
	}
}

// OptPopulateSourcePath sets the SQLite file to import.
// Runtime-only field - not in ToOptions().
func OptPopulateSourcePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Populate Source", s) {
			c.Populate.SourcePath = s
		}
	}
}

// OptPopulateTruncate sets whether existing rows are removed before import.
// Runtime-only field - not in ToOptions().
func OptPopulateTruncate(b bool) Option {
	return func(c *Config) {
		c.Populate.Truncate = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

// GenerationTimeout returns the LLM timeout as a duration.
func (c *Config) GenerationTimeout() time.Duration {
	return time.Duration(c.LLM.Timeout) * time.Second
}

// ReferenceTime returns the parsed reference date, or the zero time
// when none is set.
func (c *Config) ReferenceTime() time.Time {
	if c.Query.ReferenceDate == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, c.Query.ReferenceDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
