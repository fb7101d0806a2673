/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bikeq/bikeq/internal/iofs"
	"github.com/bikeq/bikeq/internal/iologger"
	app "github.com/bikeq/bikeq/pkg"
	"github.com/bikeq/bikeq/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "bikeq",
		Short:   "bikeq answers questions about bike-share data",
		Long: `bikeq turns plain English questions about a bike-share system
into SQL, runs them on PostgreSQL and returns the answer.

Commands:
  create    create stations, bikes, trips and daily_weather tables
  migrate   update tables to the latest models
  populate  import an SQLite export with bike-share data
  serve     run the HTTP API (POST /query, GET /health)
  ask       answer one question from the command line
  schema    show the live schema and columns relevant to a question

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (BIKEQ_*, OPENAI_API_KEY, GEMINI_API_KEY)
  3. Config file (~/.config/bikeq/config.yaml)
  4. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "bikeq version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for bikeq")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getPopulateCmd(),
		getServeCmd(),
		getAskCmd(),
		getSchemaCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	created, err := iofs.EnsureConfigFile(homeDir)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if created {
		gn.Info(
			"Created configuration file at <em>%s</em>",
			config.ConfigFilePath(homeDir),
		)
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("BIKEQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	_ = v.BindEnv("database.host", "BIKEQ_DATABASE_HOST")
	_ = v.BindEnv("database.port", "BIKEQ_DATABASE_PORT")
	_ = v.BindEnv("database.user", "BIKEQ_DATABASE_USER")
	_ = v.BindEnv("database.password", "BIKEQ_DATABASE_PASSWORD")
	_ = v.BindEnv("database.database", "BIKEQ_DATABASE_DATABASE")
	_ = v.BindEnv("database.ssl_mode", "BIKEQ_DATABASE_SSL_MODE")
	_ = v.BindEnv("database.batch_size", "BIKEQ_DATABASE_BATCH_SIZE")

	// Language model configuration
	_ = v.BindEnv("llm.provider", "BIKEQ_LLM_PROVIDER")
	_ = v.BindEnv("llm.model", "BIKEQ_LLM_MODEL")
	_ = v.BindEnv("llm.api_key", "BIKEQ_LLM_API_KEY")
	_ = v.BindEnv("llm.base_url", "BIKEQ_LLM_BASE_URL")
	_ = v.BindEnv("llm.temperature", "BIKEQ_LLM_TEMPERATURE")
	_ = v.BindEnv("llm.timeout", "BIKEQ_LLM_TIMEOUT")

	// Server and query configuration
	_ = v.BindEnv("server.port", "BIKEQ_SERVER_PORT")
	_ = v.BindEnv("query.reference_date", "BIKEQ_QUERY_REFERENCE_DATE")

	// Log configuration
	_ = v.BindEnv("log.level", "BIKEQ_LOG_LEVEL")
	_ = v.BindEnv("log.format", "BIKEQ_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "BIKEQ_LOG_DESTINATION")

	// General configuration
	_ = v.BindEnv("jobs_number", "BIKEQ_JOBS_NUMBER")

	v.AutomaticEnv()
}
