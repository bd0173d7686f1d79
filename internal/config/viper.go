// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fjacquet/pfma/internal/analytics"
	"fjacquet/pfma/internal/dateutils"
	"fjacquet/pfma/internal/kvstore"
)

// EnvPrefix is prepended to every environment override, e.g. PFMA_LOG_LEVEL.
const EnvPrefix = "PFMA"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Storage struct {
		Backend    string `mapstructure:"backend" yaml:"backend"`
		Directory  string `mapstructure:"directory" yaml:"directory"`
		SQLiteFile string `mapstructure:"sqlite_file" yaml:"sqlite_file"`
	} `mapstructure:"storage" yaml:"storage"`

	Display struct {
		CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
		Timezone       string `mapstructure:"timezone" yaml:"timezone"`
	} `mapstructure:"display" yaml:"display"`

	Analytics struct {
		DefaultWindow string `mapstructure:"default_window" yaml:"default_window"`
	} `mapstructure:"analytics" yaml:"analytics"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`
}

// flagKeys maps command-line flags to the configuration keys they override.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"backend":    "storage.backend",
	"data-dir":   "storage.directory",
}

// InitializeConfig loads configuration with the precedence defaults <
// config file < environment < flags. configFile, when set, replaces the
// config file search; flags may be nil.
func InitializeConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.pfma")
		v.AddConfigPath(".pfma")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configFile != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Command-line flags
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultDataDirectory is where ledger files live unless configured.
func DefaultDataDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".pfma", "data")
	}
	return filepath.Join(home, ".pfma", "data")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Storage defaults
	v.SetDefault("storage.backend", kvstore.BackendFile)
	v.SetDefault("storage.directory", DefaultDataDirectory())
	v.SetDefault("storage.sqlite_file", "ledger.db")

	// Display defaults
	v.SetDefault("display.currency_symbol", "₹")
	v.SetDefault("display.timezone", "Local")

	// Analytics defaults
	v.SetDefault("analytics.default_window", string(analytics.WindowAll))

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if !isKnownBackend(config.Storage.Backend) {
		return fmt.Errorf("invalid storage backend: %s (must be one of %s)",
			config.Storage.Backend, strings.Join(kvstore.Backends, ", "))
	}
	if config.Storage.Backend != kvstore.BackendMemory && config.Storage.Directory == "" {
		return fmt.Errorf("storage.directory must be set for the %s backend", config.Storage.Backend)
	}

	if _, err := dateutils.LoadLocation(config.Display.Timezone); err != nil {
		return fmt.Errorf("invalid display.timezone: %w", err)
	}

	if _, err := analytics.ParseWindow(config.Analytics.DefaultWindow); err != nil {
		return fmt.Errorf("invalid analytics.default_window: %w", err)
	}

	// Validate CSV delimiter
	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	return nil
}

func isKnownBackend(name string) bool {
	for _, b := range kvstore.Backends {
		if name == b {
			return true
		}
	}
	return false
}

// Location returns the configured display time zone.
func (c *Config) Location() *time.Location {
	loc, err := dateutils.LoadLocation(c.Display.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// Window returns the default analytics window.
func (c *Config) Window() analytics.Window {
	w, err := analytics.ParseWindow(c.Analytics.DefaultWindow)
	if err != nil {
		return analytics.WindowAll
	}
	return w
}

// StorageOptions returns the kv store options for this configuration.
func (c *Config) StorageOptions() kvstore.Options {
	return kvstore.Options{
		Backend:    c.Storage.Backend,
		Directory:  c.Storage.Directory,
		SQLiteFile: c.Storage.SQLiteFile,
	}
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
