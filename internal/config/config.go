package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/billie-coop/confed/internal/tui/styles"
)

// Environment variables read by Load
const (
	EnvSchemaFile = "CONFED_SCHEMA"
	EnvConfigFile = "CONFED_CONFIG"
	EnvImportDir  = "CONFED_IMPORT_DIR"
	EnvLabelWidth = "CONFED_LABEL_WIDTH"
	EnvTheme      = "CONFED_THEME"
	EnvLogLevel   = "CONFED_LOG_LEVEL"
	EnvLogFile    = "CONFED_LOG_FILE"
)

// Config represents the editor's own settings
type Config struct {
	// Files
	SchemaFile string `json:"schema_file"`
	ConfigFile string `json:"config_file"`
	ImportDir  string `json:"import_dir"`

	// UI preferences
	LabelWidth int    `json:"label_width"`
	Theme      string `json:"theme"`

	// Logging
	LogLevel  string `json:"log_level"`
	LogFile   string `json:"log_file"`
	PrintLogs bool   `json:"print_logs"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		SchemaFile: "config_scheme.json",
		ConfigFile: "config.json",
		ImportDir:  ".",
		LabelWidth: 100,
		Theme:      "confed",
		LogLevel:   "INFO",
	}
}

// Load builds the settings from defaults, an optional .env file in the
// working directory and CONFED_* environment variables. Flags are applied on
// top by the caller.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		// A missing .env file is fine.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	cfg := DefaultConfig()
	if v := os.Getenv(EnvSchemaFile); v != "" {
		cfg.SchemaFile = v
	}
	if v := os.Getenv(EnvConfigFile); v != "" {
		cfg.ConfigFile = v
	}
	if v := os.Getenv(EnvImportDir); v != "" {
		cfg.ImportDir = v
	}
	if v := os.Getenv(EnvLabelWidth); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvLabelWidth, v, err)
		}
		cfg.LabelWidth = width
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	return cfg, nil
}

// Finalize expands environment variables in path settings and checks the
// result. Call it after flags have been applied.
func (c *Config) Finalize() error {
	c.SchemaFile = expandString(c.SchemaFile)
	c.ConfigFile = expandString(c.ConfigFile)
	c.ImportDir = expandString(c.ImportDir)
	c.LogFile = expandString(c.LogFile)
	return c.Validate()
}

// Validate checks the settings for values the editor cannot work with
func (c *Config) Validate() error {
	if c.SchemaFile == "" {
		return errors.New("schema file must be set")
	}
	if c.ConfigFile == "" {
		return errors.New("config file must be set")
	}
	if c.LabelWidth <= 0 {
		return fmt.Errorf("label width must be positive, got %d", c.LabelWidth)
	}
	if _, ok := styles.Lookup(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", c.Theme, strings.Join(styles.Names(), ", "))
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandString expands environment variables in a string
// Supports $VAR and ${VAR} syntax
func expandString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		// Return original if env var not found
		return match
	})
}
