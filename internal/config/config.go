package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Default schema location and request timeout.
const (
	DefaultSchemaURL     = "https://raw.githubusercontent.com/apple/device-management/release/mdm/profiles/"
	DefaultSchemaTimeout = "10s"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	Schema SchemaConfig `mapstructure:"schema"`
	Output OutputConfig `mapstructure:"output"`
}

// SchemaConfig controls where schemas come from and how fetches behave
type SchemaConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`

	// CacheFailures remembers failed fetches for the rest of the run
	// instead of retrying them on every lookup.
	CacheFailures bool `mapstructure:"cache_failures"`

	// Concurrency bounds parallel prefetching; 1 disables it.
	Concurrency int `mapstructure:"concurrency"`
}

// OutputConfig controls generated property list files
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Dir    string `mapstructure:"dir"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Quiet:   false,
		Verbose: false,
		Schema: SchemaConfig{
			BaseURL:       DefaultSchemaURL,
			Timeout:       DefaultSchemaTimeout,
			CacheFailures: true,
			Concurrency:   4,
		},
		Output: OutputConfig{
			Format: "xml",
		},
	}
}

// SchemaTimeout parses Schema.Timeout, falling back to the default for
// empty or invalid values.
func (c *Config) SchemaTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Schema.Timeout); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultSchemaTimeout)
	return d
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.mdmdefaults.yaml, ./.mdmdefaults.yml, ./mdmdefaults.yaml, ./mdmdefaults.yml
// 2. ~/.mdmdefaults.yaml or ~/.mdmdefaults.yml
// 3. $XDG_CONFIG_HOME/mdmdefaults/config.yaml (or ~/.config/mdmdefaults/config.yaml)
// 4. /etc/mdmdefaults/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	if configFile := findConfigFile(); configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Override with environment variables
	applyEnvOverrides(cfg)

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	var candidates []string

	if cwd, err := os.Getwd(); err == nil {
		for _, name := range []string{".mdmdefaults.yaml", ".mdmdefaults.yml", "mdmdefaults.yaml", "mdmdefaults.yml"} {
			candidates = append(candidates, filepath.Join(cwd, name))
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".mdmdefaults.yaml"),
			filepath.Join(home, ".mdmdefaults.yml"))
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(configDir, "mdmdefaults", "config.yaml"))
	}

	candidates = append(candidates, "/etc/mdmdefaults/config.yaml")

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MDMDEFAULTS_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("MDMDEFAULTS_QUIET"); envBool(v) {
		cfg.Quiet = true
	}
	if v := os.Getenv("MDMDEFAULTS_VERBOSE"); envBool(v) {
		cfg.Verbose = true
	}
	if v := os.Getenv("MDMDEFAULTS_SCHEMA_URL"); v != "" {
		cfg.Schema.BaseURL = v
	}
	if v := os.Getenv("MDMDEFAULTS_SCHEMA_TIMEOUT"); v != "" {
		cfg.Schema.Timeout = v
	}
}

func envBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
