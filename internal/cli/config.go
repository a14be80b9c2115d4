package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/mdmdefaults/internal/config"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type":    "config",
			"format":  cfg.Format,
			"quiet":   cfg.Quiet,
			"verbose": cfg.Verbose,
			"schema": map[string]interface{}{
				"base_url":       cfg.Schema.BaseURL,
				"timeout":        cfg.SchemaTimeout().String(),
				"cache_failures": cfg.Schema.CacheFailures,
				"concurrency":    cfg.Schema.Concurrency,
			},
			"output": map[string]interface{}{
				"format": cfg.Output.Format,
				"dir":    cfg.Output.Dir,
			},
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	// Text output
	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:   %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Schema:")
	fmt.Fprintf(globals.Stdout, "  base_url:       %s\n", cfg.Schema.BaseURL)
	fmt.Fprintf(globals.Stdout, "  timeout:        %s\n", cfg.SchemaTimeout())
	fmt.Fprintf(globals.Stdout, "  cache_failures: %v\n", cfg.Schema.CacheFailures)
	fmt.Fprintf(globals.Stdout, "  concurrency:    %d\n", cfg.Schema.Concurrency)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Output:")
	fmt.Fprintf(globals.Stdout, "  format: %s\n", cfg.Output.Format)
	if cfg.Output.Dir != "" {
		fmt.Fprintf(globals.Stdout, "  dir:    %s\n", cfg.Output.Dir)
	}

	if path := config.ConfigFile(); path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		output := map[string]interface{}{
			"type": "config_path",
			"path": path,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.mdmdefaults.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.mdmdefaults.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/mdmdefaults/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

const sampleConfig = `# mdmdefaults configuration file
# Place this file at ./.mdmdefaults.yaml, ~/.mdmdefaults.yaml,
# or ~/.config/mdmdefaults/config.yaml

# Output format: "text" (default) or "ndjson"
format: text

# Only print the final result
quiet: false

# Show fetch diagnostics and full error traces
verbose: false

schema:
  # Where <domain>.yaml schemas are fetched from
  base_url: https://raw.githubusercontent.com/apple/device-management/release/mdm/profiles/

  # Per-schema request timeout
  timeout: 10s

  # Remember failed fetches for the rest of the run
  cache_failures: true

  # Schemas fetched in parallel before analysis (1 disables prefetch)
  concurrency: 4

output:
  # Property list encoding for generated files: xml or binary
  format: xml

  # Write generated files here instead of beside the profile
  # dir: ./preferences
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	fmt.Fprint(globals.Stdout, sampleConfig)
	return nil
}
