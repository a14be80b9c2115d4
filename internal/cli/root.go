package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/vburojevic/mdmdefaults/internal/config"
)

// CLI is the root command structure for profile-defaults
type CLI struct {
	// Global flags
	Format  string           `short:"f" default:"${config_format}" enum:"text,ndjson" help:"Output format"`
	Quiet   bool             `short:"q" help:"Only print the final result"`
	Verbose bool             `short:"v" help:"Show fetch diagnostics and full error traces"`
	Version kong.VersionFlag `help:"Show version information and exit"`

	// Commands
	Analyze AnalyzeCmd `cmd:"" default:"withargs" help:"Extract non-default preferences from a configuration profile"`
	Config  ConfigCmd  `cmd:"" help:"Show or manage configuration"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
}

// NewGlobals creates a new Globals instance from CLI flags
func NewGlobals(cli *CLI) *Globals {
	return NewGlobalsWithConfig(cli, config.Default())
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  cli.Format,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}

	// Apply config values if CLI flags weren't explicitly set
	if cfg != nil {
		if !cli.Quiet && cfg.Quiet {
			g.Quiet = cfg.Quiet
		}
		if !cli.Verbose && cfg.Verbose {
			g.Verbose = cfg.Verbose
		}
	} else {
		g.Config = config.Default()
	}

	return g
}

// Debug prints a debug message if verbose mode is enabled
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.Verbose {
		fmt.Fprintf(g.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// Vars exposes config values to kong struct tags. CLI flags still win.
func Vars(cfg *config.Config) kong.Vars {
	if cfg == nil {
		cfg = config.Default()
	}
	return kong.Vars{
		"config_format":        cfg.Format,
		"config_output_format": cfg.Output.Format,
		"config_concurrency":   fmt.Sprint(cfg.Schema.Concurrency),
		"version":              VersionString(),
	}
}

// VersionString is the text printed by --version.
func VersionString() string {
	return Version + " (" + Commit + ")"
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
