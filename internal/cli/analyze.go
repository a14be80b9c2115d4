package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vburojevic/mdmdefaults/internal/analyze"
	"github.com/vburojevic/mdmdefaults/internal/output"
	"github.com/vburojevic/mdmdefaults/internal/schema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AnalyzeCmd extracts the non-default settings of a configuration profile
// into one property list per preference domain.
type AnalyzeCmd struct {
	Path string `arg:"" name:"mobileconfig" help:"Path to the mobile configuration (.mobileconfig) file"`

	OutputDir    string        `type:"path" help:"Write .plist files here instead of beside the profile"`
	OutputFormat string        `default:"${config_output_format}" enum:"xml,binary" help:"Property list encoding for generated files"`
	DryRun       bool          `help:"Analyze and report without writing files"`
	Concurrency  int           `default:"${config_concurrency}" help:"Schemas fetched in parallel before analysis (1 disables prefetch)"`
	BaseURL      string        `name:"base-url" help:"Schema location (overrides config)"`
	Timeout      time.Duration `help:"Per-schema request timeout (overrides config)"`
}

// Run executes the analyze command
func (c *AnalyzeCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, globals)
}

func (c *AnalyzeCmd) run(ctx context.Context, globals *Globals) error {
	info, err := os.Stat(c.Path)
	if err != nil {
		return outputErrorCommon(globals, "FILE_NOT_FOUND", fmt.Errorf("file not found: %s", c.Path), "")
	}
	if info.IsDir() {
		return outputErrorCommon(globals, "LOAD_FAILED", &UsageError{Message: c.Path + " is a directory"}, "Pass the path of a .mobileconfig file")
	}

	var emitter *output.Emitter
	var reporter analyze.Reporter
	if globals.Format == "ndjson" {
		emitter = output.NewEmitter(globals.Stdout)
		reporter = emitter
	} else {
		text := output.NewTextReporter(globals.Stdout, globals.Quiet)
		text.DryRun = c.DryRun
		reporter = text
	}

	if !strings.HasSuffix(strings.ToLower(c.Path), ".mobileconfig") {
		emitWarning(globals, emitter, "File does not have .mobileconfig extension")
	}

	logger := newLogger(globals.Stderr, globals.Verbose)
	defer func() { _ = logger.Sync() }()

	opts := c.fetcherOptions(globals, logger)
	fetcher := schema.NewFetcher(opts)

	outDir := c.OutputDir
	if outDir == "" {
		outDir = globals.Config.Output.Dir
	}
	globals.Debug("schema source %s, output dir %q, format %s", opts.BaseURL, outDir, c.OutputFormat)

	analyzer := analyze.New(fetcher, reporter, output.NewPlistWriter(c.OutputFormat), analyze.Options{
		OutputDir:   outDir,
		DryRun:      c.DryRun,
		Concurrency: c.Concurrency,
	})

	if _, err := analyzer.Run(ctx, c.Path); err != nil {
		if errors.Is(err, context.Canceled) {
			return outputErrorCommon(globals, "ANALYSIS_FAILED", errors.New("analysis interrupted"), "")
		}
		code, hint := classify(err)
		return outputErrorCommon(globals, code, fmt.Errorf("error during analysis: %w", err), hint)
	}
	return nil
}

func (c *AnalyzeCmd) fetcherOptions(globals *Globals, logger *zap.Logger) schema.Options {
	cfg := globals.Config
	opts := schema.Options{
		BaseURL:       cfg.Schema.BaseURL,
		Timeout:       cfg.SchemaTimeout(),
		CacheFailures: cfg.Schema.CacheFailures,
		Logger:        logger,
	}
	if c.BaseURL != "" {
		opts.BaseURL = c.BaseURL
	}
	if c.Timeout > 0 {
		opts.Timeout = c.Timeout
	}
	return opts
}

// newLogger returns a console logger on w when verbose and a no-op logger
// otherwise.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), zap.DebugLevel)
	return zap.New(core)
}
