package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/vburojevic/mdmdefaults/internal/schema"
	"go.uber.org/zap"
)

// NoDefault is printed when no default can be determined.
const NoDefault = "No default"

// LookupCLI is the root command structure for mdm-default. It prints one
// line and never fails: any problem resolves to NoDefault.
type LookupCLI struct {
	Args []string `arg:"" optional:"" help:"Preference domain and key, e.g. com.apple.MCX DisableGuestAccount"`

	BaseURL string           `name:"base-url" default:"${schema_url}" hidden:"" help:"Schema location"`
	Timeout time.Duration    `default:"${schema_timeout}" hidden:"" help:"Schema request timeout"`
	Version kong.VersionFlag `help:"Show version information and exit"`
}

// LookupVars supplies the defaults referenced by LookupCLI tags.
func LookupVars() kong.Vars {
	return kong.Vars{
		"schema_url":     schema.DefaultBaseURL,
		"schema_timeout": schema.DefaultTimeout.String(),
		"version":        VersionString(),
	}
}

// Run prints the canonical default for the requested key.
func (c *LookupCLI) Run(stdout io.Writer) error {
	fmt.Fprintln(stdout, c.Lookup(context.Background()))
	return nil
}

// Lookup resolves the default as text, or NoDefault.
func (c *LookupCLI) Lookup(ctx context.Context) string {
	if len(c.Args) != 2 {
		return NoDefault
	}

	f := schema.NewFetcher(schema.Options{
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
		Logger:  zap.NewNop(),
	})
	v, ok := f.DefaultFor(ctx, c.Args[0], c.Args[1])
	if !ok {
		return NoDefault
	}
	return v.Canonical()
}
