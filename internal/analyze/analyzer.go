package analyze

import (
	"context"
	"path/filepath"

	"github.com/vburojevic/mdmdefaults/internal/domain"
	"github.com/vburojevic/mdmdefaults/internal/output"
	"github.com/vburojevic/mdmdefaults/internal/profile"
	"github.com/vburojevic/mdmdefaults/internal/schema"
)

// SchemaSource supplies schemas by preference domain.
type SchemaSource interface {
	Fetch(ctx context.Context, domain string) (*schema.Schema, error)
}

// Prefetcher is implemented by sources that can warm several domains at once.
type Prefetcher interface {
	Prefetch(ctx context.Context, domains []string, limit int) error
}

type statser interface {
	Stats() schema.Stats
}

// Reporter receives progress events in run order.
type Reporter interface {
	Start(profilePath string)
	NoDomains()
	DomainsFound(n int)
	DomainStart(name string, keys, sources int)
	SchemaStatus(name string, err error)
	Decision(name string, d domain.KeyDecision)
	DomainEnd(r *domain.DomainResult)
	Finish(s *domain.RunSummary)
}

// Options tunes a run.
type Options struct {
	// OutputDir overrides the default of writing beside the profile.
	OutputDir string
	// DryRun reports what would be written without touching the disk.
	DryRun bool
	// Concurrency bounds parallel schema prefetching; 1 or less disables it.
	Concurrency int
}

// Analyzer drives load, extract, filter and write for one profile.
type Analyzer struct {
	source   SchemaSource
	reporter Reporter
	writer   *output.PlistWriter
	opts     Options
}

// New creates an Analyzer. A nil writer writes XML property lists.
func New(source SchemaSource, reporter Reporter, writer *output.PlistWriter, opts Options) *Analyzer {
	if writer == nil {
		writer = output.NewPlistWriter(output.FormatXML)
	}
	return &Analyzer{
		source:   source,
		reporter: reporter,
		writer:   writer,
		opts:     opts,
	}
}

// Run analyzes the profile at path. Load and write failures abort the run;
// schema failures only mean the affected domain has no documented defaults.
func (a *Analyzer) Run(ctx context.Context, path string) (*domain.RunSummary, error) {
	a.reporter.Start(path)

	doc, err := profile.Load(path)
	if err != nil {
		return nil, err
	}

	outDir := a.opts.OutputDir
	if outDir == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		outDir = filepath.Dir(abs)
	}

	return a.AnalyzeDocument(ctx, doc, outDir)
}

// AnalyzeDocument runs the pipeline on an already loaded profile.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc *profile.Document, outDir string) (*domain.RunSummary, error) {
	summary := domain.NewRunSummary(doc.Path)
	summary.DryRun = a.opts.DryRun

	payloads := profile.Extract(doc)
	if len(payloads) == 0 {
		a.reporter.NoDomains()
		a.finish(summary)
		return summary, nil
	}
	a.reporter.DomainsFound(len(payloads))

	if p, ok := a.source.(Prefetcher); ok && a.opts.Concurrency > 1 {
		names := make([]string, len(payloads))
		for i, dp := range payloads {
			names[i] = dp.Domain
		}
		if err := p.Prefetch(ctx, names, a.opts.Concurrency); err != nil {
			return nil, err
		}
	}

	for _, dp := range payloads {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a.reporter.DomainStart(dp.Domain, len(dp.Settings), dp.Sources)

		s, err := a.source.Fetch(ctx, dp.Domain)
		a.reporter.SchemaStatus(dp.Domain, err)
		if err != nil {
			s = nil
		}

		result := Filter(dp.Domain, s, dp.Settings)
		result.Sources = dp.Sources
		result.SchemaErr = err
		for _, d := range result.Decisions {
			a.reporter.Decision(dp.Domain, d)
		}

		if len(result.NonDefaults) > 0 {
			path := a.writer.Path(dp.Domain, outDir)
			if !a.opts.DryRun {
				path, err = a.writer.Write(dp.Domain, result.NonDefaults, outDir)
				if err != nil {
					return nil, err
				}
			}
			result.File = path
		}

		a.reporter.DomainEnd(result)
		summary.Add(result)
	}

	a.finish(summary)
	return summary, nil
}

func (a *Analyzer) finish(summary *domain.RunSummary) {
	if st, ok := a.source.(statser); ok {
		stats := st.Stats()
		summary.SchemaRequests = stats.Requests
		summary.SchemaFailures = stats.Failures
		summary.FetchMillis = stats.Elapsed.Milliseconds()
	}
	a.reporter.Finish(summary)
}
