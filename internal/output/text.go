package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/vburojevic/mdmdefaults/internal/domain"
)

// TextReporter prints a human-readable trace of an analysis run
type TextReporter struct {
	w       io.Writer
	styles  Palette
	quiet   bool
	results []*domain.DomainResult

	// DryRun words file lines as intentions rather than results.
	DryRun bool
}

// NewTextReporter creates a reporter writing to w. Quiet suppresses the
// per-domain trace and keeps only the final result.
func NewTextReporter(w io.Writer, quiet bool) *TextReporter {
	return &TextReporter{
		w:      w,
		styles: PaletteFor(w),
		quiet:  quiet,
	}
}

func (r *TextReporter) printf(format string, args ...interface{}) {
	if !r.quiet {
		fmt.Fprintf(r.w, format, args...)
	}
}

// Start prints the run banner
func (r *TextReporter) Start(profile string) {
	r.printf("%s %s\n", r.styles.Header.Render("Analyzing mobile configuration:"), profile)
}

// NoDomains reports a profile without preference payloads
func (r *TextReporter) NoDomains() {
	fmt.Fprintln(r.w, r.styles.Danger.Render("ERROR: No preference domains found in the configuration."))
}

// DomainsFound prints the domain count
func (r *TextReporter) DomainsFound(n int) {
	r.printf("Found %d preference domains\n", n)
}

// DomainStart prints the domain header
func (r *TextReporter) DomainStart(name string, keys, sources int) {
	r.printf("\n%s %s\n", r.styles.Label.Render("Processing domain:"), r.styles.Domain.Render(name))
}

// SchemaStatus prints whether the schema could be fetched
func (r *TextReporter) SchemaStatus(name string, err error) {
	if err != nil {
		r.printf("%s\n", r.styles.Warning.Render(fmt.Sprintf("WARNING: Could not fetch schema for %s: %v", name, err)))
		return
	}
	r.printf("Fetched schema for %s\n", name)
}

// Decision prints one per-key comparison
func (r *TextReporter) Decision(name string, d domain.KeyDecision) {
	key := r.styles.Key.Render(d.Key)
	switch d.Outcome {
	case domain.OutcomeKept:
		r.printf("  %s: %s %s\n", key, r.styles.Kept.Render(d.Observed.Canonical()),
			r.styles.Label.Render("(default: "+d.Default.Canonical()+")"))
	case domain.OutcomeMatched:
		r.printf("  %s\n", r.styles.Matched.Render("- "+d.Key+": matches default ("+d.Default.Canonical()+")"))
	case domain.OutcomeSkipped:
		r.printf("  %s\n", r.styles.Skipped.Render("SKIPPED: "+d.Key+": No documented default found, omitting from output"))
	}
}

// DomainEnd prints what happened to the domain's output file
func (r *TextReporter) DomainEnd(res *domain.DomainResult) {
	r.results = append(r.results, res)
	if res.File == "" {
		r.printf("  All values match defaults, no file created\n")
		return
	}
	verb := "Created:"
	if r.DryRun {
		verb = "Would create:"
	}
	r.printf("  %s %s\n", r.styles.Success.Render(verb), filepath.Base(res.File))
}

// Finish prints the final result and, unless quiet, a summary table
func (r *TextReporter) Finish(s *domain.RunSummary) {
	if len(s.FilesCreated) == 0 {
		fmt.Fprintf(r.w, "\n%s\n", r.styles.Success.Render("Analysis complete! No non-default preferences found."))
		return
	}

	verb := "Created"
	if s.DryRun {
		verb = "Would create"
	}
	fmt.Fprintf(r.w, "\n%s\n", r.styles.Success.Render(fmt.Sprintf("Analysis complete! %s %d preference files:", verb, len(s.FilesCreated))))
	for _, f := range s.FilesCreated {
		fmt.Fprintf(r.w, "   • %s\n", filepath.Base(f))
	}

	if !r.quiet && len(r.results) > 0 {
		fmt.Fprintln(r.w)
		_ = WriteSummaryTable(r.w, r.results)
	}
}

// WriteSummaryTable renders one row per domain with its decision counts
func WriteSummaryTable(w io.Writer, results []*domain.DomainResult) error {
	table := tablewriter.NewWriter(w)
	table.Header("Domain", "Kept", "Matched", "Skipped", "File")
	for _, res := range results {
		kept, matched, skipped := res.Counts()
		file := "-"
		if res.File != "" {
			file = filepath.Base(res.File)
		}
		if err := table.Append([]string{
			res.Domain,
			strconv.Itoa(kept),
			strconv.Itoa(matched),
			strconv.Itoa(skipped),
			file,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
