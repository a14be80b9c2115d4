package domain

import "github.com/vburojevic/mdmdefaults/internal/value"

// Outcome is what the filter decided for one preference key.
type Outcome string

const (
	// OutcomeKept means the observed value differs from the documented default.
	OutcomeKept Outcome = "kept"
	// OutcomeMatched means the observed value equals the documented default.
	OutcomeMatched Outcome = "matched"
	// OutcomeSkipped means no default is documented, so the key is omitted.
	OutcomeSkipped Outcome = "skipped"
)

// KeyDecision records the comparison made for one key.
type KeyDecision struct {
	Key        string
	Observed   value.Value
	Default    value.Value
	HasDefault bool
	Outcome    Outcome
}

// DomainResult is the outcome of filtering one preference domain.
type DomainResult struct {
	Domain  string
	Sources int

	// SchemaErr is set when the domain's schema could not be retrieved.
	SchemaErr error

	Decisions []KeyDecision

	// NonDefaults holds the observed values of kept keys, as decoded from
	// the profile.
	NonDefaults map[string]interface{}

	// File is the written output path; empty when nothing was written.
	File string
}

// Counts tallies decisions by outcome.
func (r *DomainResult) Counts() (kept, matched, skipped int) {
	for _, d := range r.Decisions {
		switch d.Outcome {
		case OutcomeKept:
			kept++
		case OutcomeMatched:
			matched++
		case OutcomeSkipped:
			skipped++
		}
	}
	return kept, matched, skipped
}
