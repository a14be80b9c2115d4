package domain

// RunSummary describes one completed analysis run.
type RunSummary struct {
	Type          string `json:"type"`          // Always "analysis_summary"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility

	Profile      string   `json:"profile"`
	DomainCount  int      `json:"domain_count"`
	FilesCreated []string `json:"files_created"`
	DryRun       bool     `json:"dry_run,omitempty"`

	// Totals across all domains
	Kept    int `json:"kept"`
	Matched int `json:"matched"`
	Skipped int `json:"skipped"`

	// Schema fetch counters
	SchemaRequests int   `json:"schema_requests"`
	SchemaFailures int   `json:"schema_failures"`
	FetchMillis    int64 `json:"fetch_ms"`
}

// NewRunSummary creates a new empty summary
func NewRunSummary(profile string) *RunSummary {
	return &RunSummary{
		Type:         "analysis_summary",
		Profile:      profile,
		FilesCreated: []string{},
	}
}

// Add folds a domain result into the totals.
func (s *RunSummary) Add(r *DomainResult) {
	s.DomainCount++
	kept, matched, skipped := r.Counts()
	s.Kept += kept
	s.Matched += matched
	s.Skipped += skipped
	if r.File != "" {
		s.FilesCreated = append(s.FilesCreated, r.File)
	}
}

// ErrorOutput represents a structured error for NDJSON output
type ErrorOutput struct {
	Type          string `json:"type"`           // Always "error"
	SchemaVersion int    `json:"schemaVersion"`  // Schema version for compatibility
	Code          string `json:"code"`           // Machine-readable error code
	Message       string `json:"message"`        // Human-readable message
	Hint          string `json:"hint,omitempty"` // Suggested fix
}

// NewErrorOutput creates a new error output
// Note: SchemaVersion should be set by the caller (output package)
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}
