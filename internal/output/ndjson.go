package output

import (
	"encoding/json"
	"io"

	"github.com/vburojevic/mdmdefaults/internal/domain"
)

// NDJSONWriter writes analysis events as NDJSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// StartOutput marks the beginning of a run
type StartOutput struct {
	Type          string `json:"type"` // Always "analysis_start"
	SchemaVersion int    `json:"schemaVersion"`
	Profile       string `json:"profile"`
}

// DomainStartOutput announces a domain before its keys are compared
type DomainStartOutput struct {
	Type          string `json:"type"` // Always "domain_start"
	SchemaVersion int    `json:"schemaVersion"`
	Domain        string `json:"domain"`
	Keys          int    `json:"keys"`
	Sources       int    `json:"sources"`
}

// SchemaOutput reports whether a domain's schema was available
type SchemaOutput struct {
	Type          string `json:"type"` // Always "schema"
	SchemaVersion int    `json:"schemaVersion"`
	Domain        string `json:"domain"`
	Available     bool   `json:"available"`
	Error         string `json:"error,omitempty"`
}

// DecisionOutput is one per-key comparison
type DecisionOutput struct {
	Type          string `json:"type"` // Always "key_decision"
	SchemaVersion int    `json:"schemaVersion"`
	Domain        string `json:"domain"`
	Key           string `json:"key"`
	Outcome       string `json:"outcome"` // kept, matched or skipped
	Value         string `json:"value"`
	Default       string `json:"default,omitempty"`
}

// DomainEndOutput summarizes a processed domain
type DomainEndOutput struct {
	Type          string `json:"type"` // Always "domain_end"
	SchemaVersion int    `json:"schemaVersion"`
	Domain        string `json:"domain"`
	Kept          int    `json:"kept"`
	Matched       int    `json:"matched"`
	Skipped       int    `json:"skipped"`
	File          string `json:"file,omitempty"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// WriteStart outputs the analysis_start marker
func (w *NDJSONWriter) WriteStart(profile string) error {
	return w.encoder.Encode(&StartOutput{
		Type:          "analysis_start",
		SchemaVersion: SchemaVersion,
		Profile:       profile,
	})
}

// WriteDomainStart outputs a domain_start event
func (w *NDJSONWriter) WriteDomainStart(name string, keys, sources int) error {
	return w.encoder.Encode(&DomainStartOutput{
		Type:          "domain_start",
		SchemaVersion: SchemaVersion,
		Domain:        name,
		Keys:          keys,
		Sources:       sources,
	})
}

// WriteSchema outputs a schema availability event
func (w *NDJSONWriter) WriteSchema(name string, err error) error {
	out := &SchemaOutput{
		Type:          "schema",
		SchemaVersion: SchemaVersion,
		Domain:        name,
		Available:     err == nil,
	}
	if err != nil {
		out.Error = err.Error()
	}
	return w.encoder.Encode(out)
}

// WriteDecision outputs a key_decision event
func (w *NDJSONWriter) WriteDecision(name string, d domain.KeyDecision) error {
	out := &DecisionOutput{
		Type:          "key_decision",
		SchemaVersion: SchemaVersion,
		Domain:        name,
		Key:           d.Key,
		Outcome:       string(d.Outcome),
		Value:         d.Observed.Canonical(),
	}
	if d.HasDefault {
		out.Default = d.Default.Canonical()
	}
	return w.encoder.Encode(out)
}

// WriteDomainEnd outputs a domain_end event
func (w *NDJSONWriter) WriteDomainEnd(r *domain.DomainResult) error {
	kept, matched, skipped := r.Counts()
	return w.encoder.Encode(&DomainEndOutput{
		Type:          "domain_end",
		SchemaVersion: SchemaVersion,
		Domain:        r.Domain,
		Kept:          kept,
		Matched:       matched,
		Skipped:       skipped,
		File:          r.File,
	})
}

// WriteSummary outputs the analysis_summary marker
func (w *NDJSONWriter) WriteSummary(summary *domain.RunSummary) error {
	summary.SchemaVersion = SchemaVersion
	return w.encoder.Encode(summary)
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteWarning outputs a warning
func (w *NDJSONWriter) WriteWarning(message string) error {
	return w.encoder.Encode(&WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encoder.Encode(v)
}
