package output

import (
	"io"

	"github.com/vburojevic/mdmdefaults/internal/domain"
)

// Emitter reports analysis progress as NDJSON events, reusing one encoder.
type Emitter struct {
	w *NDJSONWriter
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: NewNDJSONWriter(w)}
}

func (e *Emitter) Start(profile string) { _ = e.w.WriteStart(profile) }
func (e *Emitter) NoDomains() {
	_ = e.w.WriteWarning("no preference domains found in the configuration")
}

// DomainsFound is implied by the domain_start events that follow.
func (e *Emitter) DomainsFound(int) {}

func (e *Emitter) DomainStart(name string, keys, sources int) { _ = e.w.WriteDomainStart(name, keys, sources) }
func (e *Emitter) SchemaStatus(name string, err error)        { _ = e.w.WriteSchema(name, err) }
func (e *Emitter) Decision(name string, d domain.KeyDecision) { _ = e.w.WriteDecision(name, d) }
func (e *Emitter) DomainEnd(r *domain.DomainResult)           { _ = e.w.WriteDomainEnd(r) }
func (e *Emitter) Finish(s *domain.RunSummary)                { _ = e.w.WriteSummary(s) }
func (e *Emitter) Warning(msg string)                         { _ = e.w.WriteWarning(msg) }
