package cli

import (
	"fmt"

	"github.com/vburojevic/mdmdefaults/internal/output"
)

// emitWarning respects format/quiet.
func emitWarning(globals *Globals, emitter *output.Emitter, msg string) {
	if globals.Quiet {
		return
	}
	if globals.Format == "ndjson" && emitter != nil {
		emitter.Warning(msg)
		return
	}
	fmt.Fprintf(globals.Stderr, "WARNING: %s\n", msg)
}
