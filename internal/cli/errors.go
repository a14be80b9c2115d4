package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vburojevic/mdmdefaults/internal/output"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so scripts always get machine-readable failures.
// The returned *CLIError wraps cause.
func outputErrorCommon(globals *Globals, code string, cause error, hint string) error {
	e := &CLIError{Code: code, Message: cause.Error(), Hint: hint, Err: cause}
	if globals == nil {
		return e
	}

	if globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteError(code, e.Message, hint)
	} else {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", code, e.Message)
		if hint != "" {
			fmt.Fprintf(globals.Stderr, "Hint: %s\n", hint)
		}
	}

	if globals.Verbose {
		if chain := errorChain(cause); len(chain) > 1 {
			fmt.Fprintln(globals.Stderr, "Trace:")
			for i, layer := range chain {
				fmt.Fprintf(globals.Stderr, "  %d. %s\n", i+1, layer)
			}
		}
	}
	return e
}

// errorChain lists each wrapped layer of err, outermost first, trimming the
// text repeated from the layer below.
func errorChain(err error) []string {
	var layers []string
	for err != nil {
		msg := err.Error()
		next := errors.Unwrap(err)
		if next != nil {
			if inner := next.Error(); inner != "" && strings.HasSuffix(msg, inner) {
				msg = strings.TrimSuffix(strings.TrimSuffix(msg, inner), ": ")
			}
		}
		layers = append(layers, fmt.Sprintf("%T: %s", err, msg))
		err = next
	}
	return layers
}
