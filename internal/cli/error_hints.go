package cli

import (
	"errors"
	"io/fs"

	"github.com/vburojevic/mdmdefaults/internal/output"
	"github.com/vburojevic/mdmdefaults/internal/profile"
)

func hintForLoad(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, profile.ErrSignedProfile) {
		return "The profile is signed; export an unsigned copy first, e.g. `security cms -D -i signed.mobileconfig -o unsigned.mobileconfig`"
	}
	if errors.Is(err, fs.ErrPermission) {
		return "Check read permissions on the profile"
	}
	return "Make sure the file is an XML or binary property list"
}

func hintForWrite(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, fs.ErrNotExist) {
		return "The output directory does not exist; create it or pass a different --output-dir"
	}
	if errors.Is(err, fs.ErrPermission) {
		return "The output directory is not writable; pass --output-dir"
	}
	return ""
}

// classify maps an analysis failure to an error code and hint.
func classify(err error) (string, string) {
	var le *profile.LoadError
	if errors.As(err, &le) {
		return "LOAD_FAILED", hintForLoad(err)
	}
	var we *output.WriteError
	if errors.As(err, &we) {
		return "WRITE_FAILED", hintForWrite(err)
	}
	return "ANALYSIS_FAILED", ""
}
