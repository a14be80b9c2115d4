// Package profile reads configuration profiles (.mobileconfig property
// lists) and groups their payload settings by preference domain.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"howett.net/plist"
)

// ErrSignedProfile is wrapped by LoadError when the input looks like a
// CMS-signed profile rather than a bare property list.
var ErrSignedProfile = errors.New("profile is CMS-signed")

// LoadError reports a profile that cannot be read or is not a property list.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("could not read mobile config: %v", e.Err)
	}
	return fmt.Sprintf("could not read mobile config file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Document is a parsed configuration profile.
type Document struct {
	Path   string
	Format string
	Root   map[string]interface{}
}

// Load reads and parses the profile at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	doc, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse decodes an XML or binary property list whose root is a dictionary.
func Parse(data []byte) (*Document, error) {
	var root map[string]interface{}
	format, err := plist.Unmarshal(data, &root)
	if err != nil {
		if looksSigned(data) {
			return nil, &LoadError{Err: fmt.Errorf("%w: %v", ErrSignedProfile, err)}
		}
		return nil, &LoadError{Err: err}
	}
	if root == nil {
		return nil, &LoadError{Err: errors.New("property list root is not a dictionary")}
	}
	return &Document{
		Format: plist.FormatNames[format],
		Root:   root,
	}, nil
}

// looksSigned checks for a DER SEQUENCE header wrapping a plist payload.
func looksSigned(data []byte) bool {
	return len(data) > 2 && data[0] == 0x30 && (data[1] == 0x80 || data[1] >= 0x81) &&
		bytes.Contains(data, []byte("<plist"))
}
