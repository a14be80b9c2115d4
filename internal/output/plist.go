package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"
)

// Output plist formats
const (
	FormatXML    = "xml"
	FormatBinary = "binary"
)

// WriteError reports an output file that could not be produced.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write PLIST file %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// PlistWriter writes one property list per preference domain.
type PlistWriter struct {
	format int
}

// NewPlistWriter returns a writer for the given format name. Unknown names
// fall back to XML.
func NewPlistWriter(format string) *PlistWriter {
	w := &PlistWriter{format: plist.XMLFormat}
	if strings.EqualFold(format, FormatBinary) {
		w.format = plist.BinaryFormat
	}
	return w
}

// Path returns where the file for domain would be written inside dir.
func (w *PlistWriter) Path(domain, dir string) string {
	name := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(domain)
	return filepath.Join(dir, name+".plist")
}

// Write serializes data to <dir>/<domain>.plist and returns the path.
func (w *PlistWriter) Write(domain string, data map[string]interface{}, dir string) (string, error) {
	path := w.Path(domain, dir)

	var (
		out []byte
		err error
	)
	if w.format == plist.XMLFormat {
		out, err = plist.MarshalIndent(data, w.format, "\t")
	} else {
		out, err = plist.Marshal(data, w.format)
	}
	if err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	return path, nil
}
