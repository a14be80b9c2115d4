package schema

import "fmt"

// FetchError reports a failed schema retrieval: a transport failure, a
// timeout, or a non-2xx response.
type FetchError struct {
	Domain     string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch schema for %s: %s: HTTP %d", e.Domain, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch schema for %s: %v", e.Domain, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a schema document that is not valid YAML or does not
// have the expected shape.
type ParseError struct {
	Domain string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse schema for %s: %v", e.Domain, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
