package cli

// CLIError is a structured error used for consistent NDJSON/text emission.
type CLIError struct {
	Code    string
	Message string
	Hint    string
	Err     error
}

func (e *CLIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UsageError reports a command line that cannot be acted on.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }
