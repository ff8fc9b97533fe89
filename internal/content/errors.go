package content

import "fmt"

// LoadError reports that a document could not be fetched or parsed.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("loading %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("loading %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError reports malformed input such as a transcript or a video URL.
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("parsing %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that nothing matching was found in the input.
type NotFoundError struct {
	What  string
	Input string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found in %q", e.What, e.Input)
}
