package parsererror

import "fmt"

// ParseError represents a value that could not be decoded, either a
// stored document or a piece of user input.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: failed to parse '%s': %v", e.Source, snippet(e.Value), e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, snippet(e.Value), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents input rejected before any state changed.
// Without a Field the Reason is shown verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

const maxSnippet = 64

func snippet(value string) string {
	runes := []rune(value)
	if len(runes) <= maxSnippet {
		return value
	}
	return string(runes[:maxSnippet]) + "..."
}
