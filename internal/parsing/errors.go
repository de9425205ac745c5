package parsing

import "fmt"

// ParseFailureError indicates that the deterministic parser aborted
// before producing a usable result.
type ParseFailureError struct {
	Message string
	Cause   error
}

func (e *ParseFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse failure: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse failure: %s", e.Message)
}

func (e *ParseFailureError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError indicates that an LLM returned output that
// could not be decoded or did not satisfy the expected schema.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed LLM response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed LLM response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
