package extraction

import "fmt"

// UnsupportedTypeError is returned when a file's extension maps to no decoder
type UnsupportedTypeError struct {
	Extension string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %q (supported: pdf, docx, doc, txt)", e.Extension)
}

// UnknownBackendError is returned when a PDF backend name maps to no
// implementation
type UnknownBackendError struct {
	Name string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown pdf backend: %q (supported: structure, render)", e.Name)
}

// DecodeError wraps a failure from the underlying file decoder
type DecodeError struct {
	Format string
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to extract text from %s file: %v", e.Format, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
