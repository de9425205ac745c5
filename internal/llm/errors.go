package llm

import "fmt"

// MissingKeyError indicates that no API key was supplied for a provider
type MissingKeyError struct {
	Provider Provider
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("no API key configured for provider %s", e.Provider)
}

// ProviderError wraps a failure reported by an LLM provider API
type ProviderError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
