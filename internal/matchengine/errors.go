// Package matchengine is the entry point of the resume-job matching
// core: a pure, stateless transformation of (resume text, job text)
// into a fit score and a ranked set of relevant resume bullets.
package matchengine

import "fmt"

// InputError signals empty or unusable caller input. No partial summary
// is produced when it is returned.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("input error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("input error: %s", e.Message)
}

// ConfigurationError signals an invalid engine configuration, surfaced
// before any processing begins.
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}
