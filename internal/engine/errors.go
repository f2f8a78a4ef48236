package engine

import "fmt"

// ValidationError reports an unusable reading: unknown machine type, or a
// metric value that is missing, non-finite, or out of domain. It is never
// produced for degenerate threshold values.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid reading: %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports a threshold table that lacks an entry for the
// requested machine type and metric category. Callers may fall back to
// defaults or reject the request.
type ConfigurationError struct {
	Category string
	Machine  MachineType
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("threshold config: no %s entry for machine type %q", e.Category, e.Machine)
}
