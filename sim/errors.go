package sim

import "fmt"

// ConfigError reports an invalid scenario. It is returned before any
// simulation state exists, so it never carries a year.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid scenario: %s", e.Reason)
	}
	return fmt.Sprintf("invalid scenario: %s: %s", e.Field, e.Reason)
}

func configErrf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConsistencyError reports a violated engine invariant (headroom overrun,
// capacity regression) detected after the selection phase. It indicates a
// defect in the selection or apply logic, not bad user input, so the engine
// stops instead of clamping.
type ConsistencyError struct {
	Region string
	Year   int
	Reason string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("internal consistency violation in region %q, year %d: %s", e.Region, e.Year, e.Reason)
}
