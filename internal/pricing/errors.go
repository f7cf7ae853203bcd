package pricing

import "fmt"

// ConfigurationError reports a rate that resolved to no value at all:
// neither the tour-specific table nor the global fallback defines it.
// Pricing must fail loudly rather than silently charge zero.
type ConfigurationError struct {
	Rate string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("pricing: rate %q is not configured on the tour or the global price table", e.Rate)
}
