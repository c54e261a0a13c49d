package config

import "fmt"

// ValidatableConfig is implemented by every config section.
type ValidatableConfig interface {
	Validate() []error
}

// Validate collects the validation errors of all cfgs.
func Validate(cfgs ...ValidatableConfig) []error {
	var out []error

	for _, cfg := range cfgs {
		out = append(out, cfg.Validate()...)
	}

	return out
}

// ValidatePort rejects ports outside [0, 65535]. Port 0 is allowed: it means
// "dynamic" for binding and is a degenerate but valid destination.
func ValidatePort(port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("%d not in [0, 65535]", port)
	}

	return nil
}
