// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Validator is implemented by configs that check their own invariants after
// every source (environment, then flags) has been applied.
type Validator interface {
	Validate() error
}

// ParseEnv fills target from environment variables. Missing variables keep
// their envDefault; malformed ones fail with the variable named.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate runs target's Validate method when it has one.
func Validate(target any) error {
	v, ok := target.(Validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
