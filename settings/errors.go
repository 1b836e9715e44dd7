package settings

import (
	"errors"
	"fmt"
)

var (
	ErrMissingKey  = errors.New("missing required key")
	ErrReservedKey = errors.New("reserved key")
)

// ConfigError reports a settings document that is missing, unreadable or
// malformed. Path is empty when the document did not come from a file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid settings: %v", e.Err)
	}
	return fmt.Sprintf("invalid settings in %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
