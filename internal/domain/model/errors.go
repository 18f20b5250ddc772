package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds shared by the template resolver and the allocation engine.
var (
	ErrUnknownFamily   = errors.New("unknown channel family")
	ErrInvalidTemplate = errors.New("invalid channel template")
)

// ConfigurationError reports a defect in the channel template supplied by the
// mixer-configuration collaborator. It is fatal to the call that returns it.
type ConfigurationError struct {
	Op     string
	SlotID string
	Family string
	Err    error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.SlotID != "":
		return fmt.Sprintf("%s: slot %q (family %q): %v", e.Op, e.SlotID, e.Family, e.Err)
	case e.Family != "":
		return fmt.Sprintf("%s: family %q: %v", e.Op, e.Family, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
