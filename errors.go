package reinfer

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions with no useful extra context.
var (
	// ErrBadInput indicates a word appears in both the positive and
	// negative example sets.
	ErrBadInput = errors.New("reinfer: word present in both positive and negative examples")

	// ErrWidthExceeded indicates the infix closure of pos/neg has more
	// entries than the 256-bit CS representation can address.
	ErrWidthExceeded = errors.New("reinfer: infix closure exceeds 256-bit CS width")
)

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "reinfer: invalid config: " + e.Field + ": " + e.Message
}

// BadInputError wraps ErrBadInput with the offending word.
type BadInputError struct {
	Word string
}

// Error implements the error interface.
func (e *BadInputError) Error() string {
	return fmt.Sprintf("reinfer: %q is both a positive and a negative example", e.Word)
}

// Unwrap lets errors.Is(err, ErrBadInput) see through the wrapper.
func (e *BadInputError) Unwrap() error {
	return ErrBadInput
}
