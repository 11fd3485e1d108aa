package requests

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
)

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type UnsupportedAlgorithmError struct {
	Algorithm string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm %q", e.Algorithm)
}

func (e *UnsupportedAlgorithmError) Is(target error) bool {
	return target == ErrUnsupportedAlgorithm
}

// IsRejection reports whether err was raised while checking the request,
// before any simulation started.
func IsRejection(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrUnsupportedAlgorithm)
}

func validationErrorf(field, format string, args ...any) error {
	return errors.WithStack(&ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}
