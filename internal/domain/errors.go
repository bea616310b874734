package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrImageDecode      = errors.New("image decode failed")
	ErrImageFetch       = errors.New("image fetch failed")
	ErrFontUnavailable  = errors.New("font unavailable")
)

// ProviderError carries the upstream generation API's status and message so
// the HTTP boundary can surface them verbatim.
type ProviderError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("provider: status %d: %s", e.Status, e.Message)
}

// Invalid wraps ErrInvalidParameter with a reason suitable for the caller.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
