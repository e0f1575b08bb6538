package catalog

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx reply from the platform API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform api: %d %s", e.Status, e.Message)
}

// UserMessage reports the platform's own wording, which is what the
// dashboard shows the operator.
func (e *APIError) UserMessage() string {
	return e.Message
}

// IsAuth reports whether the platform rejected the caller's token or
// role. This is the authoritative access signal; the guards upstream
// are only pre-filters.
func IsAuth(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && (ae.Status == 401 || ae.Status == 403)
}
