package session

import "fmt"

// StateError carries a stable type tag, an operator-facing message and
// the HTTP status the dashboard should answer with.
type StateError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (e *StateError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

var (
	ErrLoginInProgress = &StateError{"LOGIN_IN_PROGRESS", "A sign-in attempt is already in flight", 409}
)

// UserMessage is implemented by collaborator errors whose text is safe
// to show to the operator (the platform's own wording, never transport
// or stack detail).
type UserMessage interface {
	UserMessage() string
}
