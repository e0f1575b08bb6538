package policy

import (
	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// Decision is the outcome of evaluating a session against a role set.
type Decision int

const (
	Deny Decision = iota
	Allow
	Pending
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Pending:
		return "pending"
	default:
		return "deny"
	}
}

// Evaluate maps a session snapshot and the roles a subtree allows onto
// an access decision: Pending while the session is loading, Allow only
// for a succeeded session whose role is in the set, Deny otherwise
// (idle, failed, or succeeded with the wrong role). Pure; no I/O and no
// clock, so it is testable in isolation.
func Evaluate(s session.Session, allowed []session.Role) Decision {
	if s.Status == session.StatusLoading {
		return Pending
	}
	if !s.LoggedIn() {
		return Deny
	}
	role := s.Role()
	for _, r := range allowed {
		if role == r {
			return Allow
		}
	}
	return Deny
}
