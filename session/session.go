package session

// Role is an operator's role as reported by the platform API. The API
// sends it as a free-form string; it is narrowed to this type as soon as
// it enters the process and only ever compared against the declared
// route policy, so an unknown role can never widen access.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
)

// Status is the lifecycle state of the process-wide session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// User is the account profile the platform reports.
type User struct {
	ID     int    `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar"`
}

// Session is the in-memory record of the current authenticated identity.
// Invariant: StatusSucceeded implies a non-empty Token and a User with a
// non-empty Role; in every other status no role claim is to be trusted.
type Session struct {
	User      *User
	Token     string
	Status    Status
	LastError string
}

// LoggedIn reports whether the session carries a trusted identity.
func (s Session) LoggedIn() bool {
	return s.Status == StatusSucceeded && s.User != nil && s.Token != ""
}

// Role returns the session's role, or the empty role for anonymous and
// in-flight sessions.
func (s Session) Role() Role {
	if !s.LoggedIn() {
		return ""
	}
	return s.User.Role
}
