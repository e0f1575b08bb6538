package mirror

import (
	"context"
	"errors"
	"time"

	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// Record is the durable projection of the session: the encrypted token
// and the role string the route guard keys on.
type Record struct {
	Token     []byte // sealed by the bridge's token cipher
	Role      session.Role
	UpdatedAt time.Time
}

// ErrNoStoredSession is returned by Load when the process has no
// persisted session.
var ErrNoStoredSession = errors.New("no stored session")

// Store is the durable channel of the persistence bridge. Exactly one
// record exists per dashboard process; Save overwrites it and Delete is
// idempotent.
//
// Error contract: Load returns ErrNoStoredSession when nothing is
// stored; infrastructure failures come back wrapped with context.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context) (Record, error)
	Delete(ctx context.Context) error
}
