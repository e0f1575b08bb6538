package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Authenticator exchanges credentials for a platform token and resolves
// profiles from tokens. The dashboard package adapts the catalog client
// onto it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, User, error)
	Profile(ctx context.Context, token string) (User, error)
}

// Mirror synchronizes the persisted projections of the session. The
// fiber context is the cookie channel; it is nil when no response is in
// flight (startup restoration), in which case only durable storage is
// touched.
type Mirror interface {
	Persist(ctx context.Context, c *fiber.Ctx, token string, role Role) error
	Clear(ctx context.Context, c *fiber.Ctx) error
}

// Credentials is the sign-in payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Store owns the single Session of the running dashboard process. Every
// transition goes through its methods and callers only ever see
// snapshots, so there is no way to observe a half-applied transition.
type Store struct {
	mu     sync.Mutex
	sess   Session
	auth   Authenticator
	mirror Mirror
	log    *zap.Logger
}

// NewStore creates the process-wide session store in the anonymous idle
// state. It is constructed once at startup and injected into everything
// that needs it; there is no ambient global.
func NewStore(auth Authenticator, mirror Mirror, log *zap.Logger) *Store {
	return &Store{
		sess:   Session{Status: StatusIdle},
		auth:   auth,
		mirror: mirror,
		log:    log,
	}
}

// Session returns a snapshot of the current session.
func (s *Store) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.sess
	if s.sess.User != nil {
		u := *s.sess.User
		snap.User = &u
	}
	return snap
}

// BeginLogin exchanges credentials for a token, fetches the profile and
// moves the session to succeeded. Both persistence mirrors are written
// before the call returns. A rejected exchange leaves the session in
// failed with LastError carrying the platform's message. A second call
// while one is in flight is a caller error.
func (s *Store) BeginLogin(ctx context.Context, c *fiber.Ctx, creds Credentials) error {
	s.mu.Lock()
	if s.sess.Status == StatusLoading {
		s.mu.Unlock()
		return ErrLoginInProgress
	}
	s.sess = Session{Status: StatusLoading}
	s.mu.Unlock()

	token, user, err := s.auth.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		s.fail(err)
		s.log.Warn("login rejected", zap.String("email", creds.Email), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.sess = Session{User: &user, Token: token, Status: StatusSucceeded}
	s.mu.Unlock()

	if err := s.mirror.Persist(ctx, c, token, user.Role); err != nil {
		// A session whose mirrors cannot be written is never observable
		// as succeeded.
		s.reset()
		return fmt.Errorf("persisting session mirrors: %w", err)
	}

	s.log.Info("login succeeded",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)
	return nil
}

// RestoreFromToken rebuilds a live session from a previously persisted
// token. It is a no-op when a session has already succeeded or another
// attempt is in flight. A rejected token is the expected expiry case:
// both mirrors are cleared and the session returns to idle with no
// error surfaced, distinct from an explicit failed login.
func (s *Store) RestoreFromToken(ctx context.Context, token string) error {
	s.mu.Lock()
	if s.sess.Status == StatusSucceeded || s.sess.Status == StatusLoading {
		s.mu.Unlock()
		return nil
	}
	s.sess = Session{Status: StatusLoading}
	s.mu.Unlock()

	user, err := s.auth.Profile(ctx, token)
	if err != nil {
		s.log.Info("stored token rejected, clearing session mirrors", zap.Error(err))
		s.reset()
		if cerr := s.mirror.Clear(ctx, nil); cerr != nil {
			return fmt.Errorf("clearing stale session mirrors: %w", cerr)
		}
		return nil
	}

	s.mu.Lock()
	s.sess = Session{User: &user, Token: token, Status: StatusSucceeded}
	s.mu.Unlock()

	if err := s.mirror.Persist(ctx, nil, token, user.Role); err != nil {
		s.reset()
		return fmt.Errorf("persisting session mirrors: %w", err)
	}

	s.log.Info("session restored", zap.String("role", string(user.Role)))
	return nil
}

// Logout clears the session and both persistence mirrors. It is
// idempotent and always available as a reset path.
func (s *Store) Logout(ctx context.Context, c *fiber.Ctx) error {
	s.reset()
	if err := s.mirror.Clear(ctx, c); err != nil {
		return fmt.Errorf("clearing session mirrors: %w", err)
	}
	return nil
}

func (s *Store) reset() {
	s.mu.Lock()
	s.sess = Session{Status: StatusIdle}
	s.mu.Unlock()
}

// fail records a failed login. LastError is the platform's message when
// the error carries one, a generic line otherwise.
func (s *Store) fail(err error) {
	msg := "Login failed"
	var um UserMessage
	if errors.As(err, &um) {
		msg = um.UserMessage()
	}
	s.mu.Lock()
	s.sess = Session{Status: StatusFailed, LastError: msg}
	s.mu.Unlock()
}
