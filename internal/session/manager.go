// Package session issues, validates and revokes server-side login sessions
// and derives the cookie that carries their id.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/pkg/idgen"
)

// CookieName is the name of the cookie holding the session id.
const CookieName = "auth_session"

// DefaultLifetime is how long a new or renewed session stays valid.
const DefaultLifetime = 30 * 24 * time.Hour

// Store persists sessions.
type Store interface {
	Create(ctx context.Context, session *domain.Session) error
	GetWithUser(ctx context.Context, id string) (*domain.Session, *domain.User, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt int64) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now int64) (int64, error)
	DeleteForUser(ctx context.Context, userID string) (int64, error)
}

// Options configure a Manager.
type Options struct {
	// Lifetime of a session; zero means DefaultLifetime.
	Lifetime time.Duration
	// Secure marks the cookie Secure. Set in production.
	Secure bool
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Result is a successfully validated session.
type Result struct {
	User    *domain.PublicUser
	Session *domain.Session
	// Fresh is set when validation extended the expiry and the cookie
	// should be sent again.
	Fresh bool
}

// Manager issues and validates sessions.
type Manager struct {
	store    Store
	lifetime time.Duration
	secure   bool
	now      func() time.Time
}

// NewManager creates a Manager backed by s.
func NewManager(s Store, opts Options) *Manager {
	m := &Manager{
		store:    s,
		lifetime: opts.Lifetime,
		secure:   opts.Secure,
		now:      opts.Now,
	}
	if m.lifetime <= 0 {
		m.lifetime = DefaultLifetime
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Lifetime returns the configured session lifetime.
func (m *Manager) Lifetime() time.Duration {
	return m.lifetime
}

// Create starts a session for userID and returns it with its cookie.
func (m *Manager) Create(ctx context.Context, userID string) (*domain.Session, *http.Cookie, error) {
	id, err := idgen.SessionID()
	if err != nil {
		return nil, nil, err
	}

	now := m.now()
	session := &domain.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: domain.Millis(now.Add(m.lifetime)),
		CreatedAt: domain.Millis(now),
	}
	if err := m.store.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	return session, m.Cookie(session), nil
}

// Validate resolves a session id to its user. It returns a nil Result, and
// no error, when the session is missing, expired or belongs to an inactive
// user. A session past half its lifetime has its expiry pushed forward.
func (m *Manager) Validate(ctx context.Context, sessionID string) (*Result, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, user, err := m.store.GetWithUser(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	now := m.now()
	nowMillis := domain.Millis(now)
	if session.Expired(nowMillis) || !user.IsActive {
		return nil, nil
	}

	result := &Result{User: user.Public(), Session: session}

	if session.ExpiresAt-nowMillis < m.lifetime.Milliseconds()/2 {
		expiresAt := domain.Millis(now.Add(m.lifetime))
		err := m.store.UpdateExpiry(ctx, session.ID, expiresAt)
		if errors.Is(err, store.ErrNotFound) {
			// Revoked between the read and the renewal.
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("renew session: %w", err)
		}
		session.ExpiresAt = expiresAt
		result.Fresh = true
	}

	return result, nil
}

// Invalidate revokes a session. Revoking an unknown session succeeds.
func (m *Manager) Invalidate(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// RevokeUser deletes every session of userID and returns how many were removed.
func (m *Manager) RevokeUser(ctx context.Context, userID string) (int64, error) {
	n, err := m.store.DeleteForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("revoke sessions: %w", err)
	}
	return n, nil
}

// PurgeExpired deletes expired session rows and returns how many were removed.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpired(ctx, domain.Millis(m.now()))
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return n, nil
}

// Cookie returns the cookie carrying session's id. Its Max-Age matches the
// time left until the session expires.
func (m *Manager) Cookie(session *domain.Session) *http.Cookie {
	maxAge := int((session.ExpiresAt - domain.Millis(m.now())) / 1000)
	if maxAge <= 0 {
		maxAge = -1
	}
	c := m.baseCookie()
	c.Value = session.ID
	c.MaxAge = maxAge
	c.Expires = time.UnixMilli(session.ExpiresAt).UTC()
	return c
}

// BlankCookie returns a cookie that clears the session cookie in the browser.
func (m *Manager) BlankCookie() *http.Cookie {
	c := m.baseCookie()
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0).UTC()
	return c
}

// ReadCookie returns the session id carried by r, or "".
func ReadCookie(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (m *Manager) baseCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
