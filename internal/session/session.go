// Package session binds a logged-in user to a browser through a signed
// cookie that carries an opaque token, backed by a server-side session record.
package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// ErrNotFound is returned by a Store when a token has no live session.
var ErrNotFound = errors.New("session not found")

// DefaultCookieName is used when Config.CookieName is empty.
const DefaultCookieName = "studyspot_session"

// Store persists token → user ID mappings with an expiry.
type Store interface {
	SaveSession(ctx context.Context, token, userID string, ttl time.Duration) error
	// LoadSession returns ErrNotFound for unknown or expired tokens.
	LoadSession(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
}

// Config configures a Manager.
type Config struct {
	// Secret signs the cookie. Required.
	Secret     string
	TTL        time.Duration
	Secure     bool
	CookieName string
}

// Manager issues, resolves and destroys login sessions.
type Manager struct {
	store  Store
	codec  *securecookie.SecureCookie
	name   string
	ttl    time.Duration
	secure bool
}

// NewManager creates a Manager over store.
func NewManager(store Store, cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}

	hashKey := sha256.Sum256([]byte(cfg.Secret))
	codec := securecookie.New(hashKey[:], nil)
	codec.MaxAge(int(cfg.TTL.Seconds()))

	return &Manager{
		store:  store,
		codec:  codec,
		name:   cfg.CookieName,
		ttl:    cfg.TTL,
		secure: cfg.Secure,
	}, nil
}

// Begin starts a session for userID and sets the cookie.
// Any session already attached to r is destroyed first.
func (m *Manager) Begin(ctx context.Context, w http.ResponseWriter, r *http.Request, userID string) error {
	if old, ok := m.token(r); ok {
		_ = m.store.DeleteSession(ctx, old)
	}

	token, err := newToken()
	if err != nil {
		return err
	}

	if err := m.store.SaveSession(ctx, token, userID, m.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	encoded, err := m.codec.Encode(m.name, token)
	if err != nil {
		return fmt.Errorf("failed to encode session cookie: %w", err)
	}

	http.SetCookie(w, m.cookie(encoded, int(m.ttl.Seconds())))
	return nil
}

// UserID resolves the user bound to r's session.
// A missing, tampered or expired cookie yields "" and a nil error.
func (m *Manager) UserID(r *http.Request) (string, error) {
	token, ok := m.token(r)
	if !ok {
		return "", nil
	}

	userID, err := m.store.LoadSession(r.Context(), token)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return userID, nil
}

// End destroys r's session, if any, and expires the cookie.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, m.cookie("", -1))

	token, ok := m.token(r)
	if !ok {
		return nil
	}
	if err := m.store.DeleteSession(r.Context(), token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (m *Manager) token(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.name)
	if err != nil || c.Value == "" {
		return "", false
	}

	var token string
	if err := m.codec.Decode(m.name, c.Value, &token); err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// newToken generates a cryptographically secure session token.
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
