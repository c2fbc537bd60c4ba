package session

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Durable storage keys. Both are written together on login and removed
// together on logout; their co-presence is the sole restoration signal.
const (
	userKey  = "user"
	tokenKey = "userToken"
)

// User is the operator identity held alongside the bearer token.
//
// The auth endpoint does not return a canonical user object, so the id
// and display name are fabricated locally at login time, matching the
// dashboard this tool replaces. Revisit if the registry ever exposes
// an identity endpoint.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Authenticator exchanges operator credentials for a bearer token.
// *client.Client satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// Store owns the current session: an identity plus a bearer token,
// both present or both absent. It persists them through a Backend so
// authentication survives a process restart.
type Store struct {
	backend Backend
	auth    Authenticator

	user   User
	token  string
	active bool
}

// NewStore constructs an empty Store. Call Restore once at startup to
// pick up a persisted session.
func NewStore(backend Backend, auth Authenticator) *Store {
	return &Store{backend: backend, auth: auth}
}

// Login authenticates against the registry. On success the session is
// held in memory and persisted; on any failure (rejected credentials,
// unexpected response shape, transport error) it returns false and
// leaves both memory and durable state untouched.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	token, err := s.auth.Authenticate(ctx, username, password)
	if err != nil {
		log.Debug().Err(err).Str("username", username).Msg("login failed")
		return false
	}

	user := User{ID: "user-id", Username: username, Name: "مدير النظام"}
	raw, err := json.Marshal(user)
	if err != nil {
		return false
	}
	if err := s.backend.Set(userKey, string(raw)); err != nil {
		log.Debug().Err(err).Msg("persisting session identity failed")
		return false
	}
	if err := s.backend.Set(tokenKey, token); err != nil {
		// Keep the pair invariant: never leave one key behind.
		_ = s.backend.Delete(userKey)
		log.Debug().Err(err).Msg("persisting session token failed")
		return false
	}

	s.user = user
	s.token = token
	s.active = true
	return true
}

// Logout clears the in-memory session and removes both durable keys.
// Calling it with no active session is a no-op.
func (s *Store) Logout() {
	if err := s.backend.Delete(userKey); err != nil {
		log.Debug().Err(err).Msg("removing session identity failed")
	}
	if err := s.backend.Delete(tokenKey); err != nil {
		log.Debug().Err(err).Msg("removing session token failed")
	}
	s.user = User{}
	s.token = ""
	s.active = false
}

// Restore reconstitutes a persisted session. The session is restored
// iff both keys are present and the identity decodes; otherwise the
// store stays empty. It reports whether a session was restored.
func (s *Store) Restore() bool {
	rawUser, okUser, err := s.backend.Get(userKey)
	if err != nil || !okUser {
		return false
	}
	token, okToken, err := s.backend.Get(tokenKey)
	if err != nil || !okToken {
		return false
	}
	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return false
	}
	s.user = user
	s.token = token
	s.active = true
	return true
}

// IsAuthenticated reports whether a session is currently held.
func (s *Store) IsAuthenticated() bool { return s.active }

// User returns the current identity, if any.
func (s *Store) User() (User, bool) {
	return s.user, s.active
}

// Token returns the current bearer token, if any.
func (s *Store) Token() (string, bool) {
	return s.token, s.active
}
