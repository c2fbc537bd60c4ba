package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Authenticate(ctx context.Context, username, password string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

// failingBackend wraps a MemBackend and fails Set for one key, to
// exercise the paired-write rollback.
type failingBackend struct {
	*MemBackend
	failKey string
}

func (b *failingBackend) Set(key, value string) error {
	if key == b.failKey {
		return errors.New("disk full")
	}
	return b.MemBackend.Set(key, value)
}

func pairState(t *testing.T, b Backend) (bool, bool) {
	t.Helper()
	_, hasUser, err := b.Get(userKey)
	if err != nil {
		t.Fatalf("get %s: %v", userKey, err)
	}
	_, hasToken, err := b.Get(tokenKey)
	if err != nil {
		t.Fatalf("get %s: %v", tokenKey, err)
	}
	return hasUser, hasToken
}

func TestLogin_Success(t *testing.T) {
	b := NewMemBackend()
	s := NewStore(b, &fakeAuth{token: "tok-123"})

	if !s.Login(context.Background(), "admin", "secret") {
		t.Fatal("login should succeed")
	}
	if !s.IsAuthenticated() {
		t.Fatal("store should be authenticated")
	}

	user, ok := s.User()
	if !ok {
		t.Fatal("user should be present")
	}
	if user.ID != "user-id" || user.Username != "admin" || user.Name != "مدير النظام" {
		t.Fatalf("unexpected identity %+v", user)
	}
	token, ok := s.Token()
	if !ok || token != "tok-123" {
		t.Fatalf("unexpected token %q", token)
	}

	rawUser, _, _ := b.Get(userKey)
	var stored User
	if err := json.Unmarshal([]byte(rawUser), &stored); err != nil {
		t.Fatalf("stored identity not JSON: %v", err)
	}
	if stored != user {
		t.Fatalf("stored identity %+v differs from in-memory %+v", stored, user)
	}
	rawToken, _, _ := b.Get(tokenKey)
	if rawToken != "tok-123" {
		t.Fatalf("stored token %q", rawToken)
	}
}

func TestLogin_RejectedCredentials(t *testing.T) {
	b := NewMemBackend()
	s := NewStore(b, &fakeAuth{err: errors.New("invalid credentials")})

	if s.Login(context.Background(), "admin", "wrong") {
		t.Fatal("login should fail")
	}
	if s.IsAuthenticated() {
		t.Fatal("store must stay unauthenticated")
	}
	if hasUser, hasToken := pairState(t, b); hasUser || hasToken {
		t.Fatal("no storage writes may occur on a failed login")
	}
}

func TestLogin_PersistFailureKeepsPair(t *testing.T) {
	b := &failingBackend{MemBackend: NewMemBackend(), failKey: tokenKey}
	s := NewStore(b, &fakeAuth{token: "tok-123"})

	if s.Login(context.Background(), "admin", "secret") {
		t.Fatal("login should fail when the token cannot be persisted")
	}
	if hasUser, hasToken := pairState(t, b); hasUser || hasToken {
		t.Fatal("identity must be rolled back when token persistence fails")
	}
}

func TestPairedInvariantAcrossSequence(t *testing.T) {
	b := NewMemBackend()
	good := &fakeAuth{token: "tok-123"}
	s := NewStore(b, good)

	steps := []func(){
		func() { s.Logout() },
		func() { s.Login(context.Background(), "admin", "secret") },
		func() { s.Login(context.Background(), "admin", "secret") },
		func() { s.Logout() },
		func() { s.Logout() },
		func() { s.Login(context.Background(), "admin", "secret") },
	}
	for i, step := range steps {
		step()
		hasUser, hasToken := pairState(t, b)
		if hasUser != hasToken {
			t.Fatalf("step %d: storage pair broken (user=%v token=%v)", i, hasUser, hasToken)
		}
	}
}

func TestLogout_Idempotent(t *testing.T) {
	b := NewMemBackend()
	s := NewStore(b, &fakeAuth{token: "tok-123"})

	s.Logout() // no active session: no-op
	if s.IsAuthenticated() {
		t.Fatal("logout must leave the store unauthenticated")
	}

	if !s.Login(context.Background(), "admin", "secret") {
		t.Fatal("login should succeed")
	}
	s.Logout()
	s.Logout()
	if s.IsAuthenticated() {
		t.Fatal("store must be unauthenticated after logout")
	}
	if _, ok := s.Token(); ok {
		t.Fatal("token must be cleared")
	}
	if hasUser, hasToken := pairState(t, b); hasUser || hasToken {
		t.Fatal("both keys must be removed on logout")
	}
}

func TestRestore(t *testing.T) {
	seed := func(user, token bool) Backend {
		b := NewMemBackend()
		if user {
			_ = b.Set(userKey, `{"id":"user-id","username":"admin","name":"مدير النظام"}`)
		}
		if token {
			_ = b.Set(tokenKey, "tok-123")
		}
		return b
	}

	t.Run("both keys", func(t *testing.T) {
		s := NewStore(seed(true, true), nil)
		if !s.Restore() {
			t.Fatal("restore should succeed with both keys present")
		}
		user, ok := s.User()
		if !ok || user.Username != "admin" || user.Name != "مدير النظام" {
			t.Fatalf("unexpected restored identity %+v", user)
		}
		if token, ok := s.Token(); !ok || token != "tok-123" {
			t.Fatalf("unexpected restored token %q", token)
		}
	})

	t.Run("only user", func(t *testing.T) {
		s := NewStore(seed(true, false), nil)
		if s.Restore() || s.IsAuthenticated() {
			t.Fatal("restore must fail with a single key")
		}
	})

	t.Run("only token", func(t *testing.T) {
		s := NewStore(seed(false, true), nil)
		if s.Restore() || s.IsAuthenticated() {
			t.Fatal("restore must fail with a single key")
		}
	})

	t.Run("neither", func(t *testing.T) {
		s := NewStore(seed(false, false), nil)
		if s.Restore() || s.IsAuthenticated() {
			t.Fatal("restore must fail with no keys")
		}
	})

	t.Run("corrupt identity", func(t *testing.T) {
		b := seed(false, true)
		_ = b.Set(userKey, "{not json")
		s := NewStore(b, nil)
		if s.Restore() || s.IsAuthenticated() {
			t.Fatal("restore must fail on undecodable identity")
		}
	})
}

func TestDirBackend(t *testing.T) {
	b, err := NewDirBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirBackend: %v", err)
	}

	if _, ok, _ := b.Get("user"); ok {
		t.Fatal("key should be absent initially")
	}
	if err := b.Set("user", `{"id":"user-id"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := b.Get("user")
	if err != nil || !ok || v != `{"id":"user-id"}` {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}
	if err := b.Delete("user"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := b.Delete("user"); err != nil {
		t.Fatalf("Delete of absent key must be a no-op: %v", err)
	}
	if _, ok, _ := b.Get("user"); ok {
		t.Fatal("key should be gone")
	}
}
