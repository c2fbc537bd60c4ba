package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthenticate_Success(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id header")
		}
		_, _ = w.Write([]byte(`{"success":true,"results":{"token":"tok-123"}}`))
	}))
	defer hs.Close()

	c := New(hs.URL)
	token, err := c.Authenticate(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthenticate_Rejected(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer hs.Close()

	c := New(hs.URL)
	_, err := c.Authenticate(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticate_UnexpectedShape(t *testing.T) {
	cases := map[string]string{
		"missing results": `{"success":true}`,
		"empty token":     `{"success":true,"results":{"token":""}}`,
		"not json":        `<html>internal error</html>`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer hs.Close()

			c := New(hs.URL)
			_, err := c.Authenticate(context.Background(), "admin", "secret")
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthenticate_TransportFailure(t *testing.T) {
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	hs.Close() // connection refused from here on

	c := New(hs.URL)
	_, err := c.Authenticate(context.Background(), "admin", "secret")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("transport failure must not masquerade as rejected credentials")
	}
}
