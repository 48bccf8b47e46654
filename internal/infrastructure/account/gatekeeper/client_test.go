package gatekeeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/crickhq/fantasy-cricket/internal/platform/resilience"
	"github.com/crickhq/fantasy-cricket/internal/usecase"
)

func TestVerifyAccessToken_ActiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req struct {
			Token string `json:"token"`
		}
		if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode introspect request: %v", err)
		}
		if req.Token != "valid-token" {
			t.Errorf("unexpected token %q", req.Token)
		}
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-1",
			"email":   "user@example.com",
			"role":    "admin",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/introspect", resilience.CircuitBreakerConfig{}, nil)

	principal, err := client.VerifyAccessToken(context.Background(), "valid-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if principal.UserID != "user-1" {
		t.Fatalf("unexpected user id %q", principal.UserID)
	}
	if !principal.IsAdmin() {
		t.Fatalf("expected admin principal")
	}
}

func TestVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/introspect", resilience.CircuitBreakerConfig{}, nil)

	_, err := client.VerifyAccessToken(context.Background(), "revoked")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, "http://localhost:0", "/introspect", resilience.CircuitBreakerConfig{}, nil)

	_, err := client.VerifyAccessToken(context.Background(), "   ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAccessToken_BreakerOpensOnDependencyFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/introspect", resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      0,
		HalfOpenMaxReq:   1,
	}, nil)

	for i := 0; i < 2; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "any"); err == nil {
			t.Fatalf("expected failure on attempt %d", i+1)
		}
	}

	_, err := client.VerifyAccessToken(context.Background(), "any")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once circuit opened, got %v", err)
	}
}
