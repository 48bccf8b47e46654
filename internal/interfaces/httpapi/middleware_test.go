package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crickhq/fantasy-cricket/internal/domain/user"
	"github.com/crickhq/fantasy-cricket/internal/usecase"
)

type stubVerifier struct {
	principal user.Principal
	err       error
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	return v.principal, v.err
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	handler := RequireAuth(stubVerifier{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/teams/me", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuth_PrincipalInContext(t *testing.T) {
	t.Parallel()

	verifier := stubVerifier{principal: user.Principal{UserID: "user-7", Role: user.RoleAdmin}}

	var seen user.Principal
	handler := RequireAuth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/me", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("status = %d", recorder.Code)
	}
	if seen.UserID != "user-7" {
		t.Fatalf("principal user id = %q", seen.UserID)
	}
}

func TestRequireAuth_VerifierRejects(t *testing.T) {
	t.Parallel()

	verifier := stubVerifier{err: fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)}
	handler := RequireAuth(verifier)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run for a rejected token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/me", nil)
	req.Header.Set("Authorization", "Bearer revoked")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("admin passes", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/players/scores", nil)
		req = req.WithContext(withPrincipal(req.Context(), user.Principal{UserID: "u1", Role: user.RoleAdmin}))
		recorder := httptest.NewRecorder()
		RequireAdmin()(next).ServeHTTP(recorder, req)

		if recorder.Code != http.StatusNoContent {
			t.Fatalf("status = %d", recorder.Code)
		}
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/players/scores", nil)
		req = req.WithContext(withPrincipal(req.Context(), user.Principal{UserID: "u1", Role: "member"}))
		recorder := httptest.NewRecorder()
		RequireAdmin()(next).ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", recorder.Code)
		}
	})

	t.Run("missing principal rejected", func(t *testing.T) {
		t.Parallel()

		recorder := httptest.NewRecorder()
		RequireAdmin()(next).ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/admin/players/scores", nil))

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", recorder.Code)
		}
	})
}

func TestCORS(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://app.crickhq.example"})(next)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "/v1/teams", nil)
		req.Header.Set("Origin", "https://app.crickhq.example")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusNoContent {
			t.Fatalf("status = %d", recorder.Code)
		}
		if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "https://app.crickhq.example" {
			t.Fatalf("allow origin = %q", got)
		}
	})

	t.Run("disallowed origin gets no headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
		req.Header.Set("Origin", "https://evil.example")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Fatalf("allow origin = %q, want empty", got)
		}
	})
}
