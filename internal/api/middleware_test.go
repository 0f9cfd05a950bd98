package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Amanchoudhary192002/Business-Management-System/internal/app"
)

func newMiddlewareAuth() *app.AuthService {
	return app.NewAuthService(nil, nil, "middleware-test-secret", time.Hour, bcrypt.MinCost)
}

func signTestToken(t *testing.T, auth *app.AuthService, accountID uuid.UUID) string {
	t.Helper()
	token, err := auth.IssueToken(accountID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func TestAuthMiddleware_MissingTokenIsRejected(t *testing.T) {
	auth := newMiddlewareAuth()
	handler := AuthMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_GarbageTokenIsRejected(t *testing.T) {
	auth := newMiddlewareAuth()
	handler := AuthMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set(TokenHeader, "not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ValidTokenInjectsAccountID(t *testing.T) {
	auth := newMiddlewareAuth()
	accountID := uuid.New()
	token := signTestToken(t, auth, accountID)

	var gotID uuid.UUID
	var gotOK bool
	handler := AuthMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = GetAccountID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set(TokenHeader, token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !gotOK {
		t.Fatal("expected account id in request context")
	}
	if gotID != accountID {
		t.Fatalf("expected account id %s, got %s", accountID, gotID)
	}
}

func TestGetAccountID_AbsentFromBareContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := GetAccountID(req.Context()); ok {
		t.Fatal("expected no account id on a bare context")
	}
}
