package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mehedi609/dev-social/internal/config"
	"github.com/mehedi609/dev-social/internal/infrastructure/github"
	"github.com/mehedi609/dev-social/internal/infrastructure/memory"
	"github.com/mehedi609/dev-social/internal/infrastructure/token"
	authusecase "github.com/mehedi609/dev-social/internal/usecase/auth"
	postusecase "github.com/mehedi609/dev-social/internal/usecase/post"
	profileusecase "github.com/mehedi609/dev-social/internal/usecase/profile"
)

func newGateServer(t *testing.T) (*Server, *token.JWTManager) {
	t.Helper()

	tokens := token.NewJWTManager("gate-test-secret", time.Hour, "dev-social")
	users := memory.NewUserRepository()
	posts := memory.NewPostRepository()
	profiles := memory.NewProfileRepository(users)

	authService := authusecase.NewService(users, tokens)
	postService := postusecase.NewService(posts, users)
	profileService := profileusecase.NewService(profiles, users, posts, github.NewClient("", ""))

	cfg := config.Config{HTTPPort: "0", AllowedOrigins: []string{"*"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, tokens, authService, profileService, postService, logger), tokens
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	srv, _ := newGateServer(t)

	handlerCalled := false
	gate := srv.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	if handlerCalled {
		t.Error("handler should not run without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "No token, authorization denied") {
		t.Errorf("body = %q, want missing-token message", rec.Body.String())
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	srv, _ := newGateServer(t)

	handlerCalled := false
	gate := srv.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	for _, tok := range []string{"garbage", "a.b.c"} {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.Header.Set(TokenHeader, tok)
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		if handlerCalled {
			t.Errorf("handler should not run with token %q", tok)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
		if !strings.Contains(rec.Body.String(), "Token is not valid") {
			t.Errorf("body = %q, want coarse invalid-token message", rec.Body.String())
		}
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	srv, _ := newGateServer(t)

	expired := token.NewJWTManager("gate-test-secret", -time.Minute, "dev-social")
	tok, err := expired.Generate("user-1")
	if err != nil {
		t.Fatalf("generating expired token: %v", err)
	}

	gate := srv.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run with an expired token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set(TokenHeader, tok)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	// The response body stays coarse regardless of the failure kind.
	if !strings.Contains(rec.Body.String(), "Token is not valid") {
		t.Errorf("body = %q, want coarse invalid-token message", rec.Body.String())
	}
}

func TestAuthMiddleware_ValidTokenAttachesIdentity(t *testing.T) {
	srv, tokens := newGateServer(t)

	tok, err := tokens.Generate("user-42")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	var gotUserID string
	gate := srv.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromContext(r.Context())
		if !ok {
			t.Fatal("identity missing from context")
		}
		gotUserID = identity.UserID
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set(TokenHeader, tok)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUserID != "user-42" {
		t.Errorf("identity user id = %q, want %q", gotUserID, "user-42")
	}
}
