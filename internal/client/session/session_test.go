package session_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehedi609/dev-social/internal/client/alerts"
	"github.com/mehedi609/dev-social/internal/client/api"
	"github.com/mehedi609/dev-social/internal/client/session"
	"github.com/mehedi609/dev-social/internal/client/tokenstore"
	"github.com/mehedi609/dev-social/internal/config"
	"github.com/mehedi609/dev-social/internal/httpserver"
	"github.com/mehedi609/dev-social/internal/infrastructure/github"
	"github.com/mehedi609/dev-social/internal/infrastructure/memory"
	"github.com/mehedi609/dev-social/internal/infrastructure/token"
	authusecase "github.com/mehedi609/dev-social/internal/usecase/auth"
	postusecase "github.com/mehedi609/dev-social/internal/usecase/post"
	profileusecase "github.com/mehedi609/dev-social/internal/usecase/profile"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	tokens := token.NewJWTManager("session-test-secret", time.Hour, "dev-social")
	users := memory.NewUserRepository()
	posts := memory.NewPostRepository()
	profiles := memory.NewProfileRepository(users)

	authService := authusecase.NewService(users, tokens)
	postService := postusecase.NewService(posts, users)
	profileService := profileusecase.NewService(profiles, users, posts, github.NewClient("", ""))

	cfg := config.Config{HTTPPort: "0", AllowedOrigins: []string{"*"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httpserver.NewServer(cfg, tokens, authService, profileService, postService, logger)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func openStore(t *testing.T, path string) *tokenstore.Store {
	t.Helper()
	store, err := tokenstore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newManager(t *testing.T, serverURL, dbPath string) (*session.Manager, *alerts.Manager) {
	t.Helper()
	alertManager := alerts.NewManager()
	return session.NewManager(api.NewClient(serverURL), openStore(t, dbPath), alertManager), alertManager
}

func TestRegisterAuthenticatesAndPersists(t *testing.T) {
	ctx := context.Background()
	server := startServer(t)
	dbPath := filepath.Join(t.TempDir(), "session.db")

	sess, _ := newManager(t, server.URL, dbPath)
	require.NoError(t, sess.Register(ctx, "Jane", "jane@example.com", "secret1"))

	state := sess.State()
	assert.True(t, state.IsAuthenticated)
	assert.False(t, state.Loading)
	assert.NotEmpty(t, state.Token)
	require.NotNil(t, state.User)
	assert.Equal(t, "jane@example.com", state.User.Email)

	// A fresh manager over the same store resolves the persisted token,
	// the way a page reload would.
	reloaded, _ := newManager(t, server.URL, dbPath)
	require.NoError(t, reloaded.LoadUser(ctx))

	state = reloaded.State()
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "jane@example.com", state.User.Email)
}

func TestLoadUser_EmptySlot(t *testing.T) {
	ctx := context.Background()
	server := startServer(t)

	sess, _ := newManager(t, server.URL, filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, sess.LoadUser(ctx))

	state := sess.State()
	assert.False(t, state.IsAuthenticated)
	assert.False(t, state.Loading)
	assert.Nil(t, state.User)
}

func TestLoadUser_RejectedTokenClearsSlot(t *testing.T) {
	ctx := context.Background()
	server := startServer(t)
	dbPath := filepath.Join(t.TempDir(), "session.db")

	store := openStore(t, dbPath)
	require.NoError(t, store.Save(ctx, "not-a-real-token"))

	sess, _ := newManager(t, server.URL, dbPath)
	require.NoError(t, sess.LoadUser(ctx))

	state := sess.State()
	assert.False(t, state.IsAuthenticated)

	// The bad token is gone from the durable slot.
	remaining, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestLogin_WrongPasswordRaisesAlert(t *testing.T) {
	ctx := context.Background()
	server := startServer(t)
	dbPath := filepath.Join(t.TempDir(), "session.db")

	sess, alertManager := newManager(t, server.URL, dbPath)
	require.NoError(t, sess.Register(ctx, "Jane", "jane@example.com", "secret1"))
	require.NoError(t, sess.Logout(ctx))

	err := sess.Login(ctx, "jane@example.com", "wrong-password")
	require.Error(t, err)

	visible := alertManager.List()
	require.Len(t, visible, 1)
	assert.Equal(t, "Invalid credentials", visible[0].Msg)
	assert.Equal(t, alerts.TypeDanger, visible[0].Type)

	// The failure leaves the session and the durable slot untouched.
	assert.False(t, sess.State().IsAuthenticated)
	store := openStore(t, dbPath)
	stored, loadErr := store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Empty(t, stored)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	server := startServer(t)
	dbPath := filepath.Join(t.TempDir(), "session.db")

	sess, _ := newManager(t, server.URL, dbPath)
	require.NoError(t, sess.Register(ctx, "Jane", "jane@example.com", "secret1"))
	require.NoError(t, sess.Logout(ctx))

	state := sess.State()
	assert.False(t, state.IsAuthenticated)
	assert.Empty(t, state.Token)
	assert.Nil(t, state.User)

	store := openStore(t, dbPath)
	stored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
