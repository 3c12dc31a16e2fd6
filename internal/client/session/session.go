// Package session keeps the client-side authentication view consistent with
// server truth: it bootstraps a stored token on startup and drives the
// login/register/logout transitions.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mehedi609/dev-social/internal/client/alerts"
	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
)

// Alert display durations mirror the web client: registration failures
// linger a little shorter than login failures.
const (
	registerAlertTTL = 2 * time.Second
	loginAlertTTL    = 3 * time.Second
)

// API is the server surface the session needs.
type API interface {
	SetToken(token string)
	ClearToken()
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context) (*authdomain.User, error)
}

// TokenStore is the durable token slot.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// State is the client-side authentication view.
type State struct {
	Token           string
	IsAuthenticated bool
	Loading         bool
	User            *authdomain.User
}

// Manager owns the session state. Concurrent resolutions are serialized;
// last write wins.
type Manager struct {
	api    API
	store  TokenStore
	alerts *alerts.Manager

	mu    sync.Mutex
	state State
}

// NewManager constructs a session manager in the initial loading state.
func NewManager(api API, store TokenStore, alertManager *alerts.Manager) *Manager {
	return &Manager{
		api:    api,
		store:  store,
		alerts: alertManager,
		state:  State{Loading: true},
	}
}

// State returns a snapshot of the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LoadUser makes a previously stored token usable again: it configures the
// API client with the stored token and resolves it to a user profile. Any
// resolution failure is a definite transition to the unauthenticated state,
// clearing the durable slot; it is not surfaced as an alert.
func (m *Manager) LoadUser(ctx context.Context) error {
	token, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		m.setUnauthenticated()
		return nil
	}

	m.api.SetToken(token)
	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			return clearErr
		}
		m.api.ClearToken()
		m.setUnauthenticated()
		return nil
	}

	m.mu.Lock()
	m.state = State{
		Token:           token,
		IsAuthenticated: true,
		Loading:         false,
		User:            user,
	}
	m.mu.Unlock()
	return nil
}

// Register creates an account, stores the issued token, then resolves it via
// the same path a reload uses. Validation failures become transient alerts
// and leave the durable slot untouched.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	token, err := m.api.Register(ctx, name, email, password)
	if err != nil {
		m.alertFailures(err, registerAlertTTL)
		return err
	}
	return m.adoptToken(ctx, token)
}

// Login exchanges credentials for a token, stores it, and resolves it.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.alertFailures(err, loginAlertTTL)
		return err
	}
	return m.adoptToken(ctx, token)
}

// Logout clears the durable slot and resets the session.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.api.ClearToken()
	m.setUnauthenticated()
	return nil
}

func (m *Manager) adoptToken(ctx context.Context, token string) error {
	if err := m.store.Save(ctx, token); err != nil {
		return err
	}

	m.mu.Lock()
	m.state.Token = token
	m.state.IsAuthenticated = true
	m.state.Loading = true
	m.mu.Unlock()

	return m.LoadUser(ctx)
}

func (m *Manager) alertFailures(err error, ttl time.Duration) {
	var verrs authdomain.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fieldErr := range verrs {
		m.alerts.Add(fieldErr.Message, alerts.TypeDanger, ttl)
	}
}

func (m *Manager) setUnauthenticated() {
	m.mu.Lock()
	m.state = State{Loading: false}
	m.mu.Unlock()
}
