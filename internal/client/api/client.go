// Package api is the HTTP client for the dev-social server. Once a token is
// set it rides along on every request in the x-auth-token header.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
)

// TokenHeader is the header carrying the session token.
const TokenHeader = "x-auth-token"

// Error is a non-validation failure response from the server.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Msg)
}

// Client talks to the dev-social API.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient constructs a client against the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches the token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the default token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Register creates an account and returns the freshly minted token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// CurrentUser resolves the configured token to the caller's user record.
func (c *Client) CurrentUser(ctx context.Context) (*authdomain.User, error) {
	var user authdomain.User
	if err := c.do(ctx, http.MethodGet, "/api/auth", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeFailure(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeFailure turns the server's two failure shapes into typed errors:
// a validation-error list, or a single message.
func decodeFailure(resp *http.Response) error {
	var failure struct {
		Msg    string                      `json:"msg"`
		Errors authdomain.ValidationErrors `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil {
		return &Error{Status: resp.StatusCode, Msg: resp.Status}
	}
	if len(failure.Errors) > 0 {
		return failure.Errors
	}
	return &Error{Status: resp.StatusCode, Msg: failure.Msg}
}
