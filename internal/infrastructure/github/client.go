// Package github fetches public repository listings from the GitHub API for
// the profile "github repos" view.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrProfileNotFound is returned when GitHub has no such user or the
// listing request fails with a non-200 status.
var ErrProfileNotFound = errors.New("no github profile found")

// Repo is the subset of repository fields the profile view renders.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// Client calls the GitHub REST API. Credentials are optional; without them
// requests are anonymous and subject to lower rate limits.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
}

// NewClient constructs a Client with the given application credentials.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      "https://api.github.com",
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// NewClientWithBaseURL is NewClient pointed at an alternate endpoint,
// used by tests.
func NewClientWithBaseURL(baseURL, clientID, clientSecret string) *Client {
	c := NewClient(clientID, clientSecret)
	c.baseURL = baseURL
	return c
}

// Repos returns the five most recently created public repositories for the
// given username.
func (c *Client) Repos(ctx context.Context, username string) ([]Repo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if c.clientID != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "dev-social")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrProfileNotFound
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decoding github response: %w", err)
	}
	return repos, nil
}
