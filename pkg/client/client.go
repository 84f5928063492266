// Package client is a Go consumer of the countries API. It mirrors the data
// layer of the browser front-end: credential exchange, a locally cached
// favorites set for the signed-in user, and country browsing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// APIError is a non-2xx answer from the API, carrying the server's
// human-readable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// envelope is the server's response wrapper; Data holds the payload.
type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the countries API. The session token and the favorites
// cache are process-local state; the server remains the system of record
// for favorites.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *logrus.Logger

	mu        sync.RWMutex
	token     string
	favorites map[string]struct{}
}

func New(baseURL string, logger *logrus.Logger) *Client {
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		Logger:    logger,
		favorites: map[string]struct{}{},
	}
}

type tokenPayload struct {
	Token string `json:"token"`
}

// Register creates an account and signs the client in. The favorites cache
// is refreshed once on the transition to signed-in.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/auth/register", email, password)
}

// Login signs the client in and refreshes the favorites cache once.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, path, body, false)
	if err != nil {
		return err
	}
	var tp tokenPayload
	if err := json.Unmarshal(env.Data, &tp); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}

	c.mu.Lock()
	c.token = tp.Token
	c.mu.Unlock()

	c.refreshFavorites(ctx)
	return nil
}

// Logout discards the local token and clears the favorites cache. The
// token itself stays valid server-side until its natural expiry.
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.favorites = map[string]struct{}{}
}

// IsAuthenticated reports whether a session token is held.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// do runs one request and unwraps the response envelope. Non-2xx statuses
// come back as *APIError with the server's message.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, auth bool) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		c.mu.RLock()
		token := c.token
		c.mu.RUnlock()
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &APIError{Status: res.StatusCode, Message: env.Message}
	}
	return &env, nil
}
