// Package remote speaks the upstream registry's HTTP contract and translates
// it into the normalized internal shapes. Every read degrades transparently
// to the local seed store; the adapter is what makes remote and local origins
// indistinguishable to the UI.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ayushdesk/pkg/platform/sentinel"
)

const (
	statsEndpoint    = "/api/v1/admin/get-user-stats"
	usersEndpoint    = "/api/v1/admin/get-all-users"
	userEndpoint     = "/api/v1/admin/get-user/"
	deleteEndpoint   = "/api/v1/admin/users/"
	loginEndpoint    = "/api/v1/admin/admin-login"
	logoutEndpoint   = "/api/v1/admin/admin-logout"
	registerEndpoint = "/api/v1/admin/admin-register"
)

// Envelope is the upstream wire contract: {success, message?, data}.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// StatusError is an upstream HTTP error response (the call reached the
// service but was refused).
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream returned %d", e.Status)
}

//go:generate mockgen -source=client.go -destination=mocks/upstream-mocks.go -package=mocks Upstream

// Upstream is the remote registry surface the adapter and auth service
// depend on. Implemented by Client; mocked in tests.
type Upstream interface {
	GetUserStats(ctx context.Context) (UserStats, error)
	GetAllUsers(ctx context.Context) ([]RemoteUser, error)
	GetUser(ctx context.Context, id string) (Detail, error)
	DeleteUser(ctx context.Context, id string) error
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, payload map[string]string) (json.RawMessage, string, error)
}

// Client calls the upstream registry. Transport failures come back wrapped
// around sentinel.ErrUnavailable so callers can distinguish "unreachable"
// from "refused".
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL (trailing slash
// stripped). httpClient may be nil for a default with a sane timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) do(ctx context.Context, method, path string, body any) (Envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return Envelope{}, &StatusError{Status: resp.StatusCode}
		}
		return Envelope{}, fmt.Errorf("%w: decode response: %v", sentinel.ErrUnavailable, err)
	}
	if resp.StatusCode >= 400 {
		return Envelope{}, &StatusError{Status: resp.StatusCode, Message: env.Message}
	}
	return env, nil
}

// GetUserStats fetches the dashboard aggregate. A missing data payload is an
// error so the caller falls back to local computation.
func (c *Client) GetUserStats(ctx context.Context) (UserStats, error) {
	env, err := c.do(ctx, http.MethodGet, statsEndpoint, nil)
	if err != nil {
		return UserStats{}, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return UserStats{}, fmt.Errorf("user stats response missing data")
	}
	var stats UserStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return UserStats{}, fmt.Errorf("decode user stats: %w", err)
	}
	return stats, nil
}

// GetAllUsers fetches the raw user list. A payload that is not an array is
// treated as an empty list, not a failure.
func (c *Client) GetAllUsers(ctx context.Context) ([]RemoteUser, error) {
	env, err := c.do(ctx, http.MethodGet, usersEndpoint, nil)
	if err != nil {
		return nil, err
	}
	var items []RemoteUser
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return []RemoteUser{}, nil
	}
	return items, nil
}

// GetUser fetches one user's profile payload.
func (c *Client) GetUser(ctx context.Context, id string) (Detail, error) {
	env, err := c.do(ctx, http.MethodGet, userEndpoint+id, nil)
	if err != nil {
		return Detail{}, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return Detail{}, fmt.Errorf("user detail response missing data")
	}
	var detail Detail
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		return Detail{}, fmt.Errorf("decode user detail: %w", err)
	}
	return detail, nil
}

// DeleteUser removes a user upstream.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, deleteEndpoint+id, nil)
	return err
}

// Login authenticates an operator upstream.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	env, err := c.do(ctx, http.MethodPost, loginEndpoint, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return LoginResult{}, err
	}
	if !env.Success {
		return LoginResult{}, &StatusError{Status: http.StatusUnauthorized, Message: env.Message}
	}
	result := parseLoginPayload(env.Data)
	result.Message = env.Message
	if result.Message == "" {
		result.Message = "Login successful"
	}
	return result, nil
}

// Logout ends the upstream session. A 401 means the session is already gone
// and counts as success.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, logoutEndpoint, nil)
	if se, ok := err.(*StatusError); ok && se.Status == http.StatusUnauthorized {
		return nil
	}
	return err
}

// Register creates an operator account upstream.
func (c *Client) Register(ctx context.Context, payload map[string]string) (json.RawMessage, string, error) {
	env, err := c.do(ctx, http.MethodPost, registerEndpoint, payload)
	if err != nil {
		return nil, "", err
	}
	if !env.Success {
		return nil, "", &StatusError{Status: http.StatusBadRequest, Message: env.Message}
	}
	message := env.Message
	if message == "" {
		message = "Registration successful"
	}
	return env.Data, message, nil
}
