package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopfront/internal/models"
)

// Every backend response uses the same envelope; list endpoints add the
// pagination block.
type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Error is a backend-reported failure: the request reached the API but
// the envelope said no. Transport failures are returned as plain wrapped
// errors instead.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api request failed with status %d", e.Status)
}

// Client talks to the remote storefront backend. It is safe for
// concurrent use; the bearer token is supplied per call because tokens
// belong to storefront sessions, not to the process.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a gateway client for the given base URL, e.g.
// "http://localhost:3001/api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// do issues one request and decodes the envelope. Network and decode
// failures are wrapped; envelope failures become *Error carrying the
// backend's message. Errors never cross this boundary as panics.
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) (*envelope, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}
	return &env, nil
}

func (c *Client) get(ctx context.Context, path, token string, out interface{}) (*envelope, error) {
	env, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return env, nil
}

func (c *Client) post(ctx context.Context, path, token string, body, out interface{}) error {
	env, err := c.do(ctx, http.MethodPost, path, token, body)
	if err != nil {
		return err
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
