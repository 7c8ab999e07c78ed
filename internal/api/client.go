package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the Timeless Planner REST API. All state-changing calls
// attach the bearer token from TokenSource when one is available; the token
// is never validated locally, the server's rejection is surfaced instead.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// TokenSource returns the current access token, or "" when signed out.
	// Supplied by the session store; the client never refreshes or issues tokens.
	TokenSource func() string
}

func New(baseURL string, tokens func() string) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
		TokenSource: tokens,
	}
}

// serverMessage is the error/message envelope the API uses on non-2xx responses.
type serverMessage struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.TokenSource != nil {
		if tok := strings.TrimSpace(c.TokenSource()); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(resp, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ServerError{StatusCode: resp.StatusCode, Message: "malformed response body"}
	}
	return nil
}

func classifyStatus(resp *http.Response, path string) error {
	msg := ""
	var sm serverMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&sm); err == nil {
		msg = strings.TrimSpace(sm.Message)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return NotFoundError{Resource: path}
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return ValidationError{Message: msg}
	default:
		return ServerError{StatusCode: resp.StatusCode, Message: msg}
	}
}
