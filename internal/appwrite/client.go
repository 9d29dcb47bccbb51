// Package appwrite is a thin REST client for the hosted identity and
// document-database services. It owns the wire format and translates
// backend error shapes into the sentinel taxonomy of internal/common at
// this boundary, so upper layers never inspect status codes or message
// strings.
package appwrite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

// Client talks to one Appwrite-compatible endpoint on behalf of one
// project. The zero value is not usable; construct with New.
//
// A Client carries at most one session secret at a time. Account calls
// made after SetSession authenticate as that session's user.
type Client struct {
	endpoint  string
	projectID string
	http      *http.Client
	session   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Useful for tests
// and for callers that need custom timeouts.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a Client for the given endpoint (e.g.
// "https://cloud.appwrite.io/v1") and project id.
func New(endpoint string, projectID string, opts ...Option) *Client {
	c := &Client{
		endpoint:  strings.TrimRight(endpoint, "/"),
		projectID: projectID,
		http:      &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetSession attaches a session secret to all subsequent requests.
func (c *Client) SetSession(secret string) { c.session = secret }

// ClearSession detaches the current session secret.
func (c *Client) ClearSession() { c.session = "" }

// HasSession reports whether a session secret is attached.
func (c *Client) HasSession() bool { return c.session != "" }

// do executes a single API request. body (if non-nil) is marshalled to
// JSON; out (if non-nil) receives the decoded response. Query parameters
// may be nil. Every error returned wraps one of the common sentinels.
func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.projectID)
	if c.session != "" {
		req.Header.Set("X-Appwrite-Session", c.session)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode >= 400 {
		return mapAPIError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
