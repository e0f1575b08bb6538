package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public storefront platform API.
const DefaultBaseURL = "https://api.escuelajs.co/api/v1"

// Client is a thin HTTP wrapper around the storefront platform API:
// credential exchange, profile lookup and catalog CRUD. It holds no
// session state; callers pass the bearer token per request.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

// New creates a platform client. An empty base falls back to
// DefaultBaseURL.
func New(base string, timeout time.Duration, log *zap.Logger) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// do sends a request and decodes the JSON reply into out (out may be
// nil). Non-2xx replies come back as *APIError carrying the platform's
// message when it sends one.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling platform api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.apiError(resp)
		c.log.Debug("platform api rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding platform reply: %w", err)
	}
	return nil
}

// apiError extracts the platform's message from an error body. The API
// answers with {"message": ...} where message is a string or an array
// of validation strings, or occasionally {"error": ...}.
func (c *Client) apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Message interface{} `json:"message"`
		Error   string      `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(raw, &payload); err == nil {
		switch m := payload.Message.(type) {
		case string:
			msg = m
		case []interface{}:
			parts := make([]string, 0, len(m))
			for _, p := range m {
				if s, ok := p.(string); ok {
					parts = append(parts, s)
				}
			}
			msg = strings.Join(parts, "; ")
		}
		if msg == "" {
			msg = payload.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
