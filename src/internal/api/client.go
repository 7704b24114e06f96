// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/H0llyW00dzZ/veribits-cli/src/config"
	"github.com/H0llyW00dzZ/veribits-cli/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/veribits-cli/src/logger"
)

// Client talks to the VeriBits REST API.
//
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	hc        *http.Client
	log       logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the Bearer token. An empty key sends no Authorization header.
func WithAPIKey(key string) Option { return func(c *Client) { c.apiKey = key } }

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.hc.Timeout = d } }

// WithHTTPClient replaces the HTTP client, for instance with an httptest server's client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithLogger sets the logger that receives one line per request.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Client for baseURL (for example https://veribits.com/api/v1).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: UserAgent("dev"),
		hc:        &http.Client{Timeout: time.Duration(config.DefaultTimeoutSeconds) * time.Second},
		log:       logger.NewJSONLogger(nil, true),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a Client from the effective configuration.
//
// Parameters:
//   - cfg: Loaded configuration; API.URL, API.Key, API.TimeoutSeconds and API.UserAgent are used
//   - version: CLI version for the default User-Agent
//   - opts: Extra options applied after the configuration
//
// Returns:
//   - *Client: Configured client
func NewFromConfig(cfg *config.Config, version string, opts ...Option) *Client {
	base := []Option{
		WithAPIKey(cfg.API.Key),
		WithUserAgent(UserAgent(version)),
		WithUserAgent(cfg.API.UserAgent),
		WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second),
	}
	return New(cfg.API.URL, append(base, opts...)...)
}

// UserAgent returns the default User-Agent for version.
func UserAgent(version string) string {
	return fmt.Sprintf("VeriBits-CLI/%s (+https://github.com/H0llyW00dzZ/veribits-cli)", version)
}

// BaseURL returns the API base URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// getJSON issues a GET and decodes the envelope data into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// postJSON issues a POST with a JSON body and decodes the envelope data into out.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("api: encoding request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), "application/json", out)
}

// postFile uploads r as the multipart form field "file".
func (c *Client) postFile(ctx context.Context, path, filename string, r io.Reader, out any) error {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("api: creating multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("api: reading upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("api: creating multipart body: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, bytes.NewReader(buf.Bytes()), mw.FormDataContentType(), out)
}

// do sends one request and unwraps the response envelope into out.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.log.Printf("api: %s %s (request_id=%s)", method, path, requestID)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequest, method, c.baseURL+path, err)
	}
	defer resp.Body.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return fmt.Errorf("api: reading response: %w", err)
	}

	c.log.Printf("api: %s %s -> %d (request_id=%s)", method, path, resp.StatusCode, requestID)

	return decodeEnvelope(resp.StatusCode, requestID, buf.Bytes(), out)
}

// decodeEnvelope maps a response to out or to an [*Error].
func decodeEnvelope(status int, requestID string, body []byte, out any) error {
	var env envelope
	parseErr := json.Unmarshal(body, &env)

	if status >= http.StatusBadRequest {
		apiErr := &Error{StatusCode: status, Body: string(body), RequestID: requestID}
		if parseErr == nil && env.Error != nil {
			apiErr.Message = env.Error.Message
		}
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			apiErr.Err = ErrUnauthorized
		}
		return apiErr
	}

	if parseErr != nil {
		// Not an object, so not an envelope; a bare array may still fit out.
		if out != nil && json.Unmarshal(body, out) == nil {
			return nil
		}
		return fmt.Errorf("api: decoding response (request_id=%s): %w", requestID, parseErr)
	}

	if env.Success != nil && !*env.Success {
		apiErr := &Error{StatusCode: status, Body: string(body), RequestID: requestID, Message: "unknown error"}
		if env.Error != nil && env.Error.Message != "" {
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	data := []byte(env.Data)
	if env.Success == nil && env.Data == nil && env.Error == nil {
		// Not enveloped.
		data = body
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decoding data (request_id=%s): %w", requestID, err)
	}
	return nil
}
