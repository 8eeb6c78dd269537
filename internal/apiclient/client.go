package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/vitality/web/internal/types"
)

// Credentials is the caller identity a request is made for. Invalidate is
// called when the backend rejects the token.
type Credentials interface {
	Token() string
	Invalidate(ctx context.Context) error
}

// Anonymous is used for calls made without a session
var Anonymous Credentials = anonymous{}

type anonymous struct{}

func (anonymous) Token() string                        { return "" }
func (anonymous) Invalidate(ctx context.Context) error { return nil }

// Client calls the fitness backend REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for failed calls
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the API rooted at baseURL, e.g. https://host/api
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the response into out
func (c *Client) Get(ctx context.Context, creds Credentials, path string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.Do(ctx, creds, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body
func (c *Client) Post(ctx context.Context, creds Credentials, path string, body, out interface{}) error {
	return c.Do(ctx, creds, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body
func (c *Client) Put(ctx context.Context, creds Credentials, path string, body, out interface{}) error {
	return c.Do(ctx, creds, http.MethodPut, path, body, out)
}

// Patch issues a PATCH with a JSON body
func (c *Client) Patch(ctx context.Context, creds Credentials, path string, body, out interface{}) error {
	return c.Do(ctx, creds, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE
func (c *Client) Delete(ctx context.Context, creds Credentials, path string) error {
	return c.Do(ctx, creds, http.MethodDelete, path, nil, nil)
}

// Do sends a request to the backend. A non-nil body is JSON encoded and a
// non-nil out receives the decoded response. Any 401 invalidates creds
// before the error is returned.
func (c *Client) Do(ctx context.Context, creds Credentials, method, path string, body, out interface{}) error {
	if creds == nil {
		creds = Anonymous
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+ensureLeadingSlash(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{"method": method, "path": path}).WithError(err).Warn("backend request failed")
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, Method: method, Path: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{
			Kind:    kindFor(resp.StatusCode),
			Status:  resp.StatusCode,
			Method:  method,
			Path:    path,
			Message: serverMessage(respBody),
		}
		if apiErr.Kind == KindUnauthorized {
			if invErr := creds.Invalidate(ctx); invErr != nil {
				c.logger.WithError(invErr).Error("failed to invalidate session after 401")
			}
		}
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Debug("backend returned error status")
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Method: method, Path: path, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func serverMessage(body []byte) string {
	var payload types.ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Text()
}

func ensureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
