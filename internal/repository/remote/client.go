package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"parking_app/internal/repository"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxErrorBody = 512

// StatusError is returned for any non-2xx response other than 404.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the remote collection store. It has no retry, no backoff and
// sends no auth headers; every failure is reported to the caller once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func collectionPath(collection string) string {
	return "/" + collection
}

func documentPath(collection string, id string) string {
	return "/" + collection + "/" + url.PathEscape(id)
}

// Do sends one request and returns the raw response body.
func (c *Client) Do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("remote: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("remote: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("remote request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("remote: read %s %s: %w", method, path, err)
	}
	c.logger.Debug("remote request",
		zap.String("method", method), zap.String("path", path),
		zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("remote: %s %s: %w", method, path, repository.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := strings.TrimSpace(string(data))
		if len(excerpt) > maxErrorBody {
			excerpt = excerpt[:maxErrorBody]
		}
		statusErr := &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: excerpt}
		c.logger.Warn("remote request rejected", zap.Error(statusErr))
		return nil, statusErr
	}
	return data, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	data, err := c.Do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("remote: decode %s %s: %w", method, path, err)
	}
	return nil
}

// IsNotFound is a shorthand used by callers that treat 404 specially.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
