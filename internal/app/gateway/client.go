// Package gateway is the typed HTTP client for the storefront backend REST
// API. Every call takes a context, stamps a request ID, and translates
// transport failures and error bodies into the internal error taxonomy.
package gateway

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

	"github.com/google/uuid"

	apperrors "github.com/mkim/storefront-client/internal/errors"
	"github.com/mkim/storefront-client/pkg/logger"
)

// Config represents the configuration for the backend API client
type Config struct {
	// BaseURL is the API base URL, e.g. http://127.0.0.1:5000/api
	BaseURL string

	// Timeout bounds each request end to end
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return apperrors.Validation(apperrors.ValidationRequired, "gateway: base URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return apperrors.Validation(apperrors.ValidationInvalidInput, "gateway: invalid base URL")
	}
	return nil
}

// Client is the backend API client shared by all services.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new API client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// apiError is the backend's JSON error body.
type apiError struct {
	Error string `json:"error"`
}

// do performs one request and returns the raw body and status code. The
// returned error covers request construction and transport only; callers
// interpret the status.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("gateway: marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := strings.TrimSuffix(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("gateway: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	logger.Debug("Calling backend API", map[string]interface{}{
		"method": method,
		"path":   path,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, apperrors.Network(apperrors.NetworkUnavailable, "backend unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, apperrors.Network(apperrors.NetworkBadPayload, "read response body", err)
	}

	return body, resp.StatusCode, nil
}

// doJSON performs a request with the default status mapping: 2xx decodes into
// out (when non-nil), 404 becomes a not-found error, and any other status
// becomes a network error carrying the server's message.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, out interface{}) error {
	body, status, err := c.do(ctx, method, path, query, payload)
	if err != nil {
		return err
	}

	if status < 200 || status >= 300 {
		msg := serverMessage(body, status)
		logger.Warn("Backend API returned error status", map[string]interface{}{
			"method": method,
			"path":   path,
			"status": status,
			"error":  msg,
		})
		if status == http.StatusNotFound {
			return apperrors.NotFound(msg)
		}
		return apperrors.Network(apperrors.NetworkBadStatus, msg, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Network(apperrors.NetworkBadPayload, "decode response body", err)
	}
	return nil
}

// serverMessage extracts the {error} field of an error body, falling back to
// a status-based message.
func serverMessage(body []byte, status int) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return fmt.Sprintf("unexpected status code: %d", status)
}
