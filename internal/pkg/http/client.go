package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/piresc/shuttlefleet/internal/pkg/circuitbreaker"
	appctx "github.com/piresc/shuttlefleet/internal/pkg/context"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	nrpkg "github.com/piresc/shuttlefleet/internal/pkg/newrelic"
)

const (
	// DefaultTimeout for HTTP requests
	DefaultTimeout = 30 * time.Second
	// APIKeyHeader is the header name for API key
	APIKeyHeader = "X-API-Key"
)

// HTTPError is returned for non-2xx responses
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an HTTPError with the given status code
func IsStatus(err error, status int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == status
}

// Config configures an APIKeyClient
type Config struct {
	ServiceName string
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
}

// APIKeyClient is a JSON HTTP client with API key authentication and a circuit breaker
type APIKeyClient struct {
	client      *nethttp.Client
	apiKey      string
	baseURL     string
	serviceName string
	breaker     *circuitbreaker.CircuitBreaker
}

// NewAPIKeyClient creates a new HTTP client with API key authentication
func NewAPIKeyClient(cfg Config) *APIKeyClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	breakerCfg := circuitbreaker.DefaultConfig(cfg.ServiceName)
	breakerCfg.IsFailure = func(err error) bool {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			return httpErr.StatusCode >= 500
		}
		return err != nil && !errors.Is(err, context.Canceled)
	}

	return &APIKeyClient{
		client:      &nethttp.Client{Timeout: timeout},
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
		breaker:     circuitbreaker.New(breakerCfg),
	}
}

// BreakerState exposes the state of the client's circuit breaker
func (c *APIKeyClient) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

// GetJSON performs a GET request and decodes the JSON response into result
func (c *APIKeyClient) GetJSON(ctx context.Context, endpoint string, query url.Values, result interface{}) error {
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}
	return c.DoJSON(ctx, nethttp.MethodGet, endpoint, nil, result)
}

// PostJSON performs a POST request with a JSON body
func (c *APIKeyClient) PostJSON(ctx context.Context, endpoint string, body, result interface{}) error {
	return c.DoJSON(ctx, nethttp.MethodPost, endpoint, body, result)
}

// PutJSON performs a PUT request with a JSON body
func (c *APIKeyClient) PutJSON(ctx context.Context, endpoint string, body, result interface{}) error {
	return c.DoJSON(ctx, nethttp.MethodPut, endpoint, body, result)
}

// Delete performs a DELETE request
func (c *APIKeyClient) Delete(ctx context.Context, endpoint string) error {
	return c.DoJSON(ctx, nethttp.MethodDelete, endpoint, nil, nil)
}

// DoJSON sends a request through the circuit breaker and decodes a JSON response
func (c *APIKeyClient) DoJSON(ctx context.Context, method, endpoint string, body, result interface{}) error {
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.do(ctx, method, endpoint, body, result)
	})
}

func (c *APIKeyClient) do(ctx context.Context, method, endpoint string, body, result interface{}) error {
	target := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	if requestID := appctx.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*nethttp.Response, error) {
		return c.client.Do(req)
	})
	if err != nil {
		logger.Warn("HTTP request failed",
			logger.String("method", method),
			logger.String("url", target),
			logger.String("service", c.serviceName),
			logger.Err(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	if result == nil || resp.StatusCode == nethttp.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
