package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"InfraDash/internal/pkg/logger"
	"InfraDash/internal/pkg/metrics"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id sent to the backend
const RequestIDHeader = "X-Request-ID"

// Response is a completed backend exchange, whatever its status code
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher performs GET requests against the backend API
type Fetcher interface {
	Get(ctx context.Context, endpoint string) (*Response, error)
}

// HTTPFetcher resolves endpoint paths against a backend base URL
type HTTPFetcher struct {
	baseURL *url.URL
	client  *http.Client
	labels  *Labeler
}

// Option configures an HTTPFetcher
type Option func(*HTTPFetcher)

// WithKnownEndpoints gives endpoints their own latency series. Every other
// endpoint is recorded under AdHocLabel.
func WithKnownEndpoints(endpoints ...string) Option {
	return func(f *HTTPFetcher) {
		f.labels = NewLabeler(endpoints...)
	}
}

// NewHTTPFetcher builds a fetcher for baseURL. A zero timeout leaves requests
// unbounded; they end only when the backend answers or ctx is cancelled.
func NewHTTPFetcher(baseURL string, timeout time.Duration, opts ...Option) (*HTTPFetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend base URL must be http or https: %s", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend base URL has no host: %s", baseURL)
	}

	f := &HTTPFetcher{
		baseURL: u,
		client:  &http.Client{Timeout: timeout},
		labels:  NewLabeler(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// BaseURL returns the backend the fetcher talks to
func (f *HTTPFetcher) BaseURL() string {
	return f.baseURL.String()
}

// Resolve turns an endpoint path into an absolute backend URL. Absolute URLs
// and scheme-relative references are refused so probes stay on the backend.
func (f *HTTPFetcher) Resolve(endpoint string) (*url.URL, error) {
	ref, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return f.baseURL.ResolveReference(ref), nil
}

// ValidateEndpoint reports whether endpoint is a usable backend path
func ValidateEndpoint(endpoint string) error {
	_, err := parseEndpoint(endpoint)
	return err
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return nil, fmt.Errorf("endpoint %q must be a path on the backend", endpoint)
	}
	return ref, nil
}

// Get issues a GET for endpoint. Any status code is a successful exchange;
// only a request that never completes returns an error, always a
// *NetworkError.
func (f *HTTPFetcher) Get(ctx context.Context, endpoint string) (*Response, error) {
	target, err := f.Resolve(endpoint)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	metrics.ObserveFetch(f.labels.Label(endpoint), time.Since(start))
	if err != nil {
		logger.Debug("Backend request failed",
			logger.String("endpoint", endpoint),
			logger.String("request_id", requestID),
			logger.Err(err))
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("read response body: %w", err)}
	}

	logger.Debug("Backend request completed",
		logger.String("endpoint", endpoint),
		logger.String("request_id", requestID),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)))

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
