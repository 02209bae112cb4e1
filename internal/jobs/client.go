// Package jobs talks to the job-matching service: it fetches the searchable
// company catalogs and submits profiles for analysis.
package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmatch/internal/debug"
	apperrors "jobmatch/internal/errors"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Messages shown to the user when the service fails without saying why.
const (
	MsgCatalogsUnavailable = "Could not load company lists."
	MsgAnalyzeFailed       = "Failed to analyze profile. Please try again."
	MsgServiceUnhealthy    = "Job service is not responding."
)

// maxErrorBody caps how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

// Client defines the operations the form needs from the job service.
type Client interface {
	FetchCatalogs(ctx context.Context) (Catalogs, error)
	SubmitProfile(ctx context.Context, profile Profile) (MatchResult, error)
	Health(ctx context.Context) error
}

// HTTPClient implements Client over the service's JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	newID      func() string
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRequestIDs overrides the request id generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *HTTPClient) {
		c.newID = fn
	}
}

// NewHTTPClient creates a client rooted at baseURL (for example
// "http://localhost:8000/api").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCatalogs returns the companies searchable on each job board.
func (c *HTTPClient) FetchCatalogs(ctx context.Context) (Catalogs, error) {
	var out Catalogs
	if err := c.do(ctx, http.MethodGet, "/companies", nil, &out, MsgCatalogsUnavailable); err != nil {
		return Catalogs{}, fmt.Errorf("fetch catalogs: %w", err)
	}
	return out, nil
}

// SubmitProfile sends profile for analysis and returns the ranked matches.
func (c *HTTPClient) SubmitProfile(ctx context.Context, profile Profile) (MatchResult, error) {
	var out MatchResult
	if err := c.do(ctx, http.MethodPost, "/analyze", profile, &out, MsgAnalyzeFailed); err != nil {
		return MatchResult{}, fmt.Errorf("submit profile: %w", err)
	}
	return out, nil
}

// Health checks that the service is up.
func (c *HTTPClient) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out, MsgServiceUnhealthy); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	if out.Status != "healthy" {
		return apperrors.New(apperrors.CodeCollaboratorUnavailable, MsgServiceUnhealthy,
			fmt.Errorf("unexpected status %q", out.Status))
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, failMsg string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		debug.Warn("request failed", err, "method", method, "path", path, "request_id", requestID)
		return apperrors.New(apperrors.CodeCollaboratorUnavailable, failMsg, err)
	}
	defer func() { _ = resp.Body.Close() }()
	debug.Log("request done", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := failMsg
		if detail := readDetail(resp.Body); detail != "" {
			msg = detail
		}
		return apperrors.New(apperrors.CodeCollaboratorUnavailable, msg,
			fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.New(apperrors.CodeDecodeFailed, failMsg, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// readDetail extracts the "detail" field the service puts in error bodies.
func readDetail(r io.Reader) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&payload); err != nil {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil && strings.TrimSpace(detail) != "" {
		return strings.TrimSpace(detail)
	}
	return strings.TrimSpace(payload.Error)
}
