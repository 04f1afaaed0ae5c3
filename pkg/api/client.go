// Package api is the HTTP client of the Impactlens analysis service.
// It wraps the diagnostics, code-actions and subscription-status endpoints.
// Requests are sent once: a transport error or a non-2xx status is returned
// to the caller, which treats it as terminal for that attempt.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL = "https://api.impactlens.dev"

	pathDiagnostics  = "/diagnostics"
	pathCodeActions  = "/code-actions"
	pathSubscription = "/subscription/status"
	headerRequestID  = "X-Request-Id"
)

// HTTPError is returned when the API answers with a non-2xx status.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: impactlens API returned status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: impactlens API returned status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

type Client struct {
	httpc   *resty.Client
	baseURL string
}

// New creates a client for baseURL. When ts is nil requests are unauthenticated.
func New(ctx context.Context, logE *logrus.Entry, baseURL string, ts oauth2.TokenSource) *Client {
	var httpc *resty.Client
	if ts == nil {
		httpc = resty.New()
	} else {
		httpc = resty.NewWithClient(oauth2.NewClient(ctx, ts))
	}
	baseURL = NormalizeBaseURL(baseURL)
	httpc.SetBaseURL(baseURL)
	httpc.SetHeader("Accept", "application/json")
	if logE != nil {
		httpc.SetLogger(logE)
	}
	return &Client{
		httpc:   httpc,
		baseURL: baseURL,
	}
}

// NormalizeBaseURL falls back to DefaultBaseURL and trims trailing slashes.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return DefaultBaseURL
	}
	return baseURL
}

// BaseURL returns the normalized base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.httpc.R().
		SetContext(ctx).
		SetHeader(headerRequestID, uuid.NewString())
}

func checkResponse(resp *resty.Response, method, path string) error {
	if resp.IsSuccess() {
		return nil
	}
	return &HTTPError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode(),
		Body:       resp.String(),
	}
}

// Diagnostics sends a source file for analysis.
func (c *Client) Diagnostics(ctx context.Context, req *DiagnosticsRequest) (*DiagnosticsResponse, error) {
	result := &DiagnosticsResponse{}
	resp, err := c.request(ctx).
		SetBody(req).
		SetResult(result).
		Post(pathDiagnostics)
	if err != nil {
		return nil, fmt.Errorf("send a diagnostics request: %w", err)
	}
	if err := checkResponse(resp, http.MethodPost, pathDiagnostics); err != nil {
		return nil, err
	}
	return result, nil
}

// CodeActions fetches suggested edits for a finding.
func (c *Client) CodeActions(ctx context.Context, req *CodeActionsRequest) (*CodeActionsResponse, error) {
	result := &CodeActionsResponse{}
	resp, err := c.request(ctx).
		SetBody(req).
		SetResult(result).
		Post(pathCodeActions)
	if err != nil {
		return nil, fmt.Errorf("send a code-actions request: %w", err)
	}
	if err := checkResponse(resp, http.MethodPost, pathCodeActions); err != nil {
		return nil, err
	}
	return result, nil
}

// SubscriptionStatus fetches the subscription tier and trial countdown.
func (c *Client) SubscriptionStatus(ctx context.Context) (*SubscriptionStatus, error) {
	result := &SubscriptionStatus{}
	resp, err := c.request(ctx).
		SetResult(result).
		Get(pathSubscription)
	if err != nil {
		return nil, fmt.Errorf("get the subscription status: %w", err)
	}
	if err := checkResponse(resp, http.MethodGet, pathSubscription); err != nil {
		return nil, err
	}
	return result, nil
}
