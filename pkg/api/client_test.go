package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/impactlens/ilens/pkg/api"
	"golang.org/x/oauth2"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intP(i int) *int {
	return &i
}

func TestClient_Diagnostics(t *testing.T) {
	t.Parallel()
	var gotReq api.DiagnosticsRequest
	var gotAuth, gotRequestID string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/diagnostics" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode the request body: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"diagnostics": []map[string]any{
				{
					"range":     map[string]any{"start": map[string]any{"line": 3, "character": 1}},
					"severity":  "error",
					"message":   "unbounded retry",
					"findingId": "F-1",
				},
			},
		})
	})
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "secret"})
	client := api.New(context.Background(), nil, srv.URL+"/", ts)
	resp, err := client.Diagnostics(context.Background(), &api.DiagnosticsRequest{
		Source:   "package main",
		Language: "go",
		Profile:  "strict",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization: wanted %q, got %q", "Bearer secret", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-Id is empty")
	}
	if diff := cmp.Diff(api.DiagnosticsRequest{Source: "package main", Language: "go", Profile: "strict"}, gotReq); diff != "" {
		t.Errorf("request body: %s", diff)
	}
	exp := []*api.Diagnostic{
		{
			Range:     &api.Range{Start: &api.Position{Line: intP(3), Character: intP(1)}},
			Severity:  "error",
			Message:   "unbounded retry",
			FindingID: "F-1",
		},
	}
	if diff := cmp.Diff(exp, resp.Diagnostics); diff != "" {
		t.Error(diff)
	}
}

func TestClient_Diagnostics_non2xx(t *testing.T) {
	t.Parallel()
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
	})
	client := api.New(context.Background(), nil, srv.URL, nil)
	_, err := client.Diagnostics(context.Background(), &api.DiagnosticsRequest{Source: "x", Language: "go"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error %q doesn't contain the status code", err)
	}
	var httpErr *api.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("wanted *api.HTTPError, got %T", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode: wanted 503, got %d", httpErr.StatusCode)
	}
}

func TestClient_CodeActions(t *testing.T) {
	t.Parallel()
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/code-actions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		req := &api.CodeActionsRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			t.Errorf("decode the request body: %v", err)
		}
		if req.FindingID != "F-9" {
			t.Errorf("findingId: wanted F-9, got %q", req.FindingID)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"actions": []map[string]any{
				{"title": "Add timeout", "edits": []map[string]any{
					{"range": map[string]any{
						"start": map[string]any{"line": 0, "character": 0},
						"end":   map[string]any{"line": 0, "character": 4},
					}, "newText": "ctx2"},
				}},
			},
		})
	})
	client := api.New(context.Background(), nil, srv.URL, nil)
	resp, err := client.CodeActions(context.Background(), &api.CodeActionsRequest{Source: "ctx1", FindingID: "F-9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Actions) != 1 || resp.Actions[0].Title != "Add timeout" {
		t.Fatalf("unexpected actions: %+v", resp.Actions)
	}
	if got := resp.Actions[0].Edits[0].NewText; got != "ctx2" {
		t.Errorf("NewText: wanted ctx2, got %q", got)
	}
}

func TestClient_SubscriptionStatus(t *testing.T) {
	t.Parallel()
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/subscription/status" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]any{"tier": "pro", "status": "trial", "trialDaysRemaining": 1})
	})
	client := api.New(context.Background(), nil, srv.URL, nil)
	status, err := client.SubscriptionStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exp := &api.SubscriptionStatus{Tier: "pro", Status: "trial", TrialDaysRemaining: intP(1)}
	if diff := cmp.Diff(exp, status); diff != "" {
		t.Error(diff)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		in   string
		exp  string
	}{
		{name: "empty", in: "", exp: api.DefaultBaseURL},
		{name: "trailing slash", in: "https://example.com/v1/", exp: "https://example.com/v1"},
		{name: "spaces", in: "  https://example.com  ", exp: "https://example.com"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if got := api.NormalizeBaseURL(d.in); got != d.exp {
				t.Errorf("wanted %q, got %q", d.exp, got)
			}
		})
	}
}
