package analysis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/impactlens/ilens/pkg/analysis"
	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type fakeAPI struct {
	req *api.DiagnosticsRequest
	res *api.DiagnosticsResponse
	err error
}

func (f *fakeAPI) Diagnostics(_ context.Context, req *api.DiagnosticsRequest) (*api.DiagnosticsResponse, error) {
	f.req = req
	return f.res, f.err
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()
	f := &fakeAPI{res: &api.DiagnosticsResponse{
		Diagnostics: []*api.Diagnostic{{Message: "unchecked error", Severity: "error", RuleID: "IL100"}},
		Impacts:     []*api.Impact{{FunctionName: "main.run"}},
	}}
	a := analysis.New(f, &config.Config{Profile: "default"}, "strict")
	res, err := a.Analyze(context.Background(), "cmd/main.go", []byte("package main"))
	if err != nil {
		t.Fatal(err)
	}
	exp := &api.DiagnosticsRequest{Source: "package main", Language: "go", Profile: "strict", File: "cmd/main.go"}
	if diff := cmp.Diff(exp, f.req); diff != "" {
		t.Error(diff)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != "IL100" {
		t.Errorf("unexpected diagnostics: %+v", res.Diagnostics)
	}
	if res.Impact("main.run") == nil || res.Impact("main.other") != nil {
		t.Error("Impact lookup is wrong")
	}
}

func TestAnalyzer_Analyze_errors(t *testing.T) {
	t.Parallel()
	a := analysis.New(&fakeAPI{}, nil, "")
	if _, err := a.Analyze(context.Background(), "README.md", nil); !errors.Is(err, analysis.ErrUnsupportedLanguage) {
		t.Errorf("wanted ErrUnsupportedLanguage, got %v", err)
	}
	httpErr := &api.HTTPError{Method: "POST", Path: "/diagnostics", StatusCode: 502}
	a = analysis.New(&fakeAPI{err: httpErr}, nil, "")
	_, err := a.Analyze(context.Background(), "main.go", nil)
	var he *api.HTTPError
	if !errors.As(err, &he) || he.StatusCode != 502 {
		t.Errorf("wanted HTTPError, got %v", err)
	}
}

func TestSearchFiles(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	for _, p := range []string{
		"/ws/main.go",
		"/ws/pkg/a.py",
		"/ws/pkg/a_test.go",
		"/ws/README.md",
		"/ws/vendor/x/x.go",
		"/ws/.git/hooks/h.go",
	} {
		if err := afero.WriteFile(fs, p, []byte(""), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := &config.Config{Ignore: []*config.Ignore{{Pattern: `_test\.go$`, PatternFormat: "regexp"}}}
	if err := cfg.Init(); err != nil {
		t.Fatal(err)
	}
	logE := logrus.NewEntry(logrus.New())
	got, err := analysis.SearchFiles(logE, fs, cfg, nil, "/ws")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"main.go", "pkg/a.py"}, got); diff != "" {
		t.Error(diff)
	}
	got, err = analysis.SearchFiles(logE, fs, cfg, []string{"x.go"}, "/ws")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x.go"}, got); diff != "" {
		t.Error(diff)
	}
}
