// Package analysis sends one file to the analysis service and converts the answer
// into editor diagnostics. It is shared by the analyze and watch commands.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/config"
	"github.com/impactlens/ilens/pkg/diagnostic"
)

var ErrUnsupportedLanguage = errors.New("the language of the file is unknown")

// DiagnosticsAPI is satisfied by *api.Client.
type DiagnosticsAPI interface {
	Diagnostics(ctx context.Context, req *api.DiagnosticsRequest) (*api.DiagnosticsResponse, error)
}

type Result struct {
	File        string
	Language    string
	Response    *api.DiagnosticsResponse
	Diagnostics []*diagnostic.Diagnostic
}

// Impact returns the impact of function, or nil.
func (r *Result) Impact(function string) *api.Impact {
	if r == nil || r.Response == nil {
		return nil
	}
	for _, impact := range r.Response.Impacts {
		if impact != nil && impact.FunctionName == function {
			return impact
		}
	}
	return nil
}

type Analyzer struct {
	api     DiagnosticsAPI
	cfg     *config.Config
	profile string
}

// New creates an Analyzer. profile overrides the profile of cfg when it isn't empty.
func New(diagAPI DiagnosticsAPI, cfg *config.Config, profile string) *Analyzer {
	if profile == "" && cfg != nil {
		profile = cfg.Profile
	}
	return &Analyzer{
		api:     diagAPI,
		cfg:     cfg,
		profile: profile,
	}
}

// Analyze sends source as the content of file. file is reported relative to the workspace.
func (a *Analyzer) Analyze(ctx context.Context, file string, source []byte) (*Result, error) {
	lang := a.cfg.Language(file)
	if lang == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filepath.Ext(file))
	}
	res, err := a.api.Diagnostics(ctx, &api.DiagnosticsRequest{
		Source:   string(source),
		Language: lang,
		Profile:  a.profile,
		File:     filepath.ToSlash(file),
	})
	if err != nil {
		return nil, fmt.Errorf("get diagnostics: %w", err)
	}
	return &Result{
		File:        file,
		Language:    lang,
		Response:    res,
		Diagnostics: diagnostic.ConvertAll(file, res.Diagnostics),
	}, nil
}
