package webview

import (
	"io"
	"sync"

	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/diagnostic"
)

type ContextState struct {
	File        string                   `json:"file,omitempty"`
	Centrality  *float64                 `json:"centrality,omitempty"`
	Diagnostics []*diagnostic.Diagnostic `json:"diagnostics,omitempty"`
	Insights    []*api.Insight           `json:"insights,omitempty"`
	Impacts     []*api.Impact            `json:"impacts,omitempty"`
	Error       string                   `json:"error,omitempty"`
	Notice      string                   `json:"notice,omitempty"`
}

// ContextView shows what is known about the file being edited.
type ContextView struct {
	notifier
	mu    sync.Mutex
	state ContextState
}

func NewContextView() *ContextView {
	return &ContextView{}
}

func (v *ContextView) Name() string {
	return PanelContext
}

func (v *ContextView) State() any {
	return v.Snapshot()
}

func (v *ContextView) Snapshot() ContextState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *ContextView) update(f func(s *ContextState)) {
	v.mu.Lock()
	f(&v.state)
	s := v.state
	v.mu.Unlock()
	v.notify(PanelContext, s)
}

// Update replaces the findings shown for a file. A pending notice is kept.
func (v *ContextView) Update(file string, res *api.DiagnosticsResponse, diags []*diagnostic.Diagnostic) {
	v.update(func(s *ContextState) {
		*s = ContextState{
			File:        file,
			Centrality:  res.Centrality,
			Diagnostics: diags,
			Insights:    res.Insights,
			Impacts:     res.Impacts,
			Notice:      s.Notice,
		}
	})
}

// SetError shows msg for file. Findings of another file are dropped.
func (v *ContextView) SetError(file, msg string) {
	v.update(func(s *ContextState) {
		if s.File != file {
			*s = ContextState{File: file, Notice: s.Notice}
		}
		s.Error = msg
	})
}

// Clear empties the view if it shows file.
func (v *ContextView) Clear(file string) {
	v.update(func(s *ContextState) {
		if s.File == file {
			*s = ContextState{Notice: s.Notice}
		}
	})
}

func (v *ContextView) SetNotice(msg string) {
	v.update(func(s *ContextState) {
		s.Notice = msg
	})
}

func (v *ContextView) Render(w io.Writer) error {
	return render(w, contextTemplate, "Impactlens context", PanelContext, v.Snapshot())
}
