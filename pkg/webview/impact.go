package webview

import (
	"errors"
	"io"
	"maps"
	"sync"

	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/fault"
)

type ImpactState struct {
	Active    *api.Impact       `json:"active,omitempty"`
	Pinned    *api.Impact       `json:"pinned,omitempty"`
	FaultRun  *fault.Run        `json:"faultRun,omitempty"`
	Collapsed map[string]bool   `json:"collapsed,omitempty"`
	Templates []*fault.Template `json:"templates,omitempty"`
}

// Displayed returns the pinned impact if there is one, otherwise the active one.
func (s ImpactState) Displayed() *api.Impact {
	if s.Pinned != nil {
		return s.Pinned
	}
	return s.Active
}

// ImpactPanel shows callers, routes and findings of one function.
type ImpactPanel struct {
	notifier
	mu    sync.Mutex
	state ImpactState
}

func NewImpactPanel(templates []*fault.Template) *ImpactPanel {
	return &ImpactPanel{
		state: ImpactState{
			Collapsed: map[string]bool{},
			Templates: templates,
		},
	}
}

func (p *ImpactPanel) Name() string {
	return PanelImpact
}

func (p *ImpactPanel) State() any {
	return p.Snapshot()
}

func (p *ImpactPanel) Snapshot() ImpactState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

func (p *ImpactPanel) snapshot() ImpactState {
	s := p.state
	s.Collapsed = maps.Clone(p.state.Collapsed)
	return s
}

func (p *ImpactPanel) update(f func(s *ImpactState) error) error {
	p.mu.Lock()
	if err := f(&p.state); err != nil {
		p.mu.Unlock()
		return err
	}
	s := p.snapshot()
	p.mu.Unlock()
	p.notify(PanelImpact, s)
	return nil
}

// SetImpact replaces the active impact. A pinned impact stays displayed.
func (p *ImpactPanel) SetImpact(impact *api.Impact) {
	_ = p.update(func(s *ImpactState) error {
		s.Active = impact
		return nil
	})
}

func (p *ImpactPanel) Pin() error {
	return p.update(func(s *ImpactState) error {
		if s.Active == nil {
			return errors.New("no impact to pin")
		}
		s.Pinned = s.Active
		return nil
	})
}

func (p *ImpactPanel) Unpin() {
	_ = p.update(func(s *ImpactState) error {
		s.Pinned = nil
		return nil
	})
}

// SetTemplates replaces the fault templates offered for the displayed impact.
func (p *ImpactPanel) SetTemplates(templates []*fault.Template) {
	_ = p.update(func(s *ImpactState) error {
		s.Templates = templates
		return nil
	})
}

func (p *ImpactPanel) SetFaultRun(run *fault.Run) {
	_ = p.update(func(s *ImpactState) error {
		s.FaultRun = run
		return nil
	})
}

// Toggle collapses an expanded section and expands a collapsed one.
func (p *ImpactPanel) Toggle(section string) error {
	return p.update(func(s *ImpactState) error {
		if section == "" {
			return errors.New("section is required")
		}
		if s.Collapsed[section] {
			delete(s.Collapsed, section)
			return nil
		}
		s.Collapsed[section] = true
		return nil
	})
}

func (p *ImpactPanel) Render(w io.Writer) error {
	return render(w, impactTemplate, "Impact", PanelImpact, p.Snapshot())
}
