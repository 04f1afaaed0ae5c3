package webview_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/fault"
	"github.com/impactlens/ilens/pkg/webview"
)

func TestImpactPanel_pin(t *testing.T) {
	t.Parallel()
	p := webview.NewImpactPanel(nil)
	if err := p.Pin(); err == nil {
		t.Fatal("pin without an impact: expected error, got nil")
	}
	a := &api.Impact{FunctionName: "a"}
	b := &api.Impact{FunctionName: "b"}
	p.SetImpact(a)
	if err := p.Pin(); err != nil {
		t.Fatal(err)
	}
	p.SetImpact(b)
	s := p.Snapshot()
	if s.Displayed() != a {
		t.Errorf("pinned impact should stay displayed, got %s", s.Displayed().FunctionName)
	}
	if s.Active != b {
		t.Errorf("active impact should be updated, got %+v", s.Active)
	}
	p.Unpin()
	if got := p.Snapshot().Displayed(); got != b {
		t.Errorf("after unpin: got %+v", got)
	}
}

func TestImpactPanel_SetTemplates(t *testing.T) {
	t.Parallel()
	p := webview.NewImpactPanel(nil)
	var got []*fault.Template
	p.Subscribe(func(_ string, state any) {
		got = state.(webview.ImpactState).Templates //nolint:forcetypeassert
	})
	p.SetTemplates([]*fault.Template{{Name: "latency"}, {Name: "jitter"}})
	if len(got) != 2 || len(p.Snapshot().Templates) != 2 {
		t.Errorf("templates aren't published: %+v", got)
	}
}

func TestImpactPanel_Toggle(t *testing.T) {
	t.Parallel()
	p := webview.NewImpactPanel(nil)
	if err := p.Toggle(""); err == nil {
		t.Error("empty section: expected error, got nil")
	}
	if err := p.Toggle("callers"); err != nil {
		t.Fatal(err)
	}
	if err := p.Toggle("routes"); err != nil {
		t.Fatal(err)
	}
	if err := p.Toggle("callers"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]bool{"routes": true}, p.Snapshot().Collapsed); diff != "" {
		t.Error(diff)
	}
}

func TestImpactPanel_notifiesSubscribers(t *testing.T) {
	t.Parallel()
	p := webview.NewImpactPanel(nil)
	var got []string
	p.Subscribe(func(panel string, state any) {
		s, ok := state.(webview.ImpactState)
		if !ok {
			t.Errorf("unexpected state type %T", state)
			return
		}
		name := ""
		if d := s.Displayed(); d != nil {
			name = d.FunctionName
		}
		got = append(got, panel+":"+name)
	})
	p.SetImpact(&api.Impact{FunctionName: "handler"})
	_ = p.Pin()
	p.Unpin()
	if err := p.Toggle(""); err == nil {
		t.Error("expected error, got nil")
	}
	exp := []string{"impact:handler", "impact:handler", "impact:handler"}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Error(diff)
	}
}
