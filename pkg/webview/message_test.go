package webview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/fault"
	"github.com/impactlens/ilens/pkg/webview"
	"github.com/sirupsen/logrus"
)

type fakeEffects struct {
	opened   string
	line     int
	link     string
	template string
	target   string
	runErr   error
}

func (f *fakeEffects) OpenFile(_ context.Context, path string, line int) error {
	f.opened = path
	f.line = line
	return nil
}

func (f *fakeEffects) OpenLink(_ context.Context, link string) error {
	f.link = link
	return nil
}

func (f *fakeEffects) RunFault(_ context.Context, template, target string) (*fault.Run, error) {
	f.template = template
	f.target = target
	run := &fault.Run{Template: template, Target: target}
	if f.runErr != nil {
		run.Error = f.runErr.Error()
		return run, f.runErr
	}
	return run, nil
}

func newHandler(effects *fakeEffects) (*webview.Handler, *webview.ImpactPanel) {
	impact := webview.NewImpactPanel(nil)
	return webview.NewHandler(logrus.NewEntry(logrus.New()), effects, impact), impact
}

func TestHandler_Handle(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		msg     *webview.Message
		wantErr bool
		check   func(t *testing.T, f *fakeEffects, p *webview.ImpactPanel)
	}{
		{
			name: "openFile",
			msg:  &webview.Message{Command: "openFile", Path: "main.go", Line: 10},
			check: func(t *testing.T, f *fakeEffects, _ *webview.ImpactPanel) {
				t.Helper()
				if f.opened != "main.go" || f.line != 10 {
					t.Errorf("got %s:%d", f.opened, f.line)
				}
			},
		},
		{
			name:    "openFile without path",
			msg:     &webview.Message{Command: "openFile"},
			wantErr: true,
		},
		{
			name: "openLink",
			msg:  &webview.Message{Command: "openLink", URL: "https://impactlens.dev/docs"},
			check: func(t *testing.T, f *fakeEffects, _ *webview.ImpactPanel) {
				t.Helper()
				if f.link != "https://impactlens.dev/docs" {
					t.Errorf("got %q", f.link)
				}
			},
		},
		{
			name:    "openLink with a file scheme",
			msg:     &webview.Message{Command: "openLink", URL: "file:///etc/passwd"},
			wantErr: true,
		},
		{
			name: "pin",
			msg:  &webview.Message{Command: "pin"},
			check: func(t *testing.T, _ *fakeEffects, p *webview.ImpactPanel) {
				t.Helper()
				if p.Snapshot().Pinned == nil {
					t.Error("impact is not pinned")
				}
			},
		},
		{
			name: "runFaultTemplate uses the displayed function",
			msg:  &webview.Message{Command: "runFaultTemplate", Template: "latency"},
			check: func(t *testing.T, f *fakeEffects, p *webview.ImpactPanel) {
				t.Helper()
				if f.template != "latency" || f.target != "pkg.Handler" {
					t.Errorf("got %s %s", f.template, f.target)
				}
				if p.Snapshot().FaultRun == nil {
					t.Error("fault run is not recorded")
				}
			},
		},
		{
			name: "toggleSection",
			msg:  &webview.Message{Command: "toggleSection", Section: "routes"},
			check: func(t *testing.T, _ *fakeEffects, p *webview.ImpactPanel) {
				t.Helper()
				if !p.Snapshot().Collapsed["routes"] {
					t.Error("routes is not collapsed")
				}
			},
		},
		{
			name:    "unknown",
			msg:     &webview.Message{Command: "refresh"},
			wantErr: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			f := &fakeEffects{}
			h, p := newHandler(f)
			p.SetImpact(&api.Impact{FunctionName: "pkg.Handler"})
			err := h.Handle(context.Background(), d.msg)
			if d.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.check != nil {
				d.check(t, f, p)
			}
		})
	}
}

func TestHandler_Handle_faultFailureIsRecorded(t *testing.T) {
	t.Parallel()
	f := &fakeEffects{runErr: errors.New("exit status 2")}
	h, p := newHandler(f)
	err := h.Handle(context.Background(), &webview.Message{Command: "runFaultTemplate", Template: "jitter", Target: "pkg.F"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	run := p.Snapshot().FaultRun
	if run == nil || !run.Failed() {
		t.Errorf("failed run is not recorded: %+v", run)
	}
}
