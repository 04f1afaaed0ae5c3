package webview

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/impactlens/ilens/pkg/fault"
	"github.com/sirupsen/logrus"
)

const (
	CommandOpenFile         = "openFile"
	CommandOpenLink         = "openLink"
	CommandPin              = "pin"
	CommandUnpin            = "unpin"
	CommandRunFaultTemplate = "runFaultTemplate"
	CommandToggleSection    = "toggleSection"
)

// Message is a command sent by a panel.
type Message struct {
	Command  string `json:"command"`
	Path     string `json:"path,omitempty"`
	Line     int    `json:"line,omitempty"`
	URL      string `json:"url,omitempty"`
	Template string `json:"template,omitempty"`
	Target   string `json:"target,omitempty"`
	Section  string `json:"section,omitempty"`
}

// Effects performs the side effects panels ask for.
type Effects interface {
	OpenFile(ctx context.Context, path string, line int) error
	OpenLink(ctx context.Context, link string) error
	RunFault(ctx context.Context, template, target string) (*fault.Run, error)
}

type Handler struct {
	logE    *logrus.Entry
	effects Effects
	impact  *ImpactPanel
}

func NewHandler(logE *logrus.Entry, effects Effects, impact *ImpactPanel) *Handler {
	return &Handler{
		logE:    logE,
		effects: effects,
		impact:  impact,
	}
}

func (h *Handler) Handle(ctx context.Context, msg *Message) error {
	logE := h.logE.WithField("command", msg.Command)
	logE.Debug("handle a panel message")
	switch msg.Command {
	case CommandOpenFile:
		if msg.Path == "" {
			return errors.New("path is required")
		}
		return h.effects.OpenFile(ctx, msg.Path, msg.Line) //nolint:wrapcheck
	case CommandOpenLink:
		if err := validateLink(msg.URL); err != nil {
			return err
		}
		return h.effects.OpenLink(ctx, msg.URL) //nolint:wrapcheck
	case CommandPin:
		return h.impact.Pin()
	case CommandUnpin:
		h.impact.Unpin()
		return nil
	case CommandRunFaultTemplate:
		return h.runFault(ctx, msg)
	case CommandToggleSection:
		return h.impact.Toggle(msg.Section)
	default:
		return fmt.Errorf("unknown command: %q", msg.Command)
	}
}

func (h *Handler) runFault(ctx context.Context, msg *Message) error {
	if msg.Template == "" {
		return errors.New("template is required")
	}
	target := msg.Target
	if target == "" {
		if impact := h.impact.Snapshot().Displayed(); impact != nil {
			target = impact.FunctionName
		}
	}
	run, err := h.effects.RunFault(ctx, msg.Template, target)
	if run != nil {
		h.impact.SetFaultRun(run)
	}
	if err != nil {
		return fmt.Errorf("run a fault template: %w", err)
	}
	return nil
}

func validateLink(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("parse a link: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported link scheme: %q", u.Scheme)
	}
	return nil
}
