// Package webview holds the state of the three ilens panels and renders them as HTML.
// The panel server pushes every state change to connected browsers, and browsers
// send commands back which are handled by Handler.
package webview

import (
	"io"
	"sync"
)

const (
	PanelContext = "context"
	PanelWelcome = "welcome"
	PanelImpact  = "impact"
)

// Listener is called with a snapshot of the panel state after each mutation.
type Listener func(panel string, state any)

type Panel interface {
	Name() string
	State() any
	Render(w io.Writer) error
	Subscribe(l Listener)
}

type notifier struct {
	mu        sync.Mutex
	listeners []Listener
}

func (n *notifier) Subscribe(l Listener) {
	n.mu.Lock()
	n.listeners = append(n.listeners, l)
	n.mu.Unlock()
}

func (n *notifier) notify(panel string, state any) {
	n.mu.Lock()
	ls := make([]Listener, len(n.listeners))
	copy(ls, n.listeners)
	n.mu.Unlock()
	for _, l := range ls {
		l(panel, state)
	}
}
