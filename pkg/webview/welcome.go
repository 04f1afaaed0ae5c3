package webview

import (
	"io"
	"sync"
)

type WelcomeState struct {
	Configured   bool   `json:"configured"`
	APIURL       string `json:"apiUrl,omitempty"`
	SettingsPath string `json:"settingsPath,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Subscription string `json:"subscription,omitempty"`
}

// WelcomePanel is the setup screen shown while no API key is configured.
type WelcomePanel struct {
	notifier
	mu    sync.Mutex
	state WelcomeState
}

func NewWelcomePanel() *WelcomePanel {
	return &WelcomePanel{}
}

func (p *WelcomePanel) Name() string {
	return PanelWelcome
}

func (p *WelcomePanel) State() any {
	return p.Snapshot()
}

func (p *WelcomePanel) Snapshot() WelcomeState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *WelcomePanel) SetSetup(configured bool, apiURL, settingsPath, reason string) {
	p.mu.Lock()
	p.state.Configured = configured
	p.state.APIURL = apiURL
	p.state.SettingsPath = settingsPath
	p.state.Reason = reason
	s := p.state
	p.mu.Unlock()
	p.notify(PanelWelcome, s)
}

func (p *WelcomePanel) SetSubscription(msg string) {
	p.mu.Lock()
	p.state.Subscription = msg
	s := p.state
	p.mu.Unlock()
	p.notify(PanelWelcome, s)
}

func (p *WelcomePanel) Render(w io.Writer) error {
	return render(w, welcomeTemplate, "Welcome to Impactlens", PanelWelcome, p.Snapshot())
}
