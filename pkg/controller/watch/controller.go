// Package watch implements the 'ilens watch' command.
// It watches a workspace and analyzes files shortly after they are created or
// written. Each file has its own debounce timer so a burst of saves results in
// one request carrying the latest content. Results are printed and pushed to
// the panels served in the browser.
package watch

import (
	"context"
	"io"
	"sync"

	"github.com/impactlens/ilens/pkg/analysis"
	"github.com/impactlens/ilens/pkg/config"
	"github.com/impactlens/ilens/pkg/debounce"
	"github.com/impactlens/ilens/pkg/diagnostic"
	"github.com/impactlens/ilens/pkg/extcli"
	"github.com/impactlens/ilens/pkg/fault"
	"github.com/impactlens/ilens/pkg/webview"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Param struct {
	Dir            string
	ConfigFilePath string
	Profile        string
	PanelAddr      string
	// Editor is the command files are opened with, e.g. "code -g".
	Editor  string
	GOOS    string
	Version string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Nudger is satisfied by *subscription.Nudger.
type Nudger interface {
	Check(ctx context.Context, logE *logrus.Entry) string
}

// FaultRunner is satisfied by *fault.Runner.
type FaultRunner interface {
	Execute(ctx context.Context, t *fault.Template, target string) (*fault.Run, error)
}

// Notifier shows a transient message in the panels.
type Notifier interface {
	Notify(message string)
}

type Panels struct {
	Context *webview.ContextView
	Welcome *webview.WelcomePanel
	Impact  *webview.ImpactPanel
}

// snapshot is the content of a file at the time of a change.
type snapshot struct {
	file   string
	source []byte
	gen    uint64
}

type Controller struct {
	fs       afero.Fs
	api      analysis.DiagnosticsAPI
	nudger   Nudger
	faults   FaultRunner
	exec     extcli.Executor
	panels   *Panels
	param    *Param
	logE     *logrus.Entry
	printer  *diagnostic.Printer
	notifier Notifier

	scheduler *debounce.Scheduler[*snapshot]

	// publish serializes publishing results with closing files.
	publish sync.Mutex

	mu       sync.Mutex
	ctx      context.Context //nolint:containedctx
	cfg      *config.Config
	analyzer *analysis.Analyzer
	registry *fault.Registry
	results  map[string]*analysis.Result
	current  string
	// gens is bumped per file on every change and close. Results of an older
	// generation are dropped.
	gens map[string]uint64
}

// New creates a controller. diagAPI is nil while ilens isn't configured.
func New(logE *logrus.Entry, fs afero.Fs, diagAPI analysis.DiagnosticsAPI, nudger Nudger, faults FaultRunner, exec extcli.Executor, panels *Panels, param *Param) *Controller {
	c := &Controller{
		fs:      fs,
		api:     diagAPI,
		nudger:  nudger,
		faults:  faults,
		exec:    exec,
		panels:  panels,
		param:   param,
		logE:    logE,
		printer: diagnostic.NewPrinter(param.Stdout, param.Version),
		ctx:     context.Background(),
		results: map[string]*analysis.Result{},
		gens:    map[string]uint64{},
	}
	c.scheduler = debounce.New[*snapshot](c.Config().DebounceDelay(), c.analyze)
	return c
}

func (c *Controller) SetNotifier(n Notifier) {
	c.mu.Lock()
	c.notifier = n
	c.mu.Unlock()
}

func (c *Controller) Config() *config.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// bump starts a new generation of file. The caller holds c.mu.
func (c *Controller) bump(file string) uint64 {
	c.gens[file]++
	return c.gens[file]
}

// stale reports whether a newer change or a close superseded snap.
func (c *Controller) stale(snap *snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[snap.file] != snap.gen
}

// Flush runs pending analyses immediately.
func (c *Controller) Flush() {
	c.scheduler.Flush()
}
