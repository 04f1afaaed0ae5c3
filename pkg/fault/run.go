package fault

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

// Scenario is the part of a generated scenario file ilens displays.
type Scenario struct {
	Name     string  `yaml:"name" json:"name"`
	Target   string  `yaml:"target" json:"target"`
	Proxy    string  `yaml:"proxy" json:"proxy,omitempty"`
	Steps    []*Step `yaml:"steps" json:"steps"`
	Expected string  `yaml:"expected" json:"expected,omitempty"`
}

type Step struct {
	Kind     string `yaml:"kind" json:"kind"`
	Value    string `yaml:"value" json:"value"`
	Duration string `yaml:"duration" json:"duration,omitempty"`
}

// Run is the outcome of one template execution.
type Run struct {
	Template     string    `json:"template"`
	Target       string    `json:"target"`
	ScenarioFile string    `json:"scenarioFile"`
	Scenario     *Scenario `json:"scenario,omitempty"`
	Output       string    `json:"output,omitempty"`
	Error        string    `json:"error,omitempty"`
	At           time.Time `json:"at"`
}

func (r *Run) Failed() bool {
	return r.Error != ""
}

// ParseScenario decodes a scenario file.
func ParseScenario(b []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("decode the scenario file as YAML: %w", err)
	}
	return s, nil
}

// OutDir is where scenario files are written, relative to the workspace.
var OutDir = filepath.Join(".ilens", "faults") //nolint:gochecknoglobals

// ScenarioDir returns where scenarios of the workspace at root are written,
// wherever its configuration file lives.
func ScenarioDir(root string) string {
	return filepath.Join(root, OutDir)
}

// CommandRunner is satisfied by *extcli.CLI.
type CommandRunner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

type Runner struct {
	cli    CommandRunner
	fs     afero.Fs
	outDir string
	now    func() time.Time
}

func NewRunner(cli CommandRunner, fs afero.Fs, outDir string) *Runner {
	return &Runner{cli: cli, fs: fs, outDir: outDir, now: time.Now}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// ScenarioPath returns where the scenario for template and target is written.
func (r *Runner) ScenarioPath(template, target string) string {
	name := unsafeChars.ReplaceAllString(strings.Trim(target, " "), "_")
	return filepath.Join(r.outDir, fmt.Sprintf("%s.%s.yaml", name, template))
}

// Execute runs t against target. A failed CLI run is reported in Run.Error
// together with the returned error so callers can still display it.
func (r *Runner) Execute(ctx context.Context, t *Template, target string) (*Run, error) {
	if target == "" {
		return nil, errors.New("a target function is required")
	}
	if err := r.fs.MkdirAll(r.outDir, 0o755); err != nil { //nolint:mnd
		return nil, fmt.Errorf("create the scenario directory: %w", err)
	}
	out := r.ScenarioPath(t.Name, target)
	run := &Run{
		Template:     t.Name,
		Target:       target,
		ScenarioFile: out,
		At:           r.now(),
	}
	stdout, err := r.cli.Run(ctx, t.Args(target, out)...)
	run.Output = strings.TrimSpace(stdout)
	if err != nil {
		run.Error = err.Error()
		return run, fmt.Errorf("generate a fault scenario: %w", err)
	}
	b, err := afero.ReadFile(r.fs, out)
	if err != nil {
		run.Error = err.Error()
		return run, fmt.Errorf("read the scenario file: %w", err)
	}
	scenario, err := ParseScenario(b)
	if err != nil {
		run.Error = err.Error()
		return run, err
	}
	run.Scenario = scenario
	return run, nil
}
