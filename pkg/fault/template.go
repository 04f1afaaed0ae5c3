// Package fault assembles network fault-injection runs for the external CLI.
// A template is a named preset of impairments: latency, jitter, bandwidth and
// packet loss. The CLI turns a template and a target function into a
// scenario file, which is parsed back to summarise the run.
package fault

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

type Template struct {
	Name          string  `json:"name" yaml:"name" jsonschema:"description=Template name used on the command line"`
	Description   string  `json:"description,omitempty" yaml:"description"`
	Latency       string  `json:"latency,omitempty" yaml:"latency" jsonschema:"description=Added delay as a Go duration e.g. 300ms"`
	Jitter        string  `json:"jitter,omitempty" yaml:"jitter" jsonschema:"description=Delay variation as a Go duration"`
	BandwidthKbps int     `json:"bandwidth_kbps,omitempty" yaml:"bandwidth_kbps" jsonschema:"description=Bandwidth cap in kbit/s"`
	PacketLoss    float64 `json:"packet_loss,omitempty" yaml:"packet_loss" jsonschema:"description=Dropped packets in percent"`
}

var builtins = []*Template{ //nolint:gochecknoglobals
	{Name: "latency", Description: "300ms of added latency", Latency: "300ms"},
	{Name: "jitter", Description: "100ms latency with 50ms jitter", Latency: "100ms", Jitter: "50ms"},
	{Name: "bandwidth", Description: "256 kbit/s bandwidth cap", BandwidthKbps: 256}, //nolint:mnd
	{Name: "packet-loss", Description: "5% packet loss", PacketLoss: 5},               //nolint:mnd
	{
		Name: "flaky-network", Description: "slow, jittery and lossy link",
		Latency: "200ms", Jitter: "100ms", BandwidthKbps: 1024, PacketLoss: 2, //nolint:mnd
	},
}

func validDuration(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.ParseDuration(s); err != nil {
		return fmt.Errorf("parse %q as a duration: %w", s, err)
	}
	return nil
}

func (t *Template) Validate() error {
	if t.Name == "" {
		return errors.New("name is required")
	}
	if err := validDuration(t.Latency); err != nil {
		return fmt.Errorf("latency: %w", err)
	}
	if err := validDuration(t.Jitter); err != nil {
		return fmt.Errorf("jitter: %w", err)
	}
	if t.BandwidthKbps < 0 {
		return errors.New("bandwidth_kbps must not be negative")
	}
	if t.PacketLoss < 0 || t.PacketLoss > 100 {
		return errors.New("packet_loss must be between 0 and 100")
	}
	if t.Latency == "" && t.Jitter == "" && t.BandwidthKbps == 0 && t.PacketLoss == 0 {
		return errors.New("at least one impairment is required")
	}
	return nil
}

// Args returns the CLI arguments generating a scenario for target into out.
func (t *Template) Args(target, out string) []string {
	args := []string{"fault", "generate", "--template", t.Name, "--target", target}
	if t.Latency != "" {
		args = append(args, "--latency", t.Latency)
	}
	if t.Jitter != "" {
		args = append(args, "--jitter", t.Jitter)
	}
	if t.BandwidthKbps > 0 {
		args = append(args, "--bandwidth", strconv.Itoa(t.BandwidthKbps)+"kbps")
	}
	if t.PacketLoss > 0 {
		args = append(args, "--packet-loss", strconv.FormatFloat(t.PacketLoss, 'f', -1, 64)+"%")
	}
	if out != "" {
		args = append(args, "--out", out)
	}
	return args
}

// Registry holds the built-in templates plus overrides from the project config.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry adds overrides on top of the built-ins. An override with a
// built-in name replaces it.
func NewRegistry(overrides []*Template) (*Registry, error) {
	m := make(map[string]*Template, len(builtins)+len(overrides))
	for _, t := range builtins {
		m[t.Name] = t
	}
	for _, t := range overrides {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("validate the fault template %q: %w", t.Name, err)
		}
		m[t.Name] = t
	}
	return &Registry{templates: m}, nil
}

func (r *Registry) Get(name string) (*Template, bool) {
	t, ok := r.templates[name]
	return t, ok
}

// List returns the templates sorted by name.
func (r *Registry) List() []*Template {
	arr := make([]*Template, 0, len(r.templates))
	for _, t := range r.templates {
		arr = append(arr, t)
	}
	sort.Slice(arr, func(i, j int) bool {
		return arr[i].Name < arr[j].Name
	})
	return arr
}
