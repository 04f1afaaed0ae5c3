// Package fault implements the 'ilens fault' command.
package fault

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/impactlens/ilens/pkg/fault"
	"github.com/sirupsen/logrus"
)

type Controller struct {
	runner   Runner
	registry *fault.Registry
	param    *Param
}

type Param struct {
	Template string
	Target   string
	Stdout   io.Writer
}

// Runner is satisfied by *fault.Runner.
type Runner interface {
	Execute(ctx context.Context, t *fault.Template, target string) (*fault.Run, error)
}

func New(runner Runner, registry *fault.Registry, param *Param) *Controller {
	return &Controller{
		runner:   runner,
		registry: registry,
		param:    param,
	}
}

func (c *Controller) List() {
	for _, t := range c.registry.List() {
		fmt.Fprintf(c.param.Stdout, "%-16s %s\n", t.Name, t.Description)
	}
}

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	t, ok := c.registry.Get(c.param.Template)
	if !ok {
		names := make([]string, 0)
		for _, t := range c.registry.List() {
			names = append(names, t.Name)
		}
		return fmt.Errorf("unknown fault template %q: available templates are %s", c.param.Template, strings.Join(names, ", "))
	}
	logE = logE.WithFields(logrus.Fields{"template": t.Name, "target": c.param.Target})
	run, err := c.runner.Execute(ctx, t, c.param.Target)
	if err != nil {
		return fmt.Errorf("run a fault template: %w", err)
	}
	logE.WithField("scenario_file", run.ScenarioFile).Info("generated a fault scenario")
	c.print(run)
	return nil
}

func (c *Controller) print(run *fault.Run) {
	fmt.Fprintf(c.param.Stdout, "%s %s on %s\n", color.GreenString("✓"), run.Template, run.Target)
	fmt.Fprintf(c.param.Stdout, "Scenario: %s\n", run.ScenarioFile)
	if run.Scenario == nil {
		return
	}
	for i, s := range run.Scenario.Steps {
		line := fmt.Sprintf("  %d. %s %s", i+1, s.Kind, s.Value)
		if s.Duration != "" {
			line += " for " + s.Duration
		}
		fmt.Fprintln(c.param.Stdout, line)
	}
	if run.Scenario.Expected != "" {
		fmt.Fprintf(c.param.Stdout, "Expected: %s\n", run.Scenario.Expected)
	}
}
