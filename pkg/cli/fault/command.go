// Package fault implements the 'ilens fault' command.
package fault

import (
	"context"
	"fmt"
	"os"

	"github.com/impactlens/ilens/pkg/cli/flag"
	ctrlfault "github.com/impactlens/ilens/pkg/controller/fault"
	"github.com/impactlens/ilens/pkg/di"
	"github.com/impactlens/ilens/pkg/extcli"
	"github.com/impactlens/ilens/pkg/fault"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, gFlags *flag.GlobalFlags) *cli.Command {
	r := &runner{
		logE:   logE,
		gFlags: gFlags,
	}
	return r.Command()
}

type runner struct {
	logE   *logrus.Entry
	gFlags *flag.GlobalFlags
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:      "fault",
		Usage:     "Generate a fault-injection scenario with the impactlens CLI",
		ArgsUsage: "<template>",
		Description: `Run a fault-injection template against a function.

$ ilens fault latency --target 'pkg/server.(*Server).Handle'

Without arguments, the available templates are listed.

$ ilens fault
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "target",
				Usage: "Function the faults are injected into",
			},
		},
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	deps, err := di.NewOS(ctx, r.logE, r.gFlags)
	if err != nil {
		return err //nolint:wrapcheck
	}
	registry, err := fault.NewRegistry(deps.Config.FaultTemplates)
	if err != nil {
		return fmt.Errorf("load fault templates: %w", err)
	}
	ctrl := ctrlfault.New(fault.NewRunner(deps.CLI, deps.Fs, fault.ScenarioDir(deps.PWD)), registry, &ctrlfault.Param{
		Template: c.Args().First(),
		Target:   c.String("target"),
		Stdout:   os.Stdout,
	})
	if c.Args().First() == "" {
		ctrl.List()
		return nil
	}
	if err := deps.CLI.CheckVersion(ctx, extcli.MinVersion); err != nil {
		return fmt.Errorf("check the impactlens CLI: %w", err)
	}
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}
