// Package actions implements the 'ilens actions' command.
package actions

import (
	"context"
	"errors"
	"os"

	"github.com/impactlens/ilens/pkg/cli/flag"
	"github.com/impactlens/ilens/pkg/controller/actions"
	"github.com/impactlens/ilens/pkg/di"
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
		Name:      "actions",
		Usage:     "List or apply code actions for a finding",
		ArgsUsage: "<file> <finding id>",
		Description: `List the code actions for a finding.

$ ilens actions pkg/server/handler.go IL-1234

Apply the second action to the file.

$ ilens actions --apply 2 pkg/server/handler.go IL-1234
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "apply",
				Usage: "Apply the action with this number",
			},
		},
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 { //nolint:mnd
		return errors.New("a file and a finding id are required")
	}
	deps, err := di.NewOS(ctx, r.logE, r.gFlags)
	if err != nil {
		return err //nolint:wrapcheck
	}
	client, err := deps.RequireAPI()
	if err != nil {
		return err //nolint:wrapcheck
	}
	ctrl := actions.New(deps.Fs, client, deps.Config, &actions.Param{
		File:      c.Args().Get(0),
		FindingID: c.Args().Get(1),
		Apply:     int(c.Int("apply")),
		PWD:       deps.PWD,
		Stdout:    os.Stdout,
	})
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}
