// Package status implements the 'ilens status' command.
package status

import (
	"context"
	"os"

	"github.com/impactlens/ilens/pkg/cli/flag"
	"github.com/impactlens/ilens/pkg/controller/status"
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
		Name:   "status",
		Usage:  "Show the subscription status",
		Action: r.action,
	}
}

func (r *runner) action(ctx context.Context, _ *cli.Command) error {
	deps, err := di.NewOS(ctx, r.logE, r.gFlags)
	if err != nil {
		return err //nolint:wrapcheck
	}
	client, err := deps.RequireAPI()
	if err != nil {
		return err //nolint:wrapcheck
	}
	return status.New(client, deps.APIURL(), os.Stdout).Run(ctx) //nolint:wrapcheck
}
