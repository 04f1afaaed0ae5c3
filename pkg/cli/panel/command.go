// Package panel implements the 'ilens panel' command.
package panel

import (
	"context"
	"runtime"

	"github.com/impactlens/ilens/pkg/cli/flag"
	"github.com/impactlens/ilens/pkg/controller/panelcmd"
	"github.com/impactlens/ilens/pkg/di"
	"github.com/impactlens/ilens/pkg/extcli"
	"github.com/impactlens/ilens/pkg/panel"
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
		Name:  "panel",
		Usage: "Serve the panels without watching files",
		Description: `Serve the panels in a browser. When ilens isn't configured yet,
the welcome panel explains how to set it up.

$ ilens panel
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "Address the panels are served at",
				Value:   panel.DefaultAddr,
				Sources: cli.EnvVars("ILENS_PANEL_ADDR"),
			},
		},
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	deps, err := di.NewOS(ctx, r.logE, r.gFlags)
	if err != nil {
		return err //nolint:wrapcheck
	}
	var nudger panelcmd.Nudger
	reason := ""
	if deps.Nudger != nil {
		nudger = deps.Nudger
	}
	if deps.SettingsErr != nil {
		reason = deps.SettingsErr.Error()
	}
	ctrl := panelcmd.New(r.logE, nudger, extcli.OSExecutor{}, &panelcmd.Param{
		Addr:         c.String("addr"),
		Configured:   deps.API != nil,
		APIURL:       deps.APIURL(),
		SettingsPath: deps.Store.Path(),
		Reason:       reason,
		GOOS:         runtime.GOOS,
	})
	return ctrl.Run(ctx) //nolint:wrapcheck
}
