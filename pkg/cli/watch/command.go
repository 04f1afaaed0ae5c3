// Package watch implements the 'ilens watch' command.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/impactlens/ilens/pkg/analysis"
	"github.com/impactlens/ilens/pkg/cli/flag"
	"github.com/impactlens/ilens/pkg/controller/watch"
	"github.com/impactlens/ilens/pkg/di"
	"github.com/impactlens/ilens/pkg/extcli"
	"github.com/impactlens/ilens/pkg/fault"
	"github.com/impactlens/ilens/pkg/panel"
	"github.com/impactlens/ilens/pkg/webview"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, gFlags *flag.GlobalFlags, version string) *cli.Command {
	r := &runner{
		logE:    logE,
		gFlags:  gFlags,
		version: version,
	}
	return r.Command()
}

type runner struct {
	logE    *logrus.Entry
	gFlags  *flag.GlobalFlags
	version string
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Analyze files as they change",
		ArgsUsage: "[dir]",
		Description: `Watch a directory and analyze files shortly after they are saved.
Results are printed and pushed to the panels served at --panel-addr.

$ ilens watch

$ ilens watch --panel-addr 127.0.0.1:7878 ./services/api

Set --panel-addr to an empty string to disable the panels.
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "panel-addr",
				Usage:   "Address the panels are served at",
				Value:   panel.DefaultAddr,
				Sources: cli.EnvVars("ILENS_PANEL_ADDR"),
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "Analysis profile. This overrides the profile in the configuration file",
			},
		},
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	deps, err := di.NewOS(ctx, r.logE, r.gFlags)
	if err != nil {
		return err //nolint:wrapcheck
	}
	dir := c.Args().First()
	if dir == "" {
		dir = deps.PWD
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("get the absolute path of the watched directory: %w", err)
	}

	var (
		diagAPI analysis.DiagnosticsAPI
		nudger  watch.Nudger
	)
	if deps.API != nil {
		diagAPI = deps.API
		nudger = deps.Nudger
	}
	panels := &watch.Panels{
		Context: webview.NewContextView(),
		Welcome: webview.NewWelcomePanel(),
		Impact:  webview.NewImpactPanel(nil),
	}
	reason := ""
	if deps.SettingsErr != nil {
		reason = deps.SettingsErr.Error()
	}
	panels.Welcome.SetSetup(deps.API != nil, deps.APIURL(), deps.Store.Path(), reason)

	faults := fault.NewRunner(deps.CLI, deps.Fs, fault.ScenarioDir(dir))
	ctrl := watch.New(r.logE, deps.Fs, diagAPI, nudger, faults, extcli.OSExecutor{}, panels, &watch.Param{
		Dir:            dir,
		ConfigFilePath: r.gFlags.Config,
		Profile:        c.String("profile"),
		PanelAddr:      c.String("panel-addr"),
		Editor:         deps.Env.Editor,
		GOOS:           runtime.GOOS,
		Version:        r.version,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	})
	return ctrl.Run(ctx) //nolint:wrapcheck
}
