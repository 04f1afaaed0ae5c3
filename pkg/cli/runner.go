// Package cli builds the ilens command line and dispatches subcommands.
package cli

import (
	"context"

	"github.com/impactlens/ilens/pkg/cli/actions"
	"github.com/impactlens/ilens/pkg/cli/analyze"
	"github.com/impactlens/ilens/pkg/cli/fault"
	"github.com/impactlens/ilens/pkg/cli/flag"
	"github.com/impactlens/ilens/pkg/cli/initcmd"
	"github.com/impactlens/ilens/pkg/cli/login"
	"github.com/impactlens/ilens/pkg/cli/logout"
	"github.com/impactlens/ilens/pkg/cli/panel"
	"github.com/impactlens/ilens/pkg/cli/status"
	"github.com/impactlens/ilens/pkg/cli/watch"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/go-stdutil"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, logE *logrus.Entry, ldFlags *stdutil.LDFlags, args ...string) error {
	gFlags := &flag.GlobalFlags{}
	cmd := &cli.Command{
		Name:                  "ilens",
		Usage:                 "Analyze the impact of code changes with Impactlens",
		Version:               ldFlags.Version + " (" + ldFlags.Commit + ")",
		Flags:                 gFlags.Flags(),
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			initcmd.New(logE, gFlags),
			login.New(logE, gFlags),
			logout.New(logE, gFlags),
			status.New(logE, gFlags),
			analyze.New(logE, gFlags, ldFlags.Version),
			actions.New(logE, gFlags),
			watch.New(logE, gFlags, ldFlags.Version),
			panel.New(logE, gFlags),
			fault.New(logE, gFlags),
			newVersionCommand(),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}
