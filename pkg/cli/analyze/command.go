// Package analyze implements the 'ilens analyze' command.
package analyze

import (
	"context"
	"os"

	"github.com/impactlens/ilens/pkg/cli/flag"
	"github.com/impactlens/ilens/pkg/controller/analyze"
	"github.com/impactlens/ilens/pkg/di"
	"github.com/impactlens/ilens/pkg/diagnostic"
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
		Name:  "analyze",
		Usage: "Analyze files with the Impactlens API",
		Description: `If no argument is passed, ilens searches source files from the current directory.

$ ilens analyze

You can also pass file paths as arguments.

e.g.

$ ilens analyze pkg/server/handler.go

Results are written in text, json, or sarif.

$ ilens analyze --format sarif > ilens.sarif
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format. One of text, json, sarif",
				Value:   diagnostic.FormatText,
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "Analysis profile. This overrides the profile in the configuration file",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with a non-zero status code if error-severity findings are found or a file can't be analyzed",
			},
		},
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	deps, err := di.NewOS(ctx, r.logE, r.gFlags)
	if err != nil {
		return err //nolint:wrapcheck
	}
	client, err := deps.RequireAPI()
	if err != nil {
		return err //nolint:wrapcheck
	}
	ctrl := analyze.New(deps.Fs, client, deps.Config, deps.Nudger, &analyze.Param{
		Files:       c.Args().Slice(),
		Format:      c.String("format"),
		Profile:     c.String("profile"),
		FailOnError: c.Bool("fail-on-error"),
		PWD:         deps.PWD,
		Version:     r.version,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	})
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}
