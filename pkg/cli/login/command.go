// Package login implements the 'ilens login' command.
package login

import (
	"context"
	"os"

	"github.com/impactlens/ilens/pkg/auth"
	"github.com/impactlens/ilens/pkg/cli/flag"
	"github.com/impactlens/ilens/pkg/controller/login"
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
		Name:  "login",
		Usage: "Save the Impactlens API key",
		Description: `Save the API key to the settings file.

$ ilens login --api-key <key>

With --keyring, the key is stored in the OS keyring instead.
With --cli, the login is delegated to the impactlens CLI.

$ ilens login --cli
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Impactlens API key",
				Sources: cli.EnvVars("ILENS_API_KEY"),
			},
			&cli.BoolFlag{
				Name:  "cli",
				Usage: "Log in with the impactlens CLI",
			},
			&cli.BoolFlag{
				Name:    "keyring",
				Usage:   "Store the API key in the OS keyring",
				Sources: cli.EnvVars(auth.EnvKeyringEnabled),
			},
		},
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	deps, err := di.NewOS(ctx, r.logE, r.gFlags)
	if err != nil {
		return err //nolint:wrapcheck
	}
	ctrl := login.New(deps.Store, auth.NewKeyringManager(), deps.CLI, &login.Param{
		APIKey:  c.String("api-key"),
		APIURL:  r.gFlags.APIURL,
		UseCLI:  c.Bool("cli"),
		Keyring: c.Bool("keyring"),
		Stdout:  os.Stdout,
	})
	return ctrl.Login(ctx, r.logE) //nolint:wrapcheck
}
