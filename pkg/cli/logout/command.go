// Package logout implements the 'ilens logout' command.
package logout

import (
	"context"

	"github.com/impactlens/ilens/pkg/auth"
	"github.com/impactlens/ilens/pkg/cli/flag"
	"github.com/impactlens/ilens/pkg/controller/logout"
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
		Name:  "logout",
		Usage: "Remove the saved API key",
		Description: `Remove the API key from the settings file and the OS keyring.

$ ilens logout
`,
		Action: r.action,
	}
}

func (r *runner) action(ctx context.Context, _ *cli.Command) error {
	deps, err := di.NewOS(ctx, r.logE, r.gFlags)
	if err != nil {
		return err //nolint:wrapcheck
	}
	ctrl := logout.New(&logout.Param{
		KeyringEnabled: deps.Env.KeyringEnabled,
	}, deps.Store, auth.NewKeyringManager())
	if err := ctrl.Remove(); err != nil {
		return err //nolint:wrapcheck
	}
	r.logE.WithField("settings", deps.Store.Path()).Info("removed the API key")
	return nil
}
