// Package initcmd implements the 'ilens init' command.
package initcmd

import (
	"context"
	"fmt"

	"github.com/impactlens/ilens/pkg/cli/flag"
	"github.com/impactlens/ilens/pkg/controller/initcmd"
	"github.com/impactlens/ilens/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
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
		Name:  "init",
		Usage: "Create .ilens.yaml if it doesn't exist",
		Description: `Create .ilens.yaml if it doesn't exist

$ ilens init

You can also pass configuration file path.

e.g.

$ ilens init .github/ilens.yaml
`,
		Action: r.action,
	}
}

func (r *runner) action(_ context.Context, c *cli.Command) error {
	if err := log.SetLevel(r.gFlags.LogLevel, r.logE); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}
	configFilePath := c.Args().First()
	if configFilePath == "" {
		configFilePath = r.gFlags.Config
	}
	if configFilePath == "" {
		configFilePath = ".ilens.yaml"
	}
	created, err := initcmd.New(afero.NewOsFs()).Init(configFilePath)
	if err != nil {
		return err //nolint:wrapcheck
	}
	if created {
		r.logE.WithField("config", configFilePath).Info("created a configuration file")
	} else {
		r.logE.WithField("config", configFilePath).Info("the configuration file already exists")
	}
	return nil
}
