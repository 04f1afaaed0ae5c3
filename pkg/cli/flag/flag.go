package flag

import "github.com/urfave/cli/v3"

type GlobalFlags struct {
	LogLevel string
	Config   string
	APIURL   string
}

func (gf *GlobalFlags) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level",
			Sources:     cli.EnvVars("ILENS_LOG_LEVEL"),
			Destination: &gf.LogLevel,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "project configuration file path",
			Sources:     cli.EnvVars("ILENS_CONFIG"),
			Destination: &gf.Config,
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "base URL of the Impactlens API",
			Sources:     cli.EnvVars("ILENS_API_URL"),
			Destination: &gf.APIURL,
		},
	}
}
