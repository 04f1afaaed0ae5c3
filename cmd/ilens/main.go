package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/impactlens/ilens/pkg/cli"
	"github.com/impactlens/ilens/pkg/controller/analyze"
	"github.com/impactlens/ilens/pkg/log"
	"github.com/impactlens/ilens/pkg/settings"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/go-stdutil"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

var (
	version = ""
	commit  = "" //nolint:gochecknoglobals
	date    = "" //nolint:gochecknoglobals
)

func main() {
	logE := log.New(version)
	if err := core(logE); err != nil {
		if errors.Is(err, analyze.ErrFindings) {
			os.Exit(1)
		}
		if errors.Is(err, settings.ErrNotConfigured) {
			fmt.Fprintln(os.Stderr, color.YellowString("ilens is not configured. Run 'ilens login --api-key <key>' or open the setup screen with 'ilens panel'."))
		}
		logerr.WithError(logE, err).Fatal("ilens failed")
	}
}

func core(logE *logrus.Entry) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.Run(ctx, logE, &stdutil.LDFlags{ //nolint:wrapcheck
		Version: version,
		Commit:  commit,
		Date:    date,
	}, os.Args...)
}
