// Package analyze implements the 'ilens analyze' command.
// Files are sent to the analysis service one by one and the findings are
// printed as text, JSON or SARIF. A failed request is reported for its file
// and doesn't stop the other files.
package analyze

import (
	"context"
	"errors"
	"io"

	"github.com/impactlens/ilens/pkg/analysis"
	"github.com/impactlens/ilens/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ErrFindings is returned with --fail-on-error when a file has error findings or couldn't be analyzed.
var ErrFindings = errors.New("impactlens reported errors")

type Controller struct {
	fs       afero.Fs
	analyzer *analysis.Analyzer
	cfg      *config.Config
	nudger   Nudger
	param    *Param
}

type Param struct {
	Files       []string
	Format      string
	Profile     string
	FailOnError bool
	PWD         string
	Version     string
	Stdout      io.Writer
	Stderr      io.Writer
}

// Nudger is satisfied by *subscription.Nudger.
type Nudger interface {
	Check(ctx context.Context, logE *logrus.Entry) string
}

func New(fs afero.Fs, diagAPI analysis.DiagnosticsAPI, cfg *config.Config, nudger Nudger, param *Param) *Controller {
	return &Controller{
		fs:       fs,
		analyzer: analysis.New(diagAPI, cfg, param.Profile),
		cfg:      cfg,
		nudger:   nudger,
		param:    param,
	}
}
