package analyze

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/impactlens/ilens/pkg/analysis"
	"github.com/impactlens/ilens/pkg/diagnostic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	if !diagnostic.ValidFormat(c.param.Format) {
		return fmt.Errorf("unsupported output format: %s", c.param.Format)
	}
	files, err := analysis.SearchFiles(logE, c.fs, c.cfg, c.param.Files, c.param.PWD)
	if err != nil {
		return err //nolint:wrapcheck
	}
	if len(files) == 0 {
		logE.Warn("no file to analyze")
	}
	results := make([]*diagnostic.FileResult, 0, len(files))
	failed := false
	for _, file := range files {
		logE := logE.WithField("file", file)
		result := c.analyzeFile(ctx, logE, file)
		if result == nil {
			continue
		}
		if result.Error != "" || diagnostic.CountBySeverity(result.Diagnostics)[diagnostic.SeverityError] > 0 {
			failed = true
		}
		results = append(results, result)
	}
	if err := diagnostic.NewPrinter(c.param.Stdout, c.param.Version).Print(c.param.Format, results); err != nil {
		return fmt.Errorf("output results: %w", err)
	}
	c.nudge(ctx, logE)
	if failed && c.param.FailOnError {
		return ErrFindings
	}
	return nil
}

func (c *Controller) analyzeFile(ctx context.Context, logE *logrus.Entry, file string) *diagnostic.FileResult {
	p := file
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.param.PWD, p)
	}
	source, err := afero.ReadFile(c.fs, p)
	if err != nil {
		logerr.WithError(logE, err).Error("read a file")
		return &diagnostic.FileResult{File: file, Error: fmt.Sprintf("read a file: %v", err)}
	}
	res, err := c.analyzer.Analyze(ctx, file, source)
	if err != nil {
		if errors.Is(err, analysis.ErrUnsupportedLanguage) {
			logE.Warn("skip a file in an unknown language")
			return nil
		}
		logerr.WithError(logE, err).Error("analyze a file")
		return &diagnostic.FileResult{File: file, Error: err.Error()}
	}
	logE.WithField("diagnostics", len(res.Diagnostics)).Debug("analyzed a file")
	return &diagnostic.FileResult{File: file, Diagnostics: res.Diagnostics}
}

func (c *Controller) nudge(ctx context.Context, logE *logrus.Entry) {
	if c.nudger == nil {
		return
	}
	if msg := c.nudger.Check(ctx, logE); msg != "" {
		fmt.Fprintln(c.param.Stderr, color.YellowString(msg))
	}
}
