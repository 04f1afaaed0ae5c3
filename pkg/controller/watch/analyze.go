package watch

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/impactlens/ilens/pkg/analysis"
	"github.com/impactlens/ilens/pkg/diagnostic"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

const notConfiguredMessage = "ilens is not configured. Run 'ilens login' to set an API key."

// analyze runs when the debounce timer of a file fires. A failure is terminal for this attempt.
func (c *Controller) analyze(_ string, snap *snapshot) {
	c.mu.Lock()
	ctx := c.ctx
	analyzer := c.analyzer
	c.mu.Unlock()
	logE := c.logE.WithField("file", snap.file)
	if analyzer == nil {
		c.fail(logE, snap.file, notConfiguredMessage, nil)
		return
	}
	res, err := analyzer.Analyze(ctx, snap.file, snap.source)
	if !c.publishResult(ctx, logE, snap, res, err) {
		return
	}
	logE.WithField("diagnostics", len(res.Diagnostics)).Info("analyzed a file")
	if err := c.printer.Print(diagnostic.FormatText, []*diagnostic.FileResult{
		{File: snap.file, Diagnostics: res.Diagnostics},
	}); err != nil {
		logerr.WithError(logE, err).Error("output diagnostics")
	}
	c.nudge(logE)
}

// publishResult shows the outcome of an analysis unless the file changed or
// was closed while it ran. It reports whether a result was published.
func (c *Controller) publishResult(ctx context.Context, logE *logrus.Entry, snap *snapshot, res *analysis.Result, err error) bool {
	c.publish.Lock()
	defer c.publish.Unlock()
	if c.stale(snap) {
		logE.Debug("drop the result of a superseded analysis")
		return false
	}
	if err != nil {
		if ctx.Err() == nil {
			c.fail(logE, snap.file, "ilens couldn't analyze "+snap.file+": "+err.Error(), err)
		}
		return false
	}
	c.mu.Lock()
	c.results[snap.file] = res
	c.current = snap.file
	c.mu.Unlock()

	c.panels.Context.Update(snap.file, res.Response, res.Diagnostics)
	if len(res.Response.Impacts) > 0 {
		c.panels.Impact.SetImpact(res.Response.Impacts[0])
	}
	return true
}

func (c *Controller) fail(logE *logrus.Entry, file, msg string, err error) {
	if err != nil {
		logerr.WithError(logE, err).Error("analyze a file")
	}
	fmt.Fprintln(c.param.Stderr, color.RedString(msg))
	c.panels.Context.SetError(file, msg)
	c.notify(msg)
}

func (c *Controller) notify(msg string) {
	c.mu.Lock()
	n := c.notifier
	c.mu.Unlock()
	if n != nil {
		n.Notify(msg)
	}
}

func (c *Controller) nudge(logE *logrus.Entry) {
	if c.nudger == nil {
		return
	}
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()
	msg := c.nudger.Check(ctx, logE)
	if msg == "" {
		return
	}
	fmt.Fprintln(c.param.Stderr, color.YellowString(msg))
	c.panels.Context.SetNotice(msg)
	c.panels.Welcome.SetSubscription(msg)
}

// SelectImpact makes function the active impact. The current file is searched first.
func (c *Controller) SelectImpact(function string) bool {
	c.mu.Lock()
	res := c.results[c.current]
	impact := res.Impact(function)
	if impact == nil {
		for _, r := range c.results {
			if impact = r.Impact(function); impact != nil {
				break
			}
		}
	}
	c.mu.Unlock()
	if impact == nil {
		return false
	}
	c.panels.Impact.SetImpact(impact)
	return true
}
