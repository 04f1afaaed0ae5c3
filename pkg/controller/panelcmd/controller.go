// Package panelcmd implements the 'ilens panel' command.
// It serves the panels without watching a workspace. The welcome panel shows
// whether ilens is configured and how to finish the setup.
package panelcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/impactlens/ilens/pkg/extcli"
	"github.com/impactlens/ilens/pkg/fault"
	"github.com/impactlens/ilens/pkg/panel"
	"github.com/impactlens/ilens/pkg/webview"
	"github.com/sirupsen/logrus"
)

type Param struct {
	Addr         string
	Configured   bool
	APIURL       string
	SettingsPath string
	// Reason explains why ilens isn't configured.
	Reason string
	GOOS   string
}

// Nudger is satisfied by *subscription.Nudger.
type Nudger interface {
	Check(ctx context.Context, logE *logrus.Entry) string
}

// Server is satisfied by *panel.Server.
type Server interface {
	ListenAndServe(ctx context.Context, addr string) error
}

type Controller struct {
	logE    *logrus.Entry
	nudger  Nudger
	exec    extcli.Executor
	welcome *webview.WelcomePanel
	context *webview.ContextView
	impact  *webview.ImpactPanel
	param   *Param
}

func New(logE *logrus.Entry, nudger Nudger, exec extcli.Executor, param *Param) *Controller {
	return &Controller{
		logE:    logE,
		nudger:  nudger,
		exec:    exec,
		welcome: webview.NewWelcomePanel(),
		context: webview.NewContextView(),
		impact:  webview.NewImpactPanel(nil),
		param:   param,
	}
}

func (c *Controller) Welcome() *webview.WelcomePanel {
	return c.welcome
}

// Prepare fills the welcome panel and returns the server to run.
func (c *Controller) Prepare(ctx context.Context) *panel.Server {
	c.welcome.SetSetup(c.param.Configured, c.param.APIURL, c.param.SettingsPath, c.param.Reason)
	if c.param.Configured && c.nudger != nil {
		if msg := c.nudger.Check(ctx, c.logE); msg != "" {
			c.welcome.SetSubscription(msg)
			c.context.SetNotice(msg)
		}
	}
	return panel.New(c.logE, webview.NewHandler(c.logE, c, c.impact), nil, c.welcome, c.context, c.impact)
}

func (c *Controller) Run(ctx context.Context) error {
	return c.serve(ctx, c.Prepare(ctx))
}

func (c *Controller) serve(ctx context.Context, srv Server) error {
	c.logE.WithField("url", "http://"+c.param.Addr+"/panels/"+webview.PanelWelcome).Info("open the panels in a browser")
	if err := srv.ListenAndServe(ctx, c.param.Addr); err != nil {
		return fmt.Errorf("serve panels: %w", err)
	}
	return nil
}

func (c *Controller) OpenFile(context.Context, string, int) error {
	return errors.New("no workspace is watched: run 'ilens watch' to open files")
}

func (c *Controller) OpenLink(ctx context.Context, link string) error {
	return extcli.OpenBrowser(ctx, c.exec, c.param.GOOS, link) //nolint:wrapcheck
}

func (c *Controller) RunFault(context.Context, string, string) (*fault.Run, error) {
	return nil, errors.New("no workspace is watched: run 'ilens watch' to run fault templates")
}
