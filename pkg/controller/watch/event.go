package watch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/impactlens/ilens/pkg/analysis"
	"github.com/impactlens/ilens/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// HandleEvent maps a file system event to an action.
// Created and written files are scheduled for analysis, removed and renamed
// files are closed, and a changed project configuration is reloaded.
func (c *Controller) HandleEvent(ev fsnotify.Event) {
	rel, err := filepath.Rel(c.param.Dir, ev.Name)
	if err != nil {
		c.logE.WithField("path", ev.Name).WithError(err).Debug("get a relative path")
		return
	}
	logE := c.logE.WithFields(logrus.Fields{"file": rel, "op": ev.Op.String()})
	if c.isConfigFile(ev.Name, rel) {
		if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
			c.reloadConfig(logE)
		}
		return
	}
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		c.Close(rel)
		return
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	if !analysis.Target(logE, c.Config(), rel) {
		return
	}
	source, err := afero.ReadFile(c.fs, ev.Name)
	if err != nil {
		// directories and files removed in the meantime
		logE.WithError(err).Debug("read a changed file")
		return
	}
	logE.Debug("schedule an analysis")
	c.mu.Lock()
	gen := c.bump(rel)
	c.mu.Unlock()
	c.scheduler.Schedule(rel, &snapshot{file: rel, source: source, gen: gen})
}

func (c *Controller) isConfigFile(name, rel string) bool {
	if c.param.ConfigFilePath != "" {
		p := c.param.ConfigFilePath
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.param.Dir, p)
		}
		return filepath.Clean(name) == filepath.Clean(p)
	}
	return config.IsConfigFile(rel)
}

func (c *Controller) reloadConfig(logE *logrus.Entry) {
	if err := c.LoadConfig(); err != nil {
		logerr.WithError(logE, err).Error("reload the configuration")
		c.notify("ilens couldn't reload the configuration: " + err.Error())
		return
	}
	logE.Info("reloaded the configuration")
}

// Close cancels a pending analysis of file and clears its results.
// An analysis already in flight is discarded when it returns.
func (c *Controller) Close(file string) {
	canceled := c.scheduler.Cancel(file)
	c.publish.Lock()
	defer c.publish.Unlock()
	c.mu.Lock()
	c.bump(file)
	_, had := c.results[file]
	delete(c.results, file)
	c.mu.Unlock()
	c.panels.Context.Clear(file)
	if canceled || had {
		c.logE.WithFields(logrus.Fields{
			"file":     file,
			"canceled": canceled,
		}).Info("cleared diagnostics")
	}
}
