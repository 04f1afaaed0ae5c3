package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/impactlens/ilens/pkg/analysis"
	"github.com/impactlens/ilens/pkg/panel"
	"github.com/impactlens/ilens/pkg/webview"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// Run watches the workspace until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()
	defer c.scheduler.Stop()

	if err := c.LoadConfig(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create a file watcher: %w", err)
	}
	defer watcher.Close()
	if err := c.addRecursive(watcher, c.param.Dir); err != nil {
		return err
	}

	if c.param.PanelAddr != "" {
		srv := panel.New(c.logE, webview.NewHandler(c.logE, c, c.panels.Impact), c,
			c.panels.Context, c.panels.Welcome, c.panels.Impact)
		c.SetNotifier(srv)
		go func() {
			if err := srv.ListenAndServe(ctx, c.param.PanelAddr); err != nil {
				logerr.WithError(c.logE, err).Error("serve panels")
			}
		}()
	}
	if c.api != nil {
		go c.nudge(c.logE)
	}

	c.logE.WithField("dir", c.param.Dir).Info("watching files")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := c.fs.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := c.addRecursive(watcher, ev.Name); err != nil {
						logerr.WithError(c.logE, err).Warn("watch a new directory")
					}
					continue
				}
			}
			c.HandleEvent(ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logerr.WithError(c.logE, err).Warn("file watcher error")
		}
	}
}

func (c *Controller) addRecursive(watcher *fsnotify.Watcher, root string) error {
	if err := afero.Walk(c.fs, root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr
		}
		if !fi.IsDir() {
			return nil
		}
		if p != root && analysis.SkipDir(fi.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			c.logE.WithFields(logrus.Fields{"dir": p}).WithError(err).Warn("watch a directory")
		}
		return nil
	}); err != nil {
		return fmt.Errorf("watch directories: %w", err)
	}
	return nil
}
