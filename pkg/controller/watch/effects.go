package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/impactlens/ilens/pkg/extcli"
	"github.com/impactlens/ilens/pkg/fault"
)

// OpenFile opens path in the configured editor. Without an editor it is only logged.
func (c *Controller) OpenFile(ctx context.Context, path string, line int) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.param.Dir, path)
	}
	editor := strings.Fields(c.param.Editor)
	if len(editor) == 0 {
		c.logE.WithField("path", path).Info("open a file")
		return nil
	}
	// editors take 1-based lines
	target := path + ":" + strconv.Itoa(line+1)
	args := append(editor[1:], target) //nolint:gocritic
	if _, stderr, err := c.exec.Run(ctx, editor[0], args...); err != nil {
		return fmt.Errorf("open a file with %s: %w: %s", editor[0], err, strings.TrimSpace(stderr))
	}
	return nil
}

func (c *Controller) OpenLink(ctx context.Context, link string) error {
	return extcli.OpenBrowser(ctx, c.exec, c.param.GOOS, link) //nolint:wrapcheck
}

func (c *Controller) RunFault(ctx context.Context, template, target string) (*fault.Run, error) {
	if target == "" {
		return nil, errors.New("select a function before running a fault template")
	}
	c.mu.Lock()
	registry := c.registry
	c.mu.Unlock()
	if registry == nil {
		return nil, errors.New("fault templates aren't loaded")
	}
	t, ok := registry.Get(template)
	if !ok {
		return nil, fmt.Errorf("unknown fault template: %s", template)
	}
	return c.faults.Execute(ctx, t, target) //nolint:wrapcheck
}
