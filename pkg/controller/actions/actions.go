package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/impactlens/ilens/pkg/api"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func (c *Controller) path() string {
	if filepath.IsAbs(c.param.File) {
		return c.param.File
	}
	return filepath.Join(c.param.PWD, c.param.File)
}

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	if c.param.File == "" || c.param.FindingID == "" {
		return errors.New("a file and a finding id are required")
	}
	p := c.path()
	source, err := afero.ReadFile(c.fs, p)
	if err != nil {
		return fmt.Errorf("read a file: %w", err)
	}
	res, err := c.api.CodeActions(ctx, &api.CodeActionsRequest{
		Source:    string(source),
		FindingID: c.param.FindingID,
		Language:  c.cfg.Language(c.param.File),
	})
	if err != nil {
		return fmt.Errorf("get code actions: %w", err)
	}
	if c.param.Apply == 0 {
		c.list(res.Actions)
		return nil
	}
	if c.param.Apply < 0 || c.param.Apply > len(res.Actions) {
		return fmt.Errorf("action %d doesn't exist: %d actions are available", c.param.Apply, len(res.Actions))
	}
	action := res.Actions[c.param.Apply-1]
	out, err := ApplyEdits(string(source), action.Edits)
	if err != nil {
		return fmt.Errorf("apply the code action %q: %w", action.Title, err)
	}
	if err := c.write(p, out); err != nil {
		return err
	}
	logE.WithFields(logrus.Fields{
		"file":   c.param.File,
		"action": action.Title,
		"edits":  len(action.Edits),
	}).Info("applied a code action")
	return nil
}

func (c *Controller) write(p, content string) error {
	mode := os.FileMode(0o644) //nolint:mnd
	if fi, err := c.fs.Stat(p); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := afero.WriteFile(c.fs, p, []byte(content), mode); err != nil {
		return fmt.Errorf("write a file: %w", err)
	}
	return nil
}

func (c *Controller) list(actions []*api.CodeAction) {
	if len(actions) == 0 {
		fmt.Fprintln(c.param.Stdout, "No code actions are available for this finding.")
		return
	}
	for i, a := range actions {
		fmt.Fprintf(c.param.Stdout, "%s %s %s\n", color.CyanString("%d.", i+1), a.Title, color.New(color.Faint).Sprintf("(%d edits)", len(a.Edits)))
	}
}
