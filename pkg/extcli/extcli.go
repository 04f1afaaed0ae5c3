// Package extcli runs the external impactlens command line tool.
// ilens doesn't interpret what the tool does; it assembles arguments, runs
// the process and reports its output.
package extcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPath = "impactlens"
	// MinVersion is the oldest tool release that understands `fault generate`.
	MinVersion = "1.2.0"
)

// Executor runs a process and returns its stdout and stderr.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (string, string, error)
}

type OSExecutor struct{}

func (OSExecutor) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err //nolint:wrapcheck
}

type CLI struct {
	path string
	exec Executor
	logE *logrus.Entry
}

func New(logE *logrus.Entry, path string, executor Executor) *CLI {
	if path == "" {
		path = DefaultPath
	}
	if executor == nil {
		executor = OSExecutor{}
	}
	return &CLI{path: path, exec: executor, logE: logE}
}

func (c *CLI) Path() string {
	return c.path
}

// Run executes the tool. A failure carries the tool's stderr.
func (c *CLI) Run(ctx context.Context, args ...string) (string, error) {
	c.logE.WithFields(logrus.Fields{
		"cli":  c.path,
		"args": strings.Join(args, " "),
	}).Debug("run the impactlens CLI")
	stdout, stderr, err := c.exec.Run(ctx, c.path, args...)
	if err != nil {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			return stdout, fmt.Errorf("run %s %s: %w", c.path, strings.Join(args, " "), err)
		}
		return stdout, fmt.Errorf("run %s %s: %w: %s", c.path, strings.Join(args, " "), err, msg)
	}
	return stdout, nil
}

// Login delegates authentication to the tool, which writes the shared settings file.
func (c *CLI) Login(ctx context.Context, apiURL string) error {
	args := []string{"auth", "login"}
	if apiURL != "" {
		args = append(args, "--api-url", apiURL)
	}
	if _, err := c.Run(ctx, args...); err != nil {
		return fmt.Errorf("log in with the impactlens CLI: %w", err)
	}
	return nil
}

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?)`)

// ParseVersion extracts the first semantic version from the output of `version`.
func ParseVersion(output string) (*version.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no version found in %q", strings.TrimSpace(output))
	}
	v, err := version.NewVersion(m[1])
	if err != nil {
		return nil, fmt.Errorf("parse the CLI version: %w", err)
	}
	return v, nil
}

func (c *CLI) Version(ctx context.Context) (*version.Version, error) {
	out, err := c.Run(ctx, "version")
	if err != nil {
		return nil, err
	}
	return ParseVersion(out)
}

var ErrTooOld = errors.New("the impactlens CLI is too old")

// CheckVersion fails when the installed tool is older than minimum.
func (c *CLI) CheckVersion(ctx context.Context, minimum string) error {
	minV, err := version.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("parse the minimum CLI version: %w", err)
	}
	v, err := c.Version(ctx)
	if err != nil {
		return err
	}
	if v.LessThan(minV) {
		return fmt.Errorf("%w: %s < %s", ErrTooOld, v, minV)
	}
	return nil
}
