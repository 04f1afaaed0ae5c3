package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/extcli"
	"github.com/impactlens/ilens/pkg/settings"
	"github.com/sirupsen/logrus"
)

func (c *Controller) Login(ctx context.Context, logE *logrus.Entry) error {
	if c.param.UseCLI {
		return c.loginWithCLI(ctx, logE)
	}
	key := strings.TrimSpace(c.param.APIKey)
	if key == "" {
		return errors.New("an API key is required: pass --api-key or use --cli")
	}
	st, err := c.read()
	if err != nil {
		return err
	}
	if c.param.APIURL != "" {
		st.APIURL = api.NormalizeBaseURL(c.param.APIURL)
	}
	where := c.store.Path()
	if c.param.Keyring {
		if err := c.keyring.SetAPIKey(key); err != nil {
			return fmt.Errorf("store the API key in the keyring: %w", err)
		}
		st.APIKey = ""
		where = "the OS keyring"
	} else {
		st.APIKey = key
	}
	if err := c.store.Write(st); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	logE.WithField("settings_file", c.store.Path()).Debug("saved settings")
	fmt.Fprintf(c.param.Stdout, "%s Saved the API key to %s\n", color.GreenString("✓"), where)
	return nil
}

// read returns the current settings, or empty settings when there are none yet.
func (c *Controller) read() (*settings.Settings, error) {
	st, err := c.store.Read()
	if err != nil {
		if errors.Is(err, settings.ErrNotConfigured) {
			return &settings.Settings{}, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return st, nil
}

func (c *Controller) loginWithCLI(ctx context.Context, logE *logrus.Entry) error {
	if err := c.cli.CheckVersion(ctx, extcli.MinVersion); err != nil {
		return fmt.Errorf("check the impactlens CLI: %w", err)
	}
	if err := c.cli.Login(ctx, c.param.APIURL); err != nil {
		return err //nolint:wrapcheck
	}
	logE.Debug("logged in with the impactlens CLI")
	fmt.Fprintf(c.param.Stdout, "%s Logged in with the impactlens CLI\n", color.GreenString("✓"))
	return nil
}
