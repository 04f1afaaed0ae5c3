// Package di wires the dependencies of the ilens commands together.
// It reads the user settings and the project configuration and builds the
// API client, the external CLI runner and the subscription nudger from them.
package di

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/auth"
	"github.com/impactlens/ilens/pkg/cli/flag"
	"github.com/impactlens/ilens/pkg/config"
	"github.com/impactlens/ilens/pkg/extcli"
	"github.com/impactlens/ilens/pkg/log"
	"github.com/impactlens/ilens/pkg/settings"
	"github.com/impactlens/ilens/pkg/subscription"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Deps struct {
	Fs         afero.Fs
	PWD        string
	Env        *Env
	Store      *settings.Store
	Settings   *settings.Settings
	Config     *config.Config
	ConfigPath string
	CLI        *extcli.CLI
	// API and Nudger are nil while ilens isn't configured.
	API    *api.Client
	Nudger *subscription.Nudger
	// SettingsErr is why ilens isn't configured.
	SettingsErr error
}

// New configures logging and builds the dependencies. A missing API key isn't an error here.
func New(ctx context.Context, logE *logrus.Entry, fs afero.Fs, flags *Flags, getEnv func(string) string) (*Deps, error) {
	if err := log.SetLevel(flags.LogLevel, logE); err != nil {
		return nil, fmt.Errorf("set log level: %w", err)
	}
	env := &Env{}
	env.SetFromEnv(getEnv)
	deps := &Deps{Fs: fs, PWD: flags.PWD, Env: env}

	store, err := NewStore(fs, flags.GOOS, env, getEnv)
	if err != nil {
		return nil, err
	}
	deps.Store = store
	var secrets settings.SecretStore
	if env.KeyringEnabled {
		secrets = auth.NewKeyringManager()
	}
	st, err := store.Load(getEnv, secrets)
	if err != nil {
		if !errors.Is(err, settings.ErrNotConfigured) {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		deps.SettingsErr = err
	}
	if flags.APIURL != "" {
		st.APIURL = flags.APIURL
	}
	deps.Settings = st

	cfg, configPath, err := ReadConfig(fs, flags.Config, flags.PWD)
	if err != nil {
		return nil, err
	}
	deps.Config = cfg
	deps.ConfigPath = configPath
	deps.CLI = extcli.New(logE, cfg.CLIPath, nil)

	if deps.SettingsErr == nil {
		deps.API = api.New(ctx, logE, st.APIURL, auth.TokenSource(st.APIKey))
		deps.Nudger = subscription.NewNudger(deps.API, cfg.CheckInterval())
	}
	return deps, nil
}

// NewStore returns the store of the per-user settings file.
func NewStore(fs afero.Fs, goos string, env *Env, getEnv func(string) string) (*settings.Store, error) {
	p, err := settings.Path(goos, getEnv, env.Home)
	if err != nil {
		return nil, fmt.Errorf("get the settings file path: %w", err)
	}
	return settings.NewStore(fs, p), nil
}

// RequireAPI returns the API client, or ErrNotConfigured with a hint to set up ilens.
func (d *Deps) RequireAPI() (*api.Client, error) {
	if d.API == nil {
		return nil, fmt.Errorf("%w. Run 'ilens login --api-key <key>' or 'ilens login --cli', or set %s: %w",
			settings.ErrNotConfigured, settings.EnvAPIKey, d.SettingsErr)
	}
	return d.API, nil
}

// APIURL returns the normalized base URL requests go to.
func (d *Deps) APIURL() string {
	if d.Settings == nil {
		return api.DefaultBaseURL
	}
	return api.NormalizeBaseURL(d.Settings.APIURL)
}

func ReadConfig(fs afero.Fs, configFilePath, pwd string) (*config.Config, string, error) {
	cfgFinder := config.NewFinder(fs)
	cfgReader := config.NewReader(fs)
	configPath, err := cfgFinder.Find(configFilePath, pwd)
	if err != nil {
		return nil, "", fmt.Errorf("find configuration file: %w", err)
	}
	cfg := &config.Config{}
	if err := cfgReader.Read(cfg, configPath); err != nil {
		return nil, "", fmt.Errorf("read configuration file: %w", err)
	}
	return cfg, configPath, nil
}

// NewOS builds the dependencies for the process environment.
func NewOS(ctx context.Context, logE *logrus.Entry, gFlags *flag.GlobalFlags) (*Deps, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get the current directory: %w", err)
	}
	return New(ctx, logE, afero.NewOsFs(), &Flags{
		GlobalFlags: gFlags,
		PWD:         pwd,
		GOOS:        runtime.GOOS,
	}, os.Getenv)
}
