// Package login implements the 'ilens login' command.
// The API key is stored in the settings file or in the OS keyring, or the
// login is delegated to the impactlens CLI which writes the settings itself.
package login

import (
	"context"
	"io"

	"github.com/impactlens/ilens/pkg/settings"
)

type Controller struct {
	store   SettingsStore
	keyring KeyringManager
	cli     ExternalLogin
	param   *Param
}

type Param struct {
	APIKey  string
	APIURL  string
	UseCLI  bool
	Keyring bool
	Stdout  io.Writer
}

// SettingsStore is satisfied by *settings.Store.
type SettingsStore interface {
	Path() string
	Read() (*settings.Settings, error)
	Write(st *settings.Settings) error
}

type KeyringManager interface {
	SetAPIKey(key string) error
}

// ExternalLogin is satisfied by *extcli.CLI.
type ExternalLogin interface {
	CheckVersion(ctx context.Context, minimum string) error
	Login(ctx context.Context, apiURL string) error
}

func New(store SettingsStore, keyring KeyringManager, cli ExternalLogin, param *Param) *Controller {
	return &Controller{
		store:   store,
		keyring: keyring,
		cli:     cli,
		param:   param,
	}
}
