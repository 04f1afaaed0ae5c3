// Package actions implements the 'ilens actions' command.
// It lists the code actions the analysis service offers for one finding and
// optionally applies the edits of one of them to the file.
package actions

import (
	"context"
	"io"

	"github.com/impactlens/ilens/pkg/api"
	"github.com/impactlens/ilens/pkg/config"
	"github.com/spf13/afero"
)

type Controller struct {
	fs    afero.Fs
	api   CodeActionsAPI
	cfg   *config.Config
	param *Param
}

type Param struct {
	File      string
	FindingID string
	// Apply is the 1-based index of the action to apply. 0 only lists actions.
	Apply  int
	PWD    string
	Stdout io.Writer
}

// CodeActionsAPI is satisfied by *api.Client.
type CodeActionsAPI interface {
	CodeActions(ctx context.Context, req *api.CodeActionsRequest) (*api.CodeActionsResponse, error)
}

func New(fs afero.Fs, actionsAPI CodeActionsAPI, cfg *config.Config, param *Param) *Controller {
	return &Controller{
		fs:    fs,
		api:   actionsAPI,
		cfg:   cfg,
		param: param,
	}
}
