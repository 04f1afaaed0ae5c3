package login_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/impactlens/ilens/pkg/controller/login"
	"github.com/impactlens/ilens/pkg/settings"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type fakeKeyring struct {
	key string
}

func (f *fakeKeyring) SetAPIKey(key string) error {
	f.key = key
	return nil
}

type fakeCLI struct {
	minimum string
	apiURL  string
}

func (f *fakeCLI) CheckVersion(_ context.Context, minimum string) error {
	f.minimum = minimum
	return nil
}

func (f *fakeCLI) Login(_ context.Context, apiURL string) error {
	f.apiURL = apiURL
	return nil
}

func TestController_Login(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name       string
		existing   string
		param      *login.Param
		exp        *settings.Settings
		expKeyring string
		wantErr    bool
	}{
		{
			name:  "save to the file",
			param: &login.Param{APIKey: "ilk_123", APIURL: "https://eu.impactlens.dev/"},
			exp:   &settings.Settings{APIKey: "ilk_123", APIURL: "https://eu.impactlens.dev"},
		},
		{
			name:     "keep the saved url",
			existing: `{"apiKey":"old","apiUrl":"https://onprem.example.com"}`,
			param:    &login.Param{APIKey: "new"},
			exp:      &settings.Settings{APIKey: "new", APIURL: "https://onprem.example.com"},
		},
		{
			name:     "overwrite a malformed file",
			existing: `{`,
			param:    &login.Param{APIKey: "ilk_123"},
			exp:      &settings.Settings{APIKey: "ilk_123"},
		},
		{
			name:       "keyring",
			param:      &login.Param{APIKey: "ilk_123", Keyring: true},
			exp:        &settings.Settings{},
			expKeyring: "ilk_123",
		},
		{
			name:    "no key",
			param:   &login.Param{},
			wantErr: true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			store := settings.NewStore(fs, "/home/u/.config/impactlens/config.json")
			if d.existing != "" {
				if err := afero.WriteFile(fs, store.Path(), []byte(d.existing), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			kr := &fakeKeyring{}
			d.param.Stdout = &bytes.Buffer{}
			err := login.New(store, kr, &fakeCLI{}, d.param).Login(context.Background(), logrus.NewEntry(logrus.New()))
			if d.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			st, err := store.Read()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(d.exp, st); diff != "" {
				t.Error(diff)
			}
			if kr.key != d.expKeyring {
				t.Errorf("keyring: wanted %q, got %q", d.expKeyring, kr.key)
			}
		})
	}
}

func TestController_Login_cli(t *testing.T) {
	t.Parallel()
	cli := &fakeCLI{}
	store := settings.NewStore(afero.NewMemMapFs(), "/config.json")
	err := login.New(store, nil, cli, &login.Param{UseCLI: true, APIURL: "https://eu.impactlens.dev", Stdout: &bytes.Buffer{}}).
		Login(context.Background(), logrus.NewEntry(logrus.New()))
	if err != nil {
		t.Fatal(err)
	}
	if cli.minimum == "" || cli.apiURL != "https://eu.impactlens.dev" {
		t.Errorf("unexpected CLI call: %+v", cli)
	}
}
