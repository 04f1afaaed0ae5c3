package di_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/impactlens/ilens/pkg/auth"
	"github.com/impactlens/ilens/pkg/cli/flag"
	"github.com/impactlens/ilens/pkg/di"
	"github.com/impactlens/ilens/pkg/settings"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/zalando/go-keyring"
)

func TestNew(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name          string
		env           map[string]string
		settingsFile  string
		apiURLFlag    string
		configured    bool
		expAPIURL     string
		expCLIPath    string
		projectConfig string
	}{
		{
			name:      "not configured",
			env:       map[string]string{"HOME": "/home/u"},
			expAPIURL: "https://api.impactlens.dev",
		},
		{
			name:         "settings file",
			env:          map[string]string{"HOME": "/home/u"},
			settingsFile: `{"apiKey":"ilk_1","apiUrl":"https://eu.impactlens.dev/"}`,
			configured:   true,
			expAPIURL:    "https://eu.impactlens.dev",
		},
		{
			name:       "environment",
			env:        map[string]string{"HOME": "/home/u", "ILENS_API_KEY": "ilk_2"},
			apiURLFlag: "http://localhost:8080",
			configured: true,
			expAPIURL:  "http://localhost:8080",
		},
		{
			name:          "project config",
			env:           map[string]string{"HOME": "/home/u", "ILENS_API_KEY": "ilk_2"},
			projectConfig: "cli_path: /opt/impactlens\n",
			configured:    true,
			expAPIURL:     "https://api.impactlens.dev",
			expCLIPath:    "/opt/impactlens",
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			if d.settingsFile != "" {
				if err := afero.WriteFile(fs, "/home/u/.config/impactlens/config.json", []byte(d.settingsFile), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			if d.projectConfig != "" {
				if err := afero.WriteFile(fs, "/ws/.ilens.yaml", []byte(d.projectConfig), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			flags := &di.Flags{
				GlobalFlags: &flag.GlobalFlags{APIURL: d.apiURLFlag},
				PWD:         "/ws",
				GOOS:        "linux",
			}
			deps, err := di.New(context.Background(), logrus.NewEntry(logrus.New()), fs, flags, func(k string) string {
				return d.env[k]
			})
			if err != nil {
				t.Fatal(err)
			}
			_, err = deps.RequireAPI()
			if d.configured {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else if !errors.Is(err, settings.ErrNotConfigured) {
				t.Fatalf("wanted ErrNotConfigured, got %v", err)
			}
			if deps.APIURL() != d.expAPIURL {
				t.Errorf("APIURL: wanted %s, got %s", d.expAPIURL, deps.APIURL())
			}
			expCLIPath := d.expCLIPath
			if expCLIPath == "" {
				expCLIPath = "impactlens"
			}
			if deps.CLI.Path() != expCLIPath {
				t.Errorf("CLI path: wanted %s, got %s", expCLIPath, deps.CLI.Path())
			}
		})
	}
}

func TestNew_invalidLogLevel(t *testing.T) {
	t.Parallel()
	flags := &di.Flags{GlobalFlags: &flag.GlobalFlags{LogLevel: "loud"}, PWD: "/ws", GOOS: "linux"}
	_, err := di.New(context.Background(), logrus.NewEntry(logrus.New()), afero.NewMemMapFs(), flags, func(string) string {
		return ""
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNew_keyring(t *testing.T) { //nolint:paralleltest
	keyring.MockInit()
	if err := auth.NewKeyringManager().SetAPIKey("ilk_ring"); err != nil {
		t.Fatal(err)
	}
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tier":"pro","status":"active"}`))
	}))
	defer srv.Close()

	flags := &di.Flags{GlobalFlags: &flag.GlobalFlags{APIURL: srv.URL}, PWD: "/ws", GOOS: "linux"}
	env := map[string]string{"HOME": "/home/u", "ILENS_KEYRING_ENABLED": "true"}
	deps, err := di.New(context.Background(), logrus.NewEntry(logrus.New()), afero.NewMemMapFs(), flags, func(k string) string {
		return env[k]
	})
	if err != nil {
		t.Fatal(err)
	}
	client, err := deps.RequireAPI()
	if err != nil {
		t.Fatalf("a key in the keyring should configure ilens: %v", err)
	}
	if _, err := client.SubscriptionStatus(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer ilk_ring" {
		t.Errorf("Authorization: got %q", gotAuth)
	}
}
