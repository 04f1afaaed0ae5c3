// Package settings reads and writes the per-user credentials file of ilens.
// The file is a small JSON document holding the API key and the remembered
// base URL of the analysis service. Environment variables override both.
// A missing or malformed file means ilens is not configured yet, which the
// commands turn into a pointer to the setup flow instead of a hard failure.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	EnvConfigFile = "ILENS_CONFIG_FILE"
	EnvAPIKey     = "ILENS_API_KEY"
	EnvAPIURL     = "ILENS_API_URL"

	appDir   = "impactlens"
	fileName = "config.json"

	dirPermission  os.FileMode = 0o700
	filePermission os.FileMode = 0o600
)

// ErrNotConfigured means no usable API key was found.
var ErrNotConfigured = errors.New("ilens is not configured")

type Settings struct {
	APIKey string `json:"apiKey,omitempty"`
	APIURL string `json:"apiUrl,omitempty"`
}

// Configured reports whether an API key is available.
func (s *Settings) Configured() bool {
	return s != nil && s.APIKey != ""
}

// ApplyEnv overrides the file values with environment variables.
func (s *Settings) ApplyEnv(getEnv func(string) string) {
	if v := getEnv(EnvAPIKey); v != "" {
		s.APIKey = v
	}
	if v := getEnv(EnvAPIURL); v != "" {
		s.APIURL = v
	}
}

// Path returns the credentials file location for goos.
// ILENS_CONFIG_FILE takes precedence over the per-OS default.
func Path(goos string, getEnv func(string) string, home string) (string, error) {
	if p := getEnv(EnvConfigFile); p != "" {
		return p, nil
	}
	switch goos {
	case "windows":
		if appData := getEnv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDir, fileName), nil
		}
		if home == "" {
			return "", errors.New("neither APPDATA nor the home directory is set")
		}
		return filepath.Join(home, "AppData", "Roaming", appDir, fileName), nil
	case "darwin":
		if home == "" {
			return "", errors.New("the home directory is not set")
		}
		return filepath.Join(home, "Library", "Application Support", appDir, fileName), nil
	default:
		if xdg := getEnv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDir, fileName), nil
		}
		if home == "" {
			return "", errors.New("neither XDG_CONFIG_HOME nor the home directory is set")
		}
		return filepath.Join(home, ".config", appDir, fileName), nil
	}
}

// SecretStore is an optional place to keep the API key outside the file.
type SecretStore interface {
	GetAPIKey() (string, error)
}

type Store struct {
	fs   afero.Fs
	path string
}

func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Read returns the file content as is.
func (s *Store) Read() (*Settings, error) {
	b, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s doesn't exist", ErrNotConfigured, s.path)
		}
		return nil, fmt.Errorf("read the settings file: %w", err)
	}
	st := &Settings{}
	if err := json.Unmarshal(b, st); err != nil {
		return nil, fmt.Errorf("%w: %s is malformed: %w", ErrNotConfigured, s.path, err)
	}
	return st, nil
}

// Load reads the file, applies environment overrides and falls back to
// secrets for the API key. The file may be absent when the key comes from
// elsewhere. It returns ErrNotConfigured when no key is found.
func (s *Store) Load(getEnv func(string) string, secrets SecretStore) (*Settings, error) {
	st, err := s.Read()
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			return nil, err
		}
		st = &Settings{}
	}
	st.ApplyEnv(getEnv)
	if st.APIKey == "" && secrets != nil {
		key, err := secrets.GetAPIKey()
		if err == nil {
			st.APIKey = key
		}
	}
	if !st.Configured() {
		return st, ErrNotConfigured
	}
	return st, nil
}

// Write stores st, creating the parent directory when needed.
func (s *Store) Write(st *Settings) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), dirPermission); err != nil {
		return fmt.Errorf("create the settings directory: %w", err)
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings as JSON: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, append(b, '\n'), filePermission); err != nil {
		return fmt.Errorf("write the settings file: %w", err)
	}
	return nil
}

// Remove deletes the file. A missing file isn't an error.
func (s *Store) Remove() error {
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove the settings file: %w", err)
	}
	return nil
}
