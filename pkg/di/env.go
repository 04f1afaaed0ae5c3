package di

import "github.com/impactlens/ilens/pkg/auth"

// Env holds settings read from environment variables.
type Env struct {
	KeyringEnabled bool
	Editor         string
	Home           string
}

// SetFromEnv sets Env from environment variables.
func (e *Env) SetFromEnv(getEnv func(string) string) {
	e.KeyringEnabled = auth.KeyringEnabled(getEnv)
	e.Editor = getEnv("ILENS_EDITOR")
	if e.Editor == "" {
		e.Editor = getEnv("VISUAL")
	}
	if e.Editor == "" {
		e.Editor = getEnv("EDITOR")
	}
	e.Home = getEnv("HOME")
	if e.Home == "" {
		e.Home = getEnv("USERPROFILE")
	}
}
