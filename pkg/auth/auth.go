// Package auth decides how requests to the analysis service are authenticated.
// The API key is sent as a bearer token through an oauth2 token source. The key
// comes from the settings file, the environment, or the OS keyring.
package auth

import (
	"golang.org/x/oauth2"
)

const EnvKeyringEnabled = "ILENS_KEYRING_ENABLED"

// KeyringEnabled reports whether the OS keyring may hold the API key.
func KeyringEnabled(getEnv func(string) string) bool {
	return getEnv(EnvKeyringEnabled) == "true"
}

// TokenSource returns a static bearer source for apiKey, or nil without a key.
// A key kept in the keyring is resolved by settings.Store.Load beforehand.
func TokenSource(apiKey string) oauth2.TokenSource {
	if apiKey == "" {
		return nil
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
}
