package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyService = "impactlens/ilens"
	keyName    = "ILENS_API_KEY"
)

// KeyringManager keeps the API key in the OS secret store.
type KeyringManager struct{}

func NewKeyringManager() *KeyringManager {
	return &KeyringManager{}
}

func (km *KeyringManager) GetAPIKey() (string, error) {
	s, err := keyring.Get(keyService, keyName)
	if err != nil {
		return "", fmt.Errorf("get the API key from keyring: %w", err)
	}
	return s, nil
}

func (km *KeyringManager) SetAPIKey(key string) error {
	if err := keyring.Set(keyService, keyName, key); err != nil {
		return fmt.Errorf("set the API key in keyring: %w", err)
	}
	return nil
}

// RemoveAPIKey deletes the key. A key that was never stored isn't an error.
func (km *KeyringManager) RemoveAPIKey() error {
	if err := keyring.Delete(keyService, keyName); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete the API key from keyring: %w", err)
	}
	return nil
}
