package logout

import (
	"fmt"
)

// Remove deletes the settings file and, when the keyring is enabled, the API key in it.
func (c *Controller) Remove() error {
	if err := c.store.Remove(); err != nil {
		return fmt.Errorf("remove the settings: %w", err)
	}
	if !c.param.KeyringEnabled || c.tokenManager == nil {
		return nil
	}
	if err := c.tokenManager.RemoveAPIKey(); err != nil {
		return fmt.Errorf("remove an Impactlens API key from the secret store: %w", err)
	}
	return nil
}
