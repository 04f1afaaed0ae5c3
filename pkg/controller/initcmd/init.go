package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	templateConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/impactlens/ilens/refs/heads/main/json-schema/ilens.json
# ilens - https://github.com/impactlens/ilens
version: 1
# profile: default
# debounce_ms: 500
# cli_path: impactlens
# subscription_check_interval: 1h

# languages:
#   .mjs: javascript

ignore:
# - pattern: vendor/*
#   pattern_format: glob
# - pattern: _test\.go$
#   pattern_format: regexp

# fault_templates:
# - name: slow-db
#   description: 2s of added latency
#   latency: 2s
`
	filePermission os.FileMode = 0o644
	dirPermission  os.FileMode = 0o755
)

// Init creates a configuration file at configFilePath unless one already exists.
// It reports whether the file was created.
func (c *Controller) Init(configFilePath string) (bool, error) {
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return false, fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		return false, nil
	}
	if dir := filepath.Dir(configFilePath); dir != "." {
		if err := c.fs.MkdirAll(dir, dirPermission); err != nil {
			return false, fmt.Errorf("create a directory: %w", err)
		}
	}
	if err := afero.WriteFile(c.fs, configFilePath, []byte(templateConfig), filePermission); err != nil {
		return false, fmt.Errorf("create a configuration file: %w", err)
	}
	return true, nil
}
