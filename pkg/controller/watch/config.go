package watch

import (
	"fmt"

	"github.com/impactlens/ilens/pkg/analysis"
	"github.com/impactlens/ilens/pkg/config"
	"github.com/impactlens/ilens/pkg/fault"
	"github.com/sirupsen/logrus"
)

// LoadConfig reads the project configuration and applies it.
// On failure the previous configuration stays in effect.
func (c *Controller) LoadConfig() error {
	p, err := config.NewFinder(c.fs).Find(c.param.ConfigFilePath, c.param.Dir)
	if err != nil {
		return fmt.Errorf("find a configuration file: %w", err)
	}
	cfg := &config.Config{}
	if err := config.NewReader(c.fs).Read(cfg, p); err != nil {
		return fmt.Errorf("read a configuration file: %w", err)
	}
	registry, err := fault.NewRegistry(cfg.FaultTemplates)
	if err != nil {
		return fmt.Errorf("load fault templates: %w", err)
	}
	c.mu.Lock()
	c.cfg = cfg
	c.registry = registry
	if c.api != nil {
		c.analyzer = analysis.New(c.api, cfg, c.param.Profile)
	}
	c.mu.Unlock()
	c.scheduler.SetDelay(cfg.DebounceDelay())
	if c.panels.Impact != nil {
		c.panels.Impact.SetTemplates(registry.List())
	}
	c.logE.WithFields(logrus.Fields{
		"config":   p,
		"debounce": cfg.DebounceDelay().String(),
	}).Debug("loaded the configuration")
	return nil
}
