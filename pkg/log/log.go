// Package log builds the logrus logger shared by every ilens command.
package log

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns the root log entry. Fields added here are attached to every record.
func New(version string) *logrus.Entry {
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Formatter = &logrus.TextFormatter{
		DisableTimestamp: true,
	}
	return logger.WithFields(logrus.Fields{
		"version": version,
		"program": "ilens",
	})
}

// SetLevel changes the level of the logger behind logE.
// An empty level keeps the current one.
func SetLevel(level string, logE *logrus.Entry) error {
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse the log level: %w", err)
	}
	logE.Logger.Level = lvl
	return nil
}
