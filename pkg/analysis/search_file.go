package analysis

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/impactlens/ilens/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var skipDirs = map[string]struct{}{ //nolint:gochecknoglobals
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	".ilens":       {},
}

// SkipDir reports whether a directory is never analyzed.
func SkipDir(name string) bool {
	_, ok := skipDirs[name]
	return ok
}

// Target reports whether a workspace relative file should be analyzed.
func Target(logE *logrus.Entry, cfg *config.Config, rel string) bool {
	if cfg.Language(rel) == "" {
		return false
	}
	ignored, err := cfg.Ignored(rel)
	if err != nil {
		logE.WithField("path", rel).WithError(err).Warn("check if a file is ignored")
		return false
	}
	return !ignored
}

// SearchFiles returns files to analyze. Explicit paths are returned as is,
// otherwise pwd is walked for files in a known language that aren't ignored.
func SearchFiles(logE *logrus.Entry, afs afero.Fs, cfg *config.Config, paths []string, pwd string) ([]string, error) {
	if len(paths) != 0 {
		return paths, nil
	}
	files := []string{}
	if err := afero.Walk(afs, pwd, func(p string, fi os.FileInfo, e error) error {
		if e != nil {
			return nil //nolint:nilerr
		}
		if fi.IsDir() {
			if p != pwd && SkipDir(fi.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		filePath, err := filepath.Rel(pwd, p)
		if err != nil {
			logE.WithFields(logrus.Fields{
				"pwd":  pwd,
				"path": p,
			}).WithError(err).Debug("get a relative path")
			return nil
		}
		if Target(logE, cfg, filePath) {
			files = append(files, filePath)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("search target files: %w", err)
	}
	return files, nil
}
