package config

import (
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/impactlens/ilens/pkg/fault"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	defaultDebounce                  = 500 * time.Millisecond
	defaultSubscriptionCheckInterval = time.Hour
	currentVersion                   = 1
)

type Config struct {
	Version                   int               `json:"version,omitempty" yaml:"version" jsonschema:"enum=1"`
	Profile                   string            `json:"profile,omitempty" yaml:"profile" jsonschema:"description=Analysis profile sent with every diagnostics request"`
	DebounceMS                int               `json:"debounce_ms,omitempty" yaml:"debounce_ms" jsonschema:"description=Delay in milliseconds before a changed file is analyzed. The default is 500"`
	Languages                 map[string]string `json:"languages,omitempty" yaml:"languages" jsonschema:"description=Map of file extensions to language ids. Entries override the built-in table"`
	Ignore                    []*Ignore         `json:"ignore,omitempty" yaml:"ignore" jsonschema:"description=Files that ilens never analyzes"`
	CLIPath                   string            `json:"cli_path,omitempty" yaml:"cli_path" jsonschema:"description=Path of the impactlens CLI. The default is impactlens"`
	FaultTemplates            []*fault.Template `json:"fault_templates,omitempty" yaml:"fault_templates" jsonschema:"description=Fault-injection templates. A template with a built-in name replaces it"`
	SubscriptionCheckInterval string            `json:"subscription_check_interval,omitempty" yaml:"subscription_check_interval" jsonschema:"description=Minimum interval between subscription checks as a Go duration. The default is 1h"`
	subscriptionCheckInterval time.Duration
}

type Ignore struct {
	Pattern       string `json:"pattern" yaml:"pattern" jsonschema:"description=A path relative to the workspace root"`
	PatternFormat string `json:"pattern_format" yaml:"pattern_format" jsonschema:"enum=fixed_string,enum=glob,enum=regexp"`
	patternRegexp *regexp.Regexp
}

const (
	formatFixedString = "fixed_string"
	formatGlob        = "glob"
	formatRegexp      = "regexp"
)

var defaultLanguages = map[string]string{ //nolint:gochecknoglobals
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".jsx":  "javascriptreact",
	".ts":   "typescript",
	".tsx":  "typescriptreact",
	".java": "java",
	".rb":   "ruby",
	".cs":   "csharp",
	".rs":   "rust",
	".php":  "php",
	".kt":   "kotlin",
}

func initFormat(value, format string) (*regexp.Regexp, error) {
	switch format {
	case formatFixedString:
		return nil, nil //nolint:nilnil
	case formatGlob:
		if _, err := path.Match(value, "a"); err != nil {
			return nil, fmt.Errorf("parse as a glob: %w", err)
		}
		return nil, nil //nolint:nilnil
	case formatRegexp:
		r, err := regexp.Compile(value)
		if err != nil {
			return nil, fmt.Errorf("compile as a regular expression: %w", err)
		}
		return r, nil
	default:
		return nil, errors.New("pattern_format must be fixed_string, glob, or regexp")
	}
}

func (ig *Ignore) Init() error {
	if ig.Pattern == "" {
		return errors.New("pattern is required")
	}
	if ig.PatternFormat == "" {
		return errors.New("pattern_format is required")
	}
	var err error
	ig.patternRegexp, err = initFormat(ig.Pattern, ig.PatternFormat)
	return err
}

func match(value, pattern, format string, r *regexp.Regexp) (bool, error) {
	switch format {
	case formatFixedString:
		return value == pattern, nil
	case formatGlob:
		f, err := path.Match(pattern, value)
		if err != nil {
			return false, fmt.Errorf("match as a glob: %w", err)
		}
		return f, nil
	case formatRegexp:
		return r.MatchString(value), nil
	default:
		return false, errors.New("unexpected format: " + format)
	}
}

// Match reports whether the slash separated file path matches the pattern.
func (ig *Ignore) Match(filePath string) (bool, error) {
	return match(filePath, ig.Pattern, ig.PatternFormat, ig.patternRegexp)
}

func validateVersion(v int) error {
	switch v {
	case 0, currentVersion:
		return nil
	default:
		return fmt.Errorf("unsupported config version: %d", v)
	}
}

// Init validates the configuration and compiles ignore patterns.
func (c *Config) Init() error {
	if err := validateVersion(c.Version); err != nil {
		return err
	}
	if c.DebounceMS < 0 {
		return errors.New("debounce_ms must not be negative")
	}
	for _, ig := range c.Ignore {
		if err := ig.Init(); err != nil {
			return fmt.Errorf("initialize ignore: %w", err)
		}
	}
	for _, t := range c.FaultTemplates {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("validate fault template: %w", err)
		}
	}
	if c.SubscriptionCheckInterval != "" {
		d, err := time.ParseDuration(c.SubscriptionCheckInterval)
		if err != nil {
			return fmt.Errorf("parse subscription_check_interval: %w", err)
		}
		c.subscriptionCheckInterval = d
	}
	return nil
}

func (c *Config) DebounceDelay() time.Duration {
	if c == nil || c.DebounceMS == 0 {
		return defaultDebounce
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}

func (c *Config) CheckInterval() time.Duration {
	if c == nil || c.subscriptionCheckInterval == 0 {
		return defaultSubscriptionCheckInterval
	}
	return c.subscriptionCheckInterval
}

// Language returns the language id of a file, or "" if the extension is unknown.
func (c *Config) Language(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	if c != nil {
		if lang, ok := c.Languages[ext]; ok {
			return lang
		}
	}
	return defaultLanguages[ext]
}

func (c *Config) Ignored(filePath string) (bool, error) {
	if c == nil {
		return false, nil
	}
	p := filepath.ToSlash(filePath)
	for _, ig := range c.Ignore {
		f, err := ig.Match(p)
		if err != nil {
			return false, fmt.Errorf("match ignore pattern %s: %w", ig.Pattern, err)
		}
		if f {
			return true, nil
		}
	}
	return false, nil
}

var configPaths = []string{".ilens.yaml", ".github/ilens.yaml", ".ilens.yml", ".github/ilens.yml"} //nolint:gochecknoglobals

func getConfigPath(fs afero.Fs, dir string) (string, error) {
	for _, p := range configPaths {
		p = filepath.Join(dir, p)
		f, err := afero.Exists(fs, p)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", p, err)
		}
		if f {
			return p, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

// Find returns configFilePath if it is set, otherwise the first config file found in dir.
// It returns "" if no config file exists.
func (f *Finder) Find(configFilePath, dir string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	p, err := getConfigPath(f.fs, dir)
	if err != nil {
		return "", err
	}
	return p, nil
}

// IsConfigFile reports whether a workspace relative path is one of the project config file names.
func IsConfigFile(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range configPaths {
		if rel == p {
			return true
		}
	}
	return false
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath == "" {
		return cfg.Init()
	}
	f, err := r.fs.Open(configFilePath)
	if err != nil {
		return fmt.Errorf("open a configuration file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode a configuration file as YAML: %w", err)
	}
	if err := cfg.Init(); err != nil {
		return fmt.Errorf("initialize a configuration: %w", err)
	}
	return nil
}
