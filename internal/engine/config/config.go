// Package config handles parsing, validation, and persistence of the pacer
// configuration file.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pacerdev/pacer/internal/platform/logger"
	"gopkg.in/yaml.v3"
)

// MessageProvider selects how commit messages are produced.
type MessageProvider string

const (
	ProviderTemplate MessageProvider = "template"
	ProviderGemini   MessageProvider = "gemini"
)

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("no pacer config found. Run 'pacer init' first")

// Config is the top-level pacer configuration.
type Config struct {
	Repositories    []string        `yaml:"repositories"`
	WorkHours       WorkHours       `yaml:"work_hours"`
	CommitFrequency CommitFrequency `yaml:"commit_frequency"`
	LineChanges     LineChanges     `yaml:"line_changes"`
	FileExtensions  []string        `yaml:"file_extensions"`
	LogFile         string          `yaml:"log_file,omitempty"`
	Message         MessageConfig   `yaml:"message"`

	// GeminiAPIKey comes from the environment only, never from the file.
	GeminiAPIKey SecretString `yaml:"-"`
}

// WorkHours is the daily window commits are allowed in, "HH:MM" local time.
type WorkHours struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// CommitFrequency bounds how many commits a day gets.
type CommitFrequency struct {
	MinPerDay int `yaml:"min_per_day"`
	MaxPerDay int `yaml:"max_per_day"`
}

// LineChanges bounds the size of synthetic edits.
type LineChanges struct {
	MinLines int `yaml:"min_lines"`
	MaxLines int `yaml:"max_lines"`
}

// MessageConfig selects and tunes the commit message generator.
type MessageConfig struct {
	Provider MessageProvider `yaml:"provider"`
	Model    string          `yaml:"model,omitempty"`
	Timeout  time.Duration   `yaml:"timeout,omitempty"`
}

// SecretString is a string that is redacted when printed.
type SecretString string

func (s SecretString) String() string {
	return "[REDACTED]"
}

func (s SecretString) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// IsEmpty returns true if the secret string is empty.
func (s SecretString) IsEmpty() bool {
	return string(s) == ""
}

// Loader handles loading and saving configuration on a file system.
type Loader struct {
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader with the given file system.
// Uses os.Getenv for environment variable lookups by default.
func NewLoader(fs FileSystem) *Loader {
	return &Loader{fs: fs, getenv: os.Getenv}
}

// NewLoaderWithEnv creates a Loader with a custom getenv function for testability.
func NewLoaderWithEnv(fs FileSystem, getenv func(string) string) *Loader {
	return &Loader{fs: fs, getenv: getenv}
}

// DefaultPath returns the user-level config location,
// ~/.config/pacer/config.yaml.
func (l *Loader) DefaultPath() (string, error) {
	home, err := l.fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pacer", "config.yaml"), nil
}

// Load reads and parses a config file from the given path.
// Returns ErrConfigNotFound if the file does not exist.
func (l *Loader) Load(ctx context.Context, path string) (*Config, error) {
	logger.FromContext(ctx).Debug("loading config file", "path", path)
	path = filepath.Clean(path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if l.fs.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(cfg)
	l.applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config back to the given path, creating parent
// directories as needed. Repository add/remove commands persist through it.
func (l *Loader) Save(ctx context.Context, path string, cfg *Config) error {
	logger.FromContext(ctx).Debug("saving config file", "path", path)
	path = filepath.Clean(path)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := l.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := l.fs.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Load reads a config file using the real file system.
func Load(ctx context.Context, path string) (*Config, error) {
	return NewLoader(&RealFileSystem{}).Load(ctx, path)
}

// Save writes a config file using the real file system.
func Save(ctx context.Context, path string, cfg *Config) error {
	return NewLoader(&RealFileSystem{}).Save(ctx, path, cfg)
}

// Default returns the built-in configuration, matching what 'pacer init'
// writes.
func Default() *Config {
	return &Config{
		WorkHours:       WorkHours{Start: "09:00", End: "18:00"},
		CommitFrequency: CommitFrequency{MinPerDay: 3, MaxPerDay: 8},
		LineChanges:     LineChanges{MinLines: 5, MaxLines: 50},
		FileExtensions:  []string{".py", ".js", ".html", ".css", ".md"},
		Message:         MessageConfig{Provider: ProviderTemplate},
	}
}

// applyDefaults fills fields an explicit config file left empty.
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.WorkHours.Start == "" {
		cfg.WorkHours.Start = def.WorkHours.Start
	}
	if cfg.WorkHours.End == "" {
		cfg.WorkHours.End = def.WorkHours.End
	}
	if cfg.CommitFrequency.MinPerDay == 0 && cfg.CommitFrequency.MaxPerDay == 0 {
		cfg.CommitFrequency = def.CommitFrequency
	}
	if cfg.LineChanges.MinLines == 0 && cfg.LineChanges.MaxLines == 0 {
		cfg.LineChanges = def.LineChanges
	}
	if len(cfg.FileExtensions) == 0 {
		cfg.FileExtensions = def.FileExtensions
	}
	if cfg.Message.Provider == "" {
		cfg.Message.Provider = def.Message.Provider
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	if key := l.getenv("PACER_GEMINI_KEY"); key != "" {
		cfg.GeminiAPIKey = SecretString(key)
	}
}

// Validate checks the whole config and joins every problem into one error,
// so users can fix all of them at once.
func Validate(cfg *Config) error {
	var errs []error

	for _, repo := range cfg.Repositories {
		if !filepath.IsAbs(repo) {
			errs = append(errs, fmt.Errorf("repository %q: path must be absolute", repo))
		}
	}

	for _, field := range []struct{ name, value string }{
		{"work_hours.start", cfg.WorkHours.Start},
		{"work_hours.end", cfg.WorkHours.End},
	} {
		if _, err := time.Parse("15:04", field.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a valid HH:MM time", field.name, field.value))
		}
	}

	if cfg.CommitFrequency.MinPerDay < 1 {
		errs = append(errs, fmt.Errorf("commit_frequency.min_per_day must be at least 1"))
	}
	if cfg.CommitFrequency.MaxPerDay < cfg.CommitFrequency.MinPerDay {
		errs = append(errs, fmt.Errorf("commit_frequency.max_per_day must be >= min_per_day"))
	}

	if cfg.LineChanges.MinLines < 1 {
		errs = append(errs, fmt.Errorf("line_changes.min_lines must be at least 1"))
	}
	if cfg.LineChanges.MaxLines < cfg.LineChanges.MinLines {
		errs = append(errs, fmt.Errorf("line_changes.max_lines must be >= min_lines"))
	}

	for _, ext := range cfg.FileExtensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("file extension %q must start with a dot", ext))
		}
	}

	switch cfg.Message.Provider {
	case ProviderTemplate, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("message.provider %q unknown (valid: template, gemini)", cfg.Message.Provider))
	}

	return errors.Join(errs...)
}
