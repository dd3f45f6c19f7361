// internal/config/config.go
//
// This package handles configuration and the .claude directory structure.
// Every project managed by cm gets a .claude/ folder in its root:
//
// .claude/
// ├── modules/
// │   ├── task/      <- Task workflow modules
// │   ├── tech/      <- Technology stack modules
// │   ├── behavior/  <- Behavior mode modules
// │   ├── context/   <- Project context modules
// │   └── memory/    <- Memory modules
// ├── logs/          <- Append-only activity log
// └── config.yaml    <- Flat key/value settings
//
// The compiled output (CLAUDE.md) lands in the project root itself.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// ClaudeDir is the name of the directory we create in each project.
	ClaudeDir = ".claude"

	// OutputFile is the compiled document written to the project root.
	OutputFile = "CLAUDE.md"

	settingsFile = "config.yaml"
)

// Categories are the module subdirectories scaffolded by Init.
var Categories = []string{"task", "tech", "behavior", "context", "memory"}

const defaultSettingsYAML = `# Claude module system configuration
auto_compile: true
max_size: 5000
project_type: auto
`

// Settings is the flat key/value store from .claude/config.yaml. Values are
// kept as strings; nothing beyond presence is validated.
type Settings map[string]string

// Config holds the per-invocation paths and settings for cm. Paths are
// resolved once from the project directory and threaded into each component
// rather than read from globals.
type Config struct {
	// ProjectDir is the directory the user ran cm from.
	ProjectDir string

	// ClaudeProjectDir is ProjectDir/.claude.
	ClaudeProjectDir string

	Settings Settings
}

// New resolves paths for the project directory and loads settings. A missing
// settings file yields the defaults; a present one replaces them wholesale.
func New(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:       projectDir,
		ClaudeProjectDir: filepath.Join(projectDir, ClaudeDir),
		Settings:         defaultSettings(),
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ModulesDir returns the root of the module store.
func (c *Config) ModulesDir() string {
	return filepath.Join(c.ClaudeProjectDir, "modules")
}

// LogsDir returns the directory holding the activity log.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ClaudeProjectDir, "logs")
}

// OutputPath returns the location of the compiled document.
func (c *Config) OutputPath() string {
	return filepath.Join(c.ProjectDir, OutputFile)
}

// SettingsPath returns the on-disk location of the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.ClaudeProjectDir, settingsFile)
}

// AutoCompile reports whether init should compile immediately after
// scaffolding.
func (c *Config) AutoCompile() bool {
	return c.Settings["auto_compile"] != "false"
}

func (c *Config) loadSettings() error {
	path := c.SettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	// The settings file is flat `key: value` YAML. Decode into loose types
	// and stringify so `auto_compile: true` and `max_size: 5000` both land
	// as strings.
	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	settings := Settings{}
	for key, value := range parsed {
		settings[key] = stringValue(value)
	}
	c.Settings = settings
	return nil
}

func defaultSettings() Settings {
	return Settings{
		"auto_compile": "true",
		"max_size":     "5000",
		"project_type": "auto",
	}
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

// Init creates the .claude directory structure in the given project
// directory and writes the default settings file if none exists.
func Init(projectDir string) error {
	claudeDir := filepath.Join(projectDir, ClaudeDir)

	dirs := []string{
		filepath.Join(claudeDir, "logs"),
	}
	for _, category := range Categories {
		dirs = append(dirs, filepath.Join(claudeDir, "modules", category))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}

	return ensureSettingsFile(filepath.Join(claudeDir, settingsFile))
}

func ensureSettingsFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.WriteFile(path, []byte(defaultSettingsYAML), 0o644); err != nil {
		return fmt.Errorf("config: write default settings: %w", err)
	}
	return nil
}
