package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the wtp configuration
type Config struct {
	EnvFile    string `toml:"env_file"`    // env file name managed in each worktree
	PortKey    string `toml:"port_key"`    // key written with the derived port
	SourceRoot string `toml:"source_root"` // directory whose env file seeds fresh worktrees
}

// Defaults for unset config values
const (
	DefaultEnvFile = ".env"
	DefaultPortKey = "APP_PORT"
)

// Default returns the default configuration
func Default() Config {
	return Config{
		EnvFile: DefaultEnvFile,
		PortKey: DefaultPortKey,
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	// Allow ~ paths
	if len(path) >= 1 && path[0] == '~' {
		return nil
	}
	// Must be absolute
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// validateEnvFile checks that the value is a bare file name, since it is
// resolved relative to each worktree root.
func validateEnvFile(name, fieldName string) error {
	if name == "" {
		return nil
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("%s must be a bare file name, got: %q", fieldName, name)
	}
	return nil
}

// validatePortKey checks that the value is a valid env var name.
func validatePortKey(key, fieldName string) error {
	if key == "" {
		return nil
	}
	for i, r := range key {
		ok := r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (i > 0 && r >= '0' && r <= '9')
		if !ok {
			return fmt.Errorf("%s must be a valid env var name, got: %q", fieldName, key)
		}
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the global config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wtp", "config.toml"), nil
}

// Load reads config from ~/.config/wtp/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return loadFile(path)
}

// loadFile reads and validates a global config file. Split from Load so
// tests can point it at a temp file.
func loadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var parsed Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateEnvFile(parsed.EnvFile, "env_file"); err != nil {
		return Default(), err
	}
	if err := validatePortKey(parsed.PortKey, "port_key"); err != nil {
		return Default(), err
	}
	if err := ValidatePath(parsed.SourceRoot, "source_root"); err != nil {
		return Default(), err
	}

	// Expand ~ in source_root (shell doesn't expand in config files)
	if parsed.SourceRoot != "" {
		expanded, err := expandPath(parsed.SourceRoot)
		if err != nil {
			return Default(), fmt.Errorf("expand source_root: %w", err)
		}
		cfg.SourceRoot = expanded
	}

	// Use defaults for empty values
	if parsed.EnvFile != "" {
		cfg.EnvFile = parsed.EnvFile
	}
	if parsed.PortKey != "" {
		cfg.PortKey = parsed.PortKey
	}

	return cfg, nil
}

const defaultConfig = `# wtp configuration

# Name of the env file managed in each worktree.
# Must be a bare file name; it is resolved relative to the worktree root.
# env_file = ".env"

# Key written with the derived port.
# port_key = "APP_PORT"

# Directory whose env file seeds fresh worktrees.
# Must be an absolute path or start with ~ (no relative paths like "." or "..").
# The WTP_SOURCE_ROOT environment variable and the --source-root flag
# take precedence over this setting.
# source_root = "~/Git/app"
`

// DefaultGlobalConfig returns the default global config file content.
func DefaultGlobalConfig() string {
	return defaultConfig
}

// Init creates a default config file at ~/.config/wtp/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	// Check if file already exists (skip if force)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	// Create directory
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	// Write default config
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}
