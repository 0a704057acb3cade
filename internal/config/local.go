package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-worktree config file, looked up at the
// worktree root.
const LocalConfigFileName = ".wtp.toml"

// LocalConfig holds per-repo configuration overrides from .wtp.toml.
// Zero-value strings indicate "not set" (inherit from global).
type LocalConfig struct {
	EnvFile    string `toml:"env_file"`
	PortKey    string `toml:"port_key"`
	SourceRoot string `toml:"source_root"`
}

// LoadLocal reads a per-repo .wtp.toml config from the given worktree root.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if err := validateEnvFile(local.EnvFile, "env_file"); err != nil {
		return nil, fmt.Errorf("%s: %w", configFile, err)
	}
	if err := validatePortKey(local.PortKey, "port_key"); err != nil {
		return nil, fmt.Errorf("%s: %w", configFile, err)
	}
	if err := ValidatePath(local.SourceRoot, "source_root"); err != nil {
		return nil, fmt.Errorf("%s: %w", configFile, err)
	}

	if local.SourceRoot != "" {
		expanded, err := expandPath(local.SourceRoot)
		if err != nil {
			return nil, fmt.Errorf("expand source_root in %s: %w", configFile, err)
		}
		local.SourceRoot = expanded
	}

	return &local, nil
}

// defaultLocalConfig is the template for wtp config init --local
const defaultLocalConfig = `# wtp local config (per-repo overrides)
# Place this file at the root of the worktree.
# Settings here override the global ~/.config/wtp/config.toml for this repo only.

# env_file = ".env.development"

# port_key = "PORT"

# source_root = "~/Git/app"
`

// DefaultLocalConfig returns the default local configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}
