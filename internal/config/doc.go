// Package config handles loading and validation of wtp configuration.
//
// Configuration is read from ~/.config/wtp/config.toml, with per-worktree
// overrides from a .wtp.toml file at the worktree root.
//
// # Configuration Sources (highest priority first)
//
//   - --source-root flag
//   - WTP_SOURCE_ROOT env var (read once at startup)
//   - .wtp.toml at the worktree root
//   - ~/.config/wtp/config.toml
//   - Default values
//
// # Key Settings
//
//   - env_file: Name of the env file managed in each worktree (default ".env")
//   - port_key: Key written with the derived port (default "APP_PORT")
//   - source_root: Directory whose env file seeds fresh worktrees
//
// # Path Validation
//
// source_root must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory. env_file must be
// a bare file name because it is resolved relative to each worktree root.
package config
