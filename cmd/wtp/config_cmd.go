package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kevinmaes/worktree-ports/internal/config"
	"github.com/kevinmaes/worktree-ports/internal/log"
	"github.com/kevinmaes/worktree-ports/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage wtp configuration.

Global config: ~/.config/wtp/config.toml
Local config:  .wtp.toml (at the worktree root)`,
		Example: `  wtp config init          # Create default global config
  wtp config init --local  # Create local .wtp.toml
  wtp config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates global config at ~/.config/wtp/config.toml.
With --local, creates per-repo config at .wtp.toml in the current
worktree.`,
		Example: `  wtp config init           # Create global config
  wtp config init --local   # Create local .wtp.toml
  wtp config init -f        # Overwrite existing config
  wtp config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if local {
				return initLocalConfig(cmd, force, stdout)
			}
			return initGlobalConfig(cmd, force, stdout)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-repo .wtp.toml instead of global config")

	return cmd
}

func initGlobalConfig(cmd *cobra.Command, force, stdout bool) error {
	out := output.FromContext(cmd.Context())

	if stdout {
		out.Print(config.DefaultGlobalConfig())
		return nil
	}

	path, err := config.Init(force)
	if err != nil {
		return err
	}

	out.Printf("Created config file: %s\n", path)
	return nil
}

func initLocalConfig(cmd *cobra.Command, force, stdout bool) error {
	out := output.FromContext(cmd.Context())

	if stdout {
		out.Print(config.DefaultLocalConfig())
		return nil
	}

	dir := config.WorkDirFromContext(cmd.Context())
	configPath := filepath.Join(dir, config.LocalConfigFileName)

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("local config already exists: %s (use -f to overwrite)", configPath)
		}
	}

	if err := os.WriteFile(configPath, []byte(config.DefaultLocalConfig()), 0644); err != nil {
		return err
	}

	out.Printf("Created local config: %s\n", configPath)
	return nil
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Shows the merged config for the current worktree with source
annotations (global vs local).`,
		Example: `  wtp config show          # Show effective config
  wtp config show --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			globalCfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			dir := config.WorkDirFromContext(ctx)

			local, err := config.LoadLocal(dir)
			if err != nil {
				l.Printf("Warning: %v (using global config)\n", err)
			}
			eff := config.MergeLocal(globalCfg, local)

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(eff)
			}

			out.Printf("Global config: ~/.config/wtp/config.toml\n")
			if local != nil {
				out.Printf("Local config:  %s\n", filepath.Join(dir, config.LocalConfigFileName))
			} else {
				out.Printf("Local config:  (none)\n")
			}
			out.Println()

			// Helper to annotate source
			source := func(isLocal bool) string {
				if isLocal {
					return " (local)"
				}
				return ""
			}

			sourceRoot := eff.SourceRoot
			if sourceRoot == "" {
				sourceRoot = "(not set)"
			}

			out.Printf("env_file: %s%s\n", eff.EnvFile, source(local != nil && local.EnvFile != ""))
			out.Printf("port_key: %s%s\n", eff.PortKey, source(local != nil && local.PortKey != ""))
			out.Printf("source_root: %s%s\n", sourceRoot, source(local != nil && local.SourceRoot != ""))
			if envSourceRoot != "" {
				out.Printf("WTP_SOURCE_ROOT: %s (overrides source_root)\n", envSourceRoot)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
