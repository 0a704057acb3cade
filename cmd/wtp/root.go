package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kevinmaes/worktree-ports/internal/config"
	"github.com/kevinmaes/worktree-ports/internal/git"
	"github.com/kevinmaes/worktree-ports/internal/log"
	"github.com/kevinmaes/worktree-ports/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg     *config.Config
	workDir string

	// WTP_SOURCE_ROOT, read once at startup
	envSourceRoot string
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// rootCmd represents the base command. Without a subcommand it runs the
// port assignment for the current worktree, so shell hooks can call
// plain "wtp" on every directory change.
var rootCmd = &cobra.Command{
	Use:   "wtp",
	Short: "Deterministic per-worktree ports in env files",
	Long: `wtp derives a stable port from the worktree directory name and keeps it
in the worktree's env file.

The same name always yields the same port, so every checkout of a branch
gets its dev server port without coordination. Fresh worktrees are seeded
from a source env file before the port is written.

Called without a subcommand, wtp assigns the port for the current
worktree, same as 'wtp assign'.`,
	Example: `  wtp                      # Assign port for the current worktree
  wtp port                 # Print the current worktree's port
  wtp list                 # Show worktrees, ports and env status`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	Args:                       cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip wiring for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		ctx := cmd.Context()

		// Logger is built here, after flag parsing, so -v and -q apply
		logger := log.New(os.Stderr, verbose, quiet)
		ctx = log.WithLogger(ctx, logger)

		// Output printer (stdout for primary data)
		ctx = output.WithPrinter(ctx, os.Stdout)

		ctx = config.WithConfig(ctx, cfg)
		ctx = config.WithWorkDir(ctx, workDir)
		ctx = config.WithResolver(ctx, config.NewResolver(cfg))

		cmd.SetContext(ctx)

		// Commands that touch worktrees need git on PATH. doctor reports
		// a missing git itself instead of failing here.
		switch cmd.Name() {
		case "wtp", "assign", "list", "pick":
			return git.CheckGit()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssign(cmd, assignOptions{})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	// Get working directory
	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wtp: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Environment is read once here, at the process boundary
	envSourceRoot = os.Getenv("WTP_SOURCE_ROOT")

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'wtp -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show what is being resolved and written")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newAssignCmd())
	rootCmd.AddCommand(newPortCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newPickCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newCompletionCmd())
}
