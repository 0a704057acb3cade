package main

import (
	"github.com/spf13/cobra"

	"github.com/kevinmaes/worktree-ports/internal/config"
	"github.com/kevinmaes/worktree-ports/internal/doctor"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair port assignments",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose and repair port assignments across the repo's worktrees.

Checks:
- git is installed and the current directory is inside a work tree
- Each env file carries the derived port (no drift, no missing key)
- No key appears on more than one line of an env file
- No two worktrees derive the same port

Worktrees without an env file are reported but never created.`,
		Example: `  wtp doctor          # Check for issues
  wtp doctor --fix    # Repair env files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resolver := config.ResolverFromContext(ctx)
			dir := config.WorkDirFromContext(ctx)

			return doctor.Run(ctx, dir, resolver, fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Fix issues automatically")

	return cmd
}
