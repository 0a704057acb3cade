package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kevinmaes/worktree-ports/internal/config"
	"github.com/kevinmaes/worktree-ports/internal/git"
)

// completeWorktreeNames completes positional args with the names of the
// current repo's worktrees.
func completeWorktreeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := cmd.Context()
	dir := config.WorkDirFromContext(ctx)

	worktrees, err := git.ListWorktreesFromRepo(ctx, dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names := make([]string, 0, len(worktrees))
	for _, wt := range worktrees {
		names = append(names, filepath.Base(wt.Path))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
