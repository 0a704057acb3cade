package main

import (
	"github.com/spf13/cobra"

	"github.com/kevinmaes/worktree-ports/internal/assign"
	"github.com/kevinmaes/worktree-ports/internal/config"
	"github.com/kevinmaes/worktree-ports/internal/git"
	"github.com/kevinmaes/worktree-ports/internal/log"
	"github.com/kevinmaes/worktree-ports/internal/output"
)

type assignOptions struct {
	sourceRoot string
	all        bool
}

func newAssignCmd() *cobra.Command {
	var opts assignOptions

	cmd := &cobra.Command{
		Use:     "assign",
		Short:   "Write the derived port into the worktree's env file",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Write the derived port into the current worktree's env file.

If the worktree has no env file yet, one is first copied from a source:
the --source-root flag, the WTP_SOURCE_ROOT environment variable, the
configured source_root, or the repo's primary worktree, in that order.
Worktrees that end up without an env file are skipped, never seeded
from nothing.

Prints the assignment when the env file changes; a stable file produces
no output, so the command is safe to run from shell hooks on every
directory change.`,
		Example: `  wtp assign                       # Assign port for the current worktree
  wtp assign --source-root ~/app   # Seed fresh env files from ~/app
  wtp assign --all                 # Assign ports for every worktree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssign(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.sourceRoot, "source-root", "", "Directory whose env file seeds fresh worktrees")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Assign ports for every worktree of the repo")

	return cmd
}

// runAssign implements both "wtp" and "wtp assign".
func runAssign(cmd *cobra.Command, opts assignOptions) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)
	resolver := config.ResolverFromContext(ctx)
	dir := config.WorkDirFromContext(ctx)

	lister := git.RepoLister{Dir: dir}

	if opts.all {
		return runAssignAll(cmd, lister, resolver)
	}

	wtCfg, err := resolver.ConfigForWorktree(dir)
	if err != nil {
		l.Printf("Warning: %v\n", err)
		wtCfg = resolver.Global()
	}

	// Precedence: flag, then environment, then config
	sourceRoot := opts.sourceRoot
	if sourceRoot == "" {
		sourceRoot = envSourceRoot
	}
	if sourceRoot == "" {
		sourceRoot = wtCfg.SourceRoot
	}

	res, err := assign.Run(ctx, assign.Params{
		WorkDir:      dir,
		OverrideRoot: sourceRoot,
		EnvFile:      wtCfg.EnvFile,
		Key:          wtCfg.PortKey,
		Lister:       lister,
	})
	if err != nil {
		return err
	}

	if res.Skipped {
		l.Printf("No %s in %s, nothing to assign\n", wtCfg.EnvFile, res.Name)
		return nil
	}
	if res.Copied {
		l.Printf("Seeded %s from %s\n", res.EnvPath, res.Source.Path)
	}
	if res.Changed {
		out.Printf("%s: %s=%d\n", res.Name, wtCfg.PortKey, res.Port)
	}

	return nil
}

// runAssignAll assigns ports across every worktree of the repo.
func runAssignAll(cmd *cobra.Command, lister git.RepoLister, resolver *config.ConfigResolver) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	results, err := assign.RunAll(ctx, lister, resolver)
	if err != nil {
		return err
	}

	for _, r := range results {
		switch {
		case r.Err != nil:
			l.Printf("Warning: %s: %v\n", r.Name, r.Err)
		case r.Skipped:
			out.Printf("%s: skipped (no env file)\n", r.Name)
		case r.Changed:
			out.Printf("%s: %s=%d\n", r.Name, r.Key, r.Port)
		default:
			out.Printf("%s: %s=%d (unchanged)\n", r.Name, r.Key, r.Port)
		}
	}

	return nil
}
