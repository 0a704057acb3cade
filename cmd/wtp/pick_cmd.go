package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kevinmaes/worktree-ports/internal/config"
	"github.com/kevinmaes/worktree-ports/internal/log"
	"github.com/kevinmaes/worktree-ports/internal/output"
	"github.com/kevinmaes/worktree-ports/internal/ui"
	"github.com/kevinmaes/worktree-ports/internal/worktree"
)

func newPickCmd() *cobra.Command {
	var (
		export          bool
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "pick",
		Short:   "Interactively pick a worktree and print its port",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Interactively pick a worktree and print its port.

The picker renders on stderr, so the selected port on stdout can be
captured with command substitution. Cancelling exits with status 1.`,
		Example: `  wtp pick                       # Fuzzy-pick a worktree
  PORT=$(wtp pick) npm run dev   # Use the picked port
  wtp pick --copy                # Also copy the port to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			resolver := config.ResolverFromContext(ctx)
			dir := config.WorkDirFromContext(ctx)

			if !stdinIsTerminal() {
				return fmt.Errorf("pick needs an interactive terminal (use 'wtp list' in scripts)")
			}

			infos, err := worktree.Inspect(ctx, dir, resolver)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				return fmt.Errorf("no worktrees found")
			}

			result, err := ui.PickWorktree(infos)
			if err != nil {
				return err
			}
			if result.Cancelled {
				os.Exit(1)
			}

			if copyToClipboard {
				l := log.FromContext(ctx)
				if err := clipboard.WriteAll(strconv.Itoa(result.Info.Port)); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}

			if export {
				out.KeyValue(result.Info.Key, result.Info.Port)
				return nil
			}

			out.Println(result.Info.Port)
			return nil
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "Print as KEY=port using the configured key")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the port to the clipboard")

	return cmd
}
