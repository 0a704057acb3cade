package main

import (
	"path/filepath"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kevinmaes/worktree-ports/internal/config"
	"github.com/kevinmaes/worktree-ports/internal/log"
	"github.com/kevinmaes/worktree-ports/internal/output"
	"github.com/kevinmaes/worktree-ports/internal/port"
)

func newPortCmd() *cobra.Command {
	var (
		export          bool
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "port [name]",
		Short:   "Print the port derived from a worktree name",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Print the port derived from a worktree name.

Without an argument the current directory's name is used. The port is a
pure function of the name: no files are read or written, and the same
name yields the same port on every machine.`,
		Example: `  wtp port                     # Port for the current worktree
  wtp port feature-x           # Port for any worktree name
  wtp port --export            # KEY=port line for the configured key
  PORT=$(wtp port) npm run dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				name = filepath.Base(config.WorkDirFromContext(ctx))
			}

			p := port.ForName(name)

			if copyToClipboard {
				l := log.FromContext(ctx)
				if err := clipboard.WriteAll(strconv.Itoa(p)); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}

			if export {
				resolver := config.ResolverFromContext(ctx)
				wtCfg, err := resolver.ConfigForWorktree(config.WorkDirFromContext(ctx))
				if err != nil {
					wtCfg = resolver.Global()
				}
				out.KeyValue(wtCfg.PortKey, p)
				return nil
			}

			out.Println(p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "Print as KEY=port using the configured key")
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the port to the clipboard")

	cmd.ValidArgsFunction = completeWorktreeNames

	return cmd
}
