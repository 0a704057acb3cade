package main

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/kevinmaes/worktree-ports/internal/config"
	"github.com/kevinmaes/worktree-ports/internal/log"
	"github.com/kevinmaes/worktree-ports/internal/output"
	"github.com/kevinmaes/worktree-ports/internal/ui/static"
	"github.com/kevinmaes/worktree-ports/internal/worktree"
)

// WorktreeDisplay holds worktree info for display
type WorktreeDisplay struct {
	Name   string `json:"name"`
	Branch string `json:"branch"`
	Path   string `json:"path"`
	Port   int    `json:"port"`
	Key    string `json:"key"`
	Value  string `json:"value,omitempty"`
	Status string `json:"status"`
}

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		filter     string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees with their ports and env status",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the repo's worktrees with their derived ports.

The ENV column shows whether each worktree's env file carries the
derived port: ok, drift (a different value is stored), no key, or
no file. Output is a table on a terminal and tab-separated lines
when piped.`,
		Example: `  wtp list                 # List worktrees for the current repo
  wtp list -f feat         # Fuzzy filter by name
  wtp list --json          # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			resolver := config.ResolverFromContext(ctx)
			dir := config.WorkDirFromContext(ctx)

			infos, err := worktree.Inspect(ctx, dir, resolver)
			if err != nil {
				return err
			}

			if filter != "" {
				names := make([]string, len(infos))
				for i, info := range infos {
					names[i] = info.Name
				}
				matches := fuzzy.Find(filter, names)
				filtered := make([]worktree.Info, 0, len(matches))
				for _, m := range matches {
					filtered = append(filtered, infos[m.Index])
				}
				infos = filtered
			}

			l.Debug("listing worktrees", "count", len(infos))

			if jsonOutput {
				display := make([]WorktreeDisplay, 0, len(infos))
				for _, info := range infos {
					display = append(display, WorktreeDisplay{
						Name:   info.Name,
						Branch: info.Branch,
						Path:   info.Path,
						Port:   info.Port,
						Key:    info.Key,
						Value:  info.Stored,
						Status: string(info.Status),
					})
				}
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(display)
			}

			if len(infos) == 0 {
				out.Println("No worktrees found")
				return nil
			}

			rows := make([][]string, 0, len(infos))
			if stdoutIsTerminal() {
				for _, info := range infos {
					rows = append(rows, static.WorktreeTableRow(info))
				}
				out.Print(static.RenderTable(static.WorktreeHeaders, rows))
			} else {
				for _, info := range infos {
					rows = append(rows, static.WorktreePlainRow(info))
				}
				out.Print(static.RenderPlainRows(rows))
			}

			// Surface ports shared by differently named worktrees
			collisions := worktree.Collisions(infos)
			ports := make([]int, 0, len(collisions))
			for p := range collisions {
				ports = append(ports, p)
			}
			sort.Ints(ports)
			for _, p := range ports {
				l.Printf("Warning: port %d derived by %s\n", p, strings.Join(collisions[p], ", "))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Fuzzy filter worktrees by name")

	return cmd
}
