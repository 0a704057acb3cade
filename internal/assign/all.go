package assign

import (
	"context"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/kevinmaes/worktree-ports/internal/config"
	"github.com/kevinmaes/worktree-ports/internal/envfile"
	"github.com/kevinmaes/worktree-ports/internal/log"
	"github.com/kevinmaes/worktree-ports/internal/port"
	"github.com/kevinmaes/worktree-ports/internal/resolve"
)

// WorktreeResult reports the outcome for one worktree of a RunAll.
type WorktreeResult struct {
	Path    string
	Name    string
	Port    int
	Key     string // key upserted, per that worktree's config
	Changed bool
	Skipped bool  // no env file, nothing written
	Err     error // read or write failure
}

// RunAll upserts each linked worktree's derived port into its existing
// env file, in parallel. Worktrees without an env file are skipped,
// never seeded. Results keep the worktree listing order; per-worktree
// failures are collected in the result rather than aborting the rest.
func RunAll(ctx context.Context, lister resolve.WorktreeLister, resolver *config.ConfigResolver) ([]WorktreeResult, error) {
	paths, err := lister.ListLinkedWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	// Resolve configs up front: the resolver cache is not safe for
	// concurrent writes.
	configs := make([]*config.Config, len(paths))
	for i, p := range paths {
		cfg, err := resolver.ConfigForWorktree(p)
		if err != nil {
			return nil, err
		}
		configs[i] = cfg
	}

	results := make([]WorktreeResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8) // Bound concurrent file rewrites

	for i, p := range paths {
		g.Go(func() error {
			results[i] = assignOne(ctx, p, configs[i])
			return nil // Failures are per-worktree, never fatal
		})
	}

	_ = g.Wait()

	return results, nil
}

// assignOne upserts the derived port for a single worktree.
func assignOne(ctx context.Context, path string, cfg *config.Config) WorktreeResult {
	l := log.FromContext(ctx)

	res := WorktreeResult{
		Path: path,
		Name: filepath.Base(path),
		Key:  cfg.PortKey,
	}
	res.Port = port.ForName(res.Name)

	envPath := filepath.Join(path, cfg.EnvFile)
	if !envfile.Exists(envPath) {
		l.Debug("no env file, skipping", "worktree", res.Name)
		res.Skipped = true
		return res
	}

	f, err := envfile.Load(envPath)
	if err != nil {
		res.Err = err
		return res
	}
	if f.Upsert(cfg.PortKey, strconv.Itoa(res.Port)) {
		if err := f.Save(); err != nil {
			res.Err = err
			return res
		}
		res.Changed = true
	}

	l.Debug("assigned port", "worktree", res.Name, "port", res.Port, "changed", res.Changed)
	return res
}
