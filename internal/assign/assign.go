// Package assign implements the end-to-end port assignment flow: seed
// the worktree's env file from a resolved source, then upsert the
// derived port into it.
package assign

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/kevinmaes/worktree-ports/internal/envfile"
	"github.com/kevinmaes/worktree-ports/internal/log"
	"github.com/kevinmaes/worktree-ports/internal/port"
	"github.com/kevinmaes/worktree-ports/internal/resolve"
)

// Params carries the inputs for a single assignment run.
type Params struct {
	WorkDir      string // worktree directory the port is assigned in
	OverrideRoot string // source root override, empty for none
	EnvFile      string // env file name, e.g. ".env"
	Key          string // key to upsert, e.g. "APP_PORT"
	Lister       resolve.WorktreeLister
}

// Result reports what a run did.
type Result struct {
	Name    string // worktree name the port was derived from
	Port    int
	EnvPath string
	Source  resolve.Source
	Copied  bool // the source file was copied over the local one
	Changed bool // the env file content changed
	Skipped bool // no env file existed, nothing was written
}

// Run resolves a source env file, copies it into the worktree and
// upserts the derived port. A missing env file skips the run instead
// of creating one; only copy and write failures are errors.
func Run(ctx context.Context, p Params) (*Result, error) {
	l := log.FromContext(ctx)

	name := filepath.Base(p.WorkDir)
	res := &Result{
		Name:    name,
		Port:    port.ForName(name),
		EnvPath: filepath.Join(p.WorkDir, p.EnvFile),
	}

	res.Source = resolve.Find(ctx, p.Lister, p.WorkDir, p.OverrideRoot, p.EnvFile)
	if res.Source.Origin != resolve.OriginNone && !resolve.SamePath(res.Source.Path, res.EnvPath) {
		if err := resolve.Copy(res.Source.Path, res.EnvPath); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", res.Source.Path, err)
		}
		res.Copied = true
		l.Debug("seeded env file", "from", res.Source.Path, "origin", res.Source.Origin)
	}

	if !envfile.Exists(res.EnvPath) {
		l.Debug("no env file, skipping", "path", res.EnvPath)
		res.Skipped = true
		return res, nil
	}

	f, err := envfile.Load(res.EnvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", res.EnvPath, err)
	}
	if f.Upsert(p.Key, strconv.Itoa(res.Port)) {
		if err := f.Save(); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", res.EnvPath, err)
		}
		res.Changed = true
	}

	l.Debug("assigned port", "worktree", name, "port", res.Port, "changed", res.Changed)
	return res, nil
}
