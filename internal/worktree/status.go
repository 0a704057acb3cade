// Package worktree inspects linked worktrees and the env files they
// carry. The resulting Info values back the list table, the picker
// and the doctor checks.
package worktree

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/kevinmaes/worktree-ports/internal/config"
	"github.com/kevinmaes/worktree-ports/internal/envfile"
	"github.com/kevinmaes/worktree-ports/internal/git"
	"github.com/kevinmaes/worktree-ports/internal/port"
)

// EnvStatus classifies the state of a worktree's env file.
type EnvStatus string

const (
	StatusOK     EnvStatus = "ok"      // key present with the derived port
	StatusDrift  EnvStatus = "drift"   // key present with a different value
	StatusNoKey  EnvStatus = "no key"  // env file exists, key missing
	StatusNoFile EnvStatus = "no file" // no env file
)

// Info describes one worktree and the state of its env file.
type Info struct {
	Path       string
	Name       string
	Branch     string
	Port       int
	Key        string // key checked, per that worktree's config
	EnvPath    string
	Stored     string // stored value, empty when absent
	Status     EnvStatus
	Duplicates []string // keys appearing on more than one line
}

// Inspect lists the repository's worktrees and checks each env file.
// Per-worktree config overrides apply, so different worktrees may be
// checked against different file names and keys.
func Inspect(ctx context.Context, repoDir string, resolver *config.ConfigResolver) ([]Info, error) {
	wts, err := git.ListWorktreesFromRepo(ctx, repoDir)
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(wts))
	for _, wt := range wts {
		cfg, err := resolver.ConfigForWorktree(wt.Path)
		if err != nil {
			return nil, err
		}
		info, err := InspectOne(wt, cfg)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// InspectOne checks a single worktree's env file against its derived
// port.
func InspectOne(wt git.WorktreeInfo, cfg *config.Config) (Info, error) {
	name := filepath.Base(wt.Path)
	info := Info{
		Path:    wt.Path,
		Name:    name,
		Branch:  wt.Branch,
		Port:    port.ForName(name),
		Key:     cfg.PortKey,
		EnvPath: filepath.Join(wt.Path, cfg.EnvFile),
	}

	if !envfile.Exists(info.EnvPath) {
		info.Status = StatusNoFile
		return info, nil
	}

	f, err := envfile.Load(info.EnvPath)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read %s: %w", info.EnvPath, err)
	}
	info.Duplicates = f.Duplicates()

	value, ok := f.Get(cfg.PortKey)
	if !ok {
		info.Status = StatusNoKey
		return info, nil
	}
	info.Stored = value

	if value == strconv.Itoa(info.Port) {
		info.Status = StatusOK
	} else {
		info.Status = StatusDrift
	}
	return info, nil
}

// Collisions returns ports derived by more than one worktree name,
// with the names that share them. Collisions are reported, never
// resolved.
func Collisions(infos []Info) map[int][]string {
	byPort := make(map[int][]string)
	for _, info := range infos {
		byPort[info.Port] = append(byPort[info.Port], info.Name)
	}
	for p, names := range byPort {
		if len(names) < 2 {
			delete(byPort, p)
		}
	}
	return byPort
}
