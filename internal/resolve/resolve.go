package resolve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kevinmaes/worktree-ports/internal/log"
)

// Origin identifies which candidate produced a resolved source.
type Origin string

const (
	// OriginOverride means the source came from the configured override root.
	OriginOverride Origin = "override"
	// OriginPrimary means the source came from the repo's primary worktree.
	OriginPrimary Origin = "primary"
	// OriginNone means no source resolved.
	OriginNone Origin = "none"
)

// Source is the result of resolution. Path is empty when Origin is OriginNone.
type Source struct {
	Path   string
	Origin Origin
}

// WorktreeLister lists the ordered worktree paths of a repository, main
// worktree first. Production code uses git; tests substitute fakes.
type WorktreeLister interface {
	ListLinkedWorktrees(ctx context.Context) ([]string, error)
}

// Find resolves the source env file for the worktree at workDir.
// overrideRoot, when non-empty, is consulted before the primary worktree.
// Find never fails: listing errors and missing candidates degrade to
// OriginNone, with diagnostics through the context logger.
func Find(ctx context.Context, lister WorktreeLister, workDir, overrideRoot, envFile string) Source {
	l := log.FromContext(ctx)

	if overrideRoot != "" {
		candidate := filepath.Join(overrideRoot, envFile)
		if fileExists(candidate) {
			l.Debug("resolve: override root hit", "path", candidate)
			return Source{Path: candidate, Origin: OriginOverride}
		}
		l.Printf("Warning: source root %s has no %s, trying worktrees\n", overrideRoot, envFile)
	}

	paths, err := lister.ListLinkedWorktrees(ctx)
	if err != nil {
		l.Debug("resolve: worktree listing failed", "error", err)
		return Source{Origin: OriginNone}
	}

	primary := primarySibling(paths, workDir)
	if primary == "" {
		l.Debug("resolve: no sibling worktree")
		return Source{Origin: OriginNone}
	}

	candidate := filepath.Join(primary, envFile)
	if fileExists(candidate) {
		l.Debug("resolve: primary worktree hit", "path", candidate)
		return Source{Path: candidate, Origin: OriginPrimary}
	}

	l.Debug("resolve: primary worktree has no env file", "worktree", primary, "file", envFile)
	return Source{Origin: OriginNone}
}

// primarySibling returns the first listed worktree whose path differs
// from workDir, or "" if every entry is the current worktree.
func primarySibling(paths []string, workDir string) string {
	for _, p := range paths {
		if !SamePath(p, workDir) {
			return p
		}
	}
	return ""
}

// Copy copies src over dst verbatim, creating or replacing dst. The
// write goes through a temp file and rename so a failed copy leaves any
// existing dst untouched. Copying a file onto itself is a no-op.
func Copy(src, dst string) error {
	if SamePath(src, dst) {
		return nil
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	tempPath := dst + ".tmp"
	if err := os.WriteFile(tempPath, data, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, dst); err != nil {
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	return nil
}

// fileExists reports whether path is an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// SamePath compares two paths after cleaning and, when possible, symlink
// resolution. Worktree paths from git are fully resolved while the
// working directory may arrive through a symlink (macOS /var).
func SamePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ra, errA := filepath.EvalSymlinks(a)
	rb, errB := filepath.EvalSymlinks(b)
	if errA != nil || errB != nil {
		return false
	}
	return ra == rb
}
