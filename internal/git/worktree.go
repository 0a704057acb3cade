package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// WorktreeInfo contains basic worktree information from git worktree list.
type WorktreeInfo struct {
	Path       string
	Branch     string
	CommitHash string // Full hash from git, caller can truncate
}

// ListWorktreesFromRepo returns all worktrees of the repo containing dir,
// using git worktree list --porcelain. Git lists the main worktree first,
// followed by linked worktrees in creation order.
func ListWorktreesFromRepo(ctx context.Context, dir string) ([]WorktreeInfo, error) {
	output, err := outputGit(ctx, dir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %v", err)
	}
	return parseWorktreeList(string(output)), nil
}

// parseWorktreeList parses `git worktree list --porcelain` output.
// Entries are blocks separated by blank lines:
//
//	worktree /path/to/wt
//	HEAD abcdef...
//	branch refs/heads/main
func parseWorktreeList(output string) []WorktreeInfo {
	var worktrees []WorktreeInfo
	var current WorktreeInfo

	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			// Start of new worktree entry
			if current.Path != "" {
				worktrees = append(worktrees, current)
			}
			current = WorktreeInfo{Path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "HEAD "):
			current.CommitHash = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch refs/heads/"):
			current.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		case line == "detached":
			current.Branch = "(detached)"
		}
	}

	// Don't forget the last entry
	if current.Path != "" {
		worktrees = append(worktrees, current)
	}

	return worktrees
}

// GetRepoRoot returns the top-level directory of the worktree containing dir.
func GetRepoRoot(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// GetCurrentBranch returns the current branch name of the worktree at path.
// Returns "(detached)" for detached HEAD state.
func GetCurrentBranch(ctx context.Context, path string) (string, error) {
	output, err := outputGit(ctx, path, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get branch: %v", err)
	}
	branch := strings.TrimSpace(string(output))
	if branch == "" {
		return "(detached)", nil
	}
	return branch, nil
}

// RepoLister lists the worktree paths of the repository containing Dir.
// It satisfies the worktree lister capability consumed during source
// resolution; tests substitute fakes.
type RepoLister struct {
	Dir string
}

// ListLinkedWorktrees returns the ordered worktree paths of the repo,
// main worktree first. Paths are cleaned but not resolved.
func (r RepoLister) ListLinkedWorktrees(ctx context.Context) ([]string, error) {
	worktrees, err := ListWorktreesFromRepo(ctx, r.Dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(worktrees))
	for _, wt := range worktrees {
		paths = append(paths, filepath.Clean(wt.Path))
	}
	return paths, nil
}
