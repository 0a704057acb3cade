package doctor

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kevinmaes/worktree-ports/internal/git"
	"github.com/kevinmaes/worktree-ports/internal/worktree"
)

// checkEnvironment verifies git is usable from the working directory.
// The second return is false when the worktree checks cannot proceed.
func checkEnvironment(ctx context.Context, workDir string) ([]Issue, bool) {
	if err := git.CheckGit(); err != nil {
		return []Issue{{
			Description: "git not found in PATH",
			Severity:    SeverityError,
		}}, false
	}

	if !git.IsInsideRepoPath(ctx, workDir) {
		return []Issue{{
			Description: fmt.Sprintf("%s is not inside a git work tree", workDir),
			Severity:    SeverityError,
		}}, false
	}

	return nil, true
}

// checkWorktrees turns inspection results into issues.
func checkWorktrees(infos []worktree.Info) []Issue {
	var issues []Issue

	for _, info := range infos {
		switch info.Status {
		case worktree.StatusNoFile:
			issues = append(issues, Issue{
				Worktree:    info.Name,
				Description: fmt.Sprintf("no %s file (run assignment skips this worktree)", filepath.Base(info.EnvPath)),
				Severity:    SeverityWarning,
			})

		case worktree.StatusNoKey:
			issues = append(issues, Issue{
				Worktree:    info.Name,
				Description: fmt.Sprintf("%s missing from %s", info.Key, filepath.Base(info.EnvPath)),
				Severity:    SeverityWarning,
				FixAction:   "add_key",
				EnvPath:     info.EnvPath,
				Key:         info.Key,
				Port:        info.Port,
			})

		case worktree.StatusDrift:
			issues = append(issues, Issue{
				Worktree:    info.Name,
				Description: fmt.Sprintf("%s=%s, derived port is %d", info.Key, info.Stored, info.Port),
				Severity:    SeverityWarning,
				FixAction:   "update_key",
				EnvPath:     info.EnvPath,
				Key:         info.Key,
				Port:        info.Port,
			})
		}

		for _, key := range info.Duplicates {
			issue := Issue{
				Worktree:    info.Name,
				Description: fmt.Sprintf("%s appears on multiple lines", key),
				Severity:    SeverityWarning,
			}
			// Only the assigned key is collapsed by a fix; other
			// duplicated keys are left alone.
			if key == info.Key {
				issue.FixAction = "collapse_duplicates"
				issue.EnvPath = info.EnvPath
				issue.Key = info.Key
				issue.Port = info.Port
			}
			issues = append(issues, issue)
		}
	}

	return issues
}

// checkCollisions reports ports derived by more than one worktree
// name. Nothing fixes these: the hash is deterministic.
func checkCollisions(infos []worktree.Info) []Issue {
	collisions := worktree.Collisions(infos)

	ports := make([]int, 0, len(collisions))
	for p := range collisions {
		ports = append(ports, p)
	}
	sort.Ints(ports)

	var issues []Issue
	for _, p := range ports {
		issues = append(issues, Issue{
			Description: fmt.Sprintf("port %d derived by %s", p, strings.Join(collisions[p], ", ")),
			Severity:    SeverityWarning,
		})
	}
	return issues
}

