package doctor

import (
	"context"

	"github.com/kevinmaes/worktree-ports/internal/config"
	"github.com/kevinmaes/worktree-ports/internal/output"
	"github.com/kevinmaes/worktree-ports/internal/worktree"
)

// Run performs environment and per-worktree checks and optionally
// fixes the issues a rewrite can fix.
func Run(ctx context.Context, workDir string, resolver *config.ConfigResolver, fix bool) error {
	p := output.FromContext(ctx)

	p.Println("Checking environment...")
	issues, usable := checkEnvironment(ctx, workDir)

	var infos []worktree.Info
	if usable {
		p.Println("Checking worktrees...")
		var err error
		infos, err = worktree.Inspect(ctx, workDir, resolver)
		if err != nil {
			return err
		}
		issues = append(issues, checkWorktrees(infos)...)
		issues = append(issues, checkCollisions(infos)...)
	}

	printSummary(p, collectStats(infos, issues))

	if len(issues) == 0 {
		p.Println("\n✓ No issues found")
		return nil
	}

	p.Printf("\nFound %d issues:\n", len(issues))
	printIssues(p, issues)

	if fix {
		return fixAllIssues(ctx, issues)
	}

	if countFixable(issues) > 0 {
		p.Println("\nRun 'wtp doctor --fix' to repair.")
	}
	return nil
}

// collectStats aggregates counts for the summary.
func collectStats(infos []worktree.Info, issues []Issue) Stats {
	var stats Stats
	for _, info := range infos {
		switch info.Status {
		case worktree.StatusOK:
			if len(info.Duplicates) > 0 {
				stats.EnvIssues++
			} else {
				stats.WorktreesHealthy++
			}
		case worktree.StatusNoFile:
			stats.MissingFiles++
		default:
			stats.EnvIssues++
		}
	}
	for _, issue := range issues {
		if issue.Worktree == "" && issue.Severity == SeverityWarning {
			stats.Collisions++
		}
	}
	return stats
}

// printSummary prints the per-category counts.
func printSummary(p *output.Printer, stats Stats) {
	p.Println()
	if stats.WorktreesHealthy > 0 {
		p.Printf("  ✓ %d worktrees healthy\n", stats.WorktreesHealthy)
	}
	if stats.EnvIssues > 0 {
		p.Printf("  ⚠ %d env files need attention\n", stats.EnvIssues)
	}
	if stats.MissingFiles > 0 {
		p.Printf("  ⚠ %d worktrees without an env file\n", stats.MissingFiles)
	}
	if stats.Collisions > 0 {
		p.Printf("  ⚠ %d port collisions\n", stats.Collisions)
	}
}

// printIssues lists issues in detection order.
func printIssues(p *output.Printer, issues []Issue) {
	for _, issue := range issues {
		marker := "⚠"
		if issue.Severity == SeverityError {
			marker = "✗"
		}
		if issue.Worktree != "" {
			p.Printf("  %s %s: %s\n", marker, issue.Worktree, issue.Description)
		} else {
			p.Printf("  %s %s\n", marker, issue.Description)
		}
	}
}

// countFixable returns how many issues a --fix run would touch.
func countFixable(issues []Issue) int {
	n := 0
	for _, issue := range issues {
		if issue.FixAction != "" {
			n++
		}
	}
	return n
}
