package doctor

import (
	"context"
	"strconv"

	"github.com/kevinmaes/worktree-ports/internal/envfile"
	"github.com/kevinmaes/worktree-ports/internal/output"
)

// fixAllIssues applies fixes for all fixable issues. Every fix is the
// same rewrite: upsert the derived port under the configured key.
// Files are never created, so "no file" issues stay unfixed.
func fixAllIssues(ctx context.Context, issues []Issue) error {
	p := output.FromContext(ctx)
	p.Println()

	var fixed, failed int
	for _, issue := range issues {
		switch issue.FixAction {
		case "add_key":
			if err := upsertPort(issue); err != nil {
				p.Printf("  ✗ Failed to fix %q: %v\n", issue.Worktree, err)
				failed++
				continue
			}
			p.Printf("  ✓ Added %s=%d for %q\n", issue.Key, issue.Port, issue.Worktree)
			fixed++

		case "update_key":
			if err := upsertPort(issue); err != nil {
				p.Printf("  ✗ Failed to fix %q: %v\n", issue.Worktree, err)
				failed++
				continue
			}
			p.Printf("  ✓ Updated %s=%d for %q\n", issue.Key, issue.Port, issue.Worktree)
			fixed++

		case "collapse_duplicates":
			if err := upsertPort(issue); err != nil {
				p.Printf("  ✗ Failed to fix %q: %v\n", issue.Worktree, err)
				failed++
				continue
			}
			p.Printf("  ✓ Collapsed duplicate %s lines for %q\n", issue.Key, issue.Worktree)
			fixed++
		}
	}

	if failed > 0 {
		p.Printf("\nFixed %d issues, %d failed.\n", fixed, failed)
	} else {
		p.Printf("\nFixed %d issues.\n", fixed)
	}
	return nil
}

// upsertPort rewrites the issue's env file with the derived port.
func upsertPort(issue Issue) error {
	f, err := envfile.Load(issue.EnvPath)
	if err != nil {
		return err
	}
	if f.Upsert(issue.Key, strconv.Itoa(issue.Port)) {
		return f.Save()
	}
	return nil
}
