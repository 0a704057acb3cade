// Package resolve locates the env file that seeds a fresh worktree.
//
// A worktree that was just created has no env file yet. Before assigning
// a port, wtp tries to find a donor copy so existing keys (API tokens,
// feature flags) carry over. Resolution is best-effort: every failure
// degrades to "no source" and the assignment decides what that means.
//
// # Candidate Order
//
// Candidates are consulted in priority order, first hit wins:
//
//   - Override root: an explicitly configured directory (flag, env var,
//     or config). If it is set but holds no env file, a warning is
//     printed and resolution continues.
//   - Primary worktree: the first entry of the repo's worktree list
//     whose path differs from the current working directory. Only that
//     single entry is consulted, not every sibling.
//
// # Worktree Listing
//
// Listing is an injected capability ([WorktreeLister]) so resolution can
// be tested without git. The production implementation is
// [github.com/kevinmaes/worktree-ports/internal/git.RepoLister].
package resolve
