// Package git provides git operations via shell commands.
//
// All operations use [os/exec.Command] to call the git CLI directly rather than
// using Go git libraries. This approach is simpler, more reliable, and ensures
// compatibility with user configurations (SSH keys, credential helpers, aliases).
//
// # Worktree Operations
//
//   - [ListWorktreesFromRepo]: All worktrees of a repo via worktree list --porcelain
//   - [RepoLister]: ListLinkedWorktrees capability for source resolution
//
// # Repository Operations
//
//   - [GetRepoRoot]: Top-level directory of the current worktree
//   - [GetCurrentBranch]: Branch of a worktree, "(detached)" when headless
//   - [CheckGit], [IsInsideRepoPath]: Environment preconditions
package git
