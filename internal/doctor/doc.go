// Package doctor provides diagnostic and repair functionality for the
// port assignment setup.
//
// The doctor package detects and optionally repairs issues including:
//
//   - Environment issues: git missing from PATH, or the working
//     directory not being inside a git work tree.
//
//   - Env file issues: a missing env file, a missing port key, a
//     stored port drifting from the derived one, and keys duplicated
//     across lines.
//
//   - Port collisions: different worktree names deriving the same
//     port. These are reported only; the hash is never adjusted.
//
// # Usage
//
// Run diagnostics:
//
//	err := doctor.Run(ctx, workDir, resolver, false)  // check only
//	err := doctor.Run(ctx, workDir, resolver, true)   // check and fix
//
// Fixes rewrite existing env files with the derived port. Worktrees
// without an env file are reported but never seeded; the assignment
// flow has the same rule.
//
// Each [Issue] includes a description, a [Severity] and, when a
// rewrite can repair it, a fix action.
package doctor
