// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users. Commands are
// echoed through the context logger when verbose mode is on.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, dir, "git", "worktree", "prune"); err != nil {
//	    // err contains stderr output if available
//	    return fmt.Errorf("git failed: %w", err)
//	}
//
//	// For commands that return output:
//	out, err := cmd.OutputContext(ctx, dir, "git", "worktree", "list")
//	if err != nil {
//	    // err contains stderr output
//	}
//
// # Design Notes
//
// The wtp tool shells out to the git CLI rather than using a Go git library.
// This approach is simpler, more reliable, and ensures compatibility with
// user configurations (worktree layouts, credential helpers, etc.).
package cmd
