// Package ui provides the interactive terminal picker for wtp.
//
// This package uses the Charm libraries (bubbletea, bubbles, lipgloss)
// for the fuzzy worktree picker. Static table rendering lives in the
// static subpackage, shared colors and symbols in styles.
//
// # Picker
//
// [PickWorktree] runs a filterable list of worktrees with their derived
// ports. Typing narrows the list with fuzzy matching, enter confirms,
// esc cancels. The UI is drawn on stderr so the selected port can be
// captured from stdout in shell substitutions.
package ui
