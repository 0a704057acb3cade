package styles

import (
	"github.com/kevinmaes/worktree-ports/internal/worktree"
)

// Status symbols (ASCII-safe fallbacks are not needed, every
// supported terminal renders these)
const (
	SymbolOK      = "✓"
	SymbolWarning = "⚠"
	SymbolAbsent  = "-"
)

// EnvStatusSymbol returns just the symbol for an env status.
func EnvStatusSymbol(status worktree.EnvStatus) string {
	switch status {
	case worktree.StatusOK:
		return SymbolOK
	case worktree.StatusDrift, worktree.StatusNoKey:
		return SymbolWarning
	case worktree.StatusNoFile:
		return SymbolAbsent
	default:
		return ""
	}
}

// FormatEnvStatus returns a colored symbol-and-text cell for an env
// status, for use in the list table.
func FormatEnvStatus(status worktree.EnvStatus) string {
	text := EnvStatusSymbol(status) + " " + string(status)
	switch status {
	case worktree.StatusOK:
		return SuccessStyle.Render(text)
	case worktree.StatusDrift, worktree.StatusNoKey:
		return WarningStyle.Render(text)
	case worktree.StatusNoFile:
		return MutedStyle.Render(text)
	default:
		return string(status)
	}
}
