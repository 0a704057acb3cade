// Package static provides non-interactive terminal output components.
//
// This package renders the worktree table for list and doctor output.
// Styled rendering is used on terminals; plain tab-separated rows are
// available for piped output.
package static

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/kevinmaes/worktree-ports/internal/ui/styles"
	"github.com/kevinmaes/worktree-ports/internal/worktree"
)

// WorktreeHeaders are the columns of the worktree table.
var WorktreeHeaders = []string{"NAME", "BRANCH", "PORT", "ENV"}

// WorktreeTableRow builds the styled table cells for one worktree.
func WorktreeTableRow(info worktree.Info) []string {
	return []string{
		info.Name,
		info.Branch,
		strconv.Itoa(info.Port),
		styles.FormatEnvStatus(info.Status),
	}
}

// WorktreePlainRow builds unstyled cells for piped output.
func WorktreePlainRow(info worktree.Info) []string {
	return []string{
		info.Name,
		info.Branch,
		strconv.Itoa(info.Port),
		string(info.Status),
	}
}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Bold.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// RenderPlainRows renders tab-separated rows without headers or
// styling.
func RenderPlainRows(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}
