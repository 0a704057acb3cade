package static

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/kevinmaes/worktree-ports/internal/worktree"
)

func TestWorktreeTableRow(t *testing.T) {
	t.Parallel()

	info := worktree.Info{
		Name:   "tokyo",
		Branch: "feature-x",
		Port:   4797,
		Status: worktree.StatusOK,
	}

	row := WorktreeTableRow(info)

	// Must have exactly 4 columns matching headers: NAME, BRANCH, PORT, ENV
	if len(row) != len(WorktreeHeaders) {
		t.Fatalf("expected %d columns, got %d", len(WorktreeHeaders), len(row))
	}

	if row[0] != "tokyo" {
		t.Errorf("column 0 (NAME) = %q, want %q", row[0], "tokyo")
	}
	if row[1] != "feature-x" {
		t.Errorf("column 1 (BRANCH) = %q, want %q", row[1], "feature-x")
	}
	if row[2] != "4797" {
		t.Errorf("column 2 (PORT) = %q, want %q", row[2], "4797")
	}
	if !strings.Contains(ansi.Strip(row[3]), "ok") {
		t.Errorf("column 3 (ENV) stripped = %q, want to contain %q", ansi.Strip(row[3]), "ok")
	}
}

func TestWorktreePlainRow(t *testing.T) {
	t.Parallel()

	info := worktree.Info{
		Name:   "berlin",
		Branch: "main",
		Port:   4390,
		Status: worktree.StatusDrift,
	}

	row := WorktreePlainRow(info)

	if row[3] != "drift" {
		t.Errorf("column 3 (ENV) = %q, want %q", row[3], "drift")
	}
	for i, cell := range row {
		if strings.Contains(cell, "\x1b") {
			t.Errorf("column %d contains ANSI codes: %q", i, cell)
		}
	}
}

func TestRenderTableEmpty(t *testing.T) {
	t.Parallel()

	if got := RenderTable(WorktreeHeaders, nil); got != "" {
		t.Errorf("RenderTable with no rows = %q, want empty", got)
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"tokyo", "feature-x", "4797", "ok"},
		{"berlin", "main", "4390", "drift"},
	}

	out := ansi.Strip(RenderTable(WorktreeHeaders, rows))

	for _, want := range []string{"NAME", "BRANCH", "PORT", "ENV", "tokyo", "4797", "berlin", "4390"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPlainRows(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"tokyo", "feature-x", "4797", "ok"},
		{"berlin", "main", "4390", "no file"},
	}

	got := RenderPlainRows(rows)
	want := "tokyo\tfeature-x\t4797\tok\nberlin\tmain\t4390\tno file\n"
	if got != want {
		t.Errorf("RenderPlainRows = %q, want %q", got, want)
	}
}
