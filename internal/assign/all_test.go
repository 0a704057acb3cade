package assign

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kevinmaes/worktree-ports/internal/config"
)

func TestRunAll_AssignsEveryWorktree(t *testing.T) {
	t.Parallel()

	main := newWorktree(t, "main")
	writeFile(t, filepath.Join(main, ".env"), "X=1\n")
	tokyo := newWorktree(t, "tokyo")
	writeFile(t, filepath.Join(tokyo, ".env"), "")
	berlin := newWorktree(t, "berlin") // no env file

	global := config.Default()
	resolver := config.NewResolver(&global)
	lister := fakeLister{paths: []string{main, tokyo, berlin}}

	results, err := RunAll(testCtx(t), lister, resolver)
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// Results keep listing order.
	if results[0].Name != "main" || results[1].Name != "tokyo" || results[2].Name != "berlin" {
		t.Fatalf("result order = %q, %q, %q", results[0].Name, results[1].Name, results[2].Name)
	}

	if results[0].Port != 4948 || !results[0].Changed {
		t.Errorf("main: port %d changed %v, want 4948 changed", results[0].Port, results[0].Changed)
	}
	if got := readFile(t, filepath.Join(main, ".env")); got != "X=1\nAPP_PORT=4948\n" {
		t.Errorf("main env = %q, want %q", got, "X=1\nAPP_PORT=4948\n")
	}

	if results[1].Port != 4797 || !results[1].Changed {
		t.Errorf("tokyo: port %d changed %v, want 4797 changed", results[1].Port, results[1].Changed)
	}
	if got := readFile(t, filepath.Join(tokyo, ".env")); got != "APP_PORT=4797\n" {
		t.Errorf("tokyo env = %q, want %q", got, "APP_PORT=4797\n")
	}

	if !results[2].Skipped {
		t.Error("berlin: Skipped = false, want true")
	}
	if _, err := os.Stat(filepath.Join(berlin, ".env")); !errors.Is(err, os.ErrNotExist) {
		t.Error("berlin: env file was created for a skipped worktree")
	}
}

func TestRunAll_HonorsLocalConfig(t *testing.T) {
	t.Parallel()

	tokyo := newWorktree(t, "tokyo")
	writeFile(t, filepath.Join(tokyo, ".env"), "")
	writeFile(t, filepath.Join(tokyo, config.LocalConfigFileName), "port_key = \"SERVICE_PORT\"\n")

	global := config.Default()
	resolver := config.NewResolver(&global)

	results, err := RunAll(testCtx(t), fakeLister{paths: []string{tokyo}}, resolver)
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	if got := readFile(t, filepath.Join(tokyo, ".env")); got != "SERVICE_PORT=4797\n" {
		t.Errorf("env = %q, want %q", got, "SERVICE_PORT=4797\n")
	}
	if results[0].Key != "SERVICE_PORT" {
		t.Errorf("Key = %q, want SERVICE_PORT", results[0].Key)
	}
}

func TestRunAll_NeverSeedsFiles(t *testing.T) {
	t.Parallel()

	// Unlike a single run, the fan-out never copies a sibling's env
	// file into worktrees that have none.
	main := newWorktree(t, "main")
	writeFile(t, filepath.Join(main, ".env"), "X=1\n")
	berlin := newWorktree(t, "berlin")

	global := config.Default()
	resolver := config.NewResolver(&global)

	results, err := RunAll(testCtx(t), fakeLister{paths: []string{main, berlin}}, resolver)
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}

	if !results[1].Skipped {
		t.Error("berlin: Skipped = false, want true")
	}
	if _, err := os.Stat(filepath.Join(berlin, ".env")); !errors.Is(err, os.ErrNotExist) {
		t.Error("berlin: env file must not be seeded by the fan-out")
	}
}

func TestRunAll_ListerError(t *testing.T) {
	t.Parallel()

	global := config.Default()
	resolver := config.NewResolver(&global)

	_, err := RunAll(testCtx(t), fakeLister{err: errors.New("not a git repository")}, resolver)
	if err == nil {
		t.Fatal("RunAll = nil error, want lister failure")
	}
}
