//go:build integration

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestAssign_EmptyEnvFile assigns a port into an existing empty env file.
//
// Scenario: User runs `wtp assign` in a worktree named tokyo with an empty .env
// Expected: .env contains exactly "APP_PORT=4797\n" and the assignment is printed
func TestAssign_EmptyEnvFile(t *testing.T) {
	t.Parallel()

	tmp := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmp, "test-repo")
	tokyo := filepath.Join(tmp, "tokyo")
	setupWorktree(t, repoPath, tokyo, "feature-t")
	envPath := writeEnvFile(t, tokyo, ".env", "")

	ctx, out := testContextAt(t, tokyo)

	cmd := newAssignCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if got := readEnvFile(t, envPath); got != "APP_PORT=4797\n" {
		t.Errorf("env = %q, want %q", got, "APP_PORT=4797\n")
	}
	if !strings.Contains(out.String(), "tokyo: APP_PORT=4797") {
		t.Errorf("output = %q, want the assignment reported", out.String())
	}
}

// TestAssign_NoEnvFile verifies that worktrees without an env file are
// left untouched.
//
// Scenario: User runs `wtp assign` in a worktree with no env file and no source
// Expected: Exit status 0, no env file is created, nothing on stdout
func TestAssign_NoEnvFile(t *testing.T) {
	t.Parallel()

	tmp := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmp, "test-repo")
	tokyo := filepath.Join(tmp, "tokyo")
	setupWorktree(t, repoPath, tokyo, "feature-t")

	ctx, out := testContextAt(t, tokyo)

	cmd := newAssignCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tokyo, ".env")); !errors.Is(err, os.ErrNotExist) {
		t.Error("env file was created for a worktree without one")
	}
	if out.String() != "" {
		t.Errorf("output = %q, want empty", out.String())
	}
}

// TestAssign_SeedsFromPrimaryWorktree seeds a fresh worktree from the
// repo's primary worktree before assigning.
//
// Scenario: The main worktree has .env with DB=postgres, berlin has none
// Expected: berlin/.env is the copied content plus its own port
func TestAssign_SeedsFromPrimaryWorktree(t *testing.T) {
	t.Parallel()

	tmp := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmp, "test-repo")
	writeEnvFile(t, repoPath, ".env", "DB=postgres\n")
	berlin := filepath.Join(tmp, "berlin")
	setupWorktree(t, repoPath, berlin, "feature-b")

	ctx, _ := testContextAt(t, berlin)

	cmd := newAssignCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	want := "DB=postgres\nAPP_PORT=4390\n"
	if got := readEnvFile(t, filepath.Join(berlin, ".env")); got != want {
		t.Errorf("env = %q, want %q", got, want)
	}
}

// TestAssign_SourceRootFlag seeds from an explicit source root.
//
// Scenario: User runs `wtp assign --source-root <dir>` in worktree berlin,
// where <dir>/.env holds API_KEY=secret
// Expected: berlin/.env is "API_KEY=secret\nAPP_PORT=4390\n"
func TestAssign_SourceRootFlag(t *testing.T) {
	t.Parallel()

	tmp := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmp, "test-repo")
	berlin := filepath.Join(tmp, "berlin")
	setupWorktree(t, repoPath, berlin, "feature-b")

	srcDir := filepath.Join(tmp, "golden")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		t.Fatalf("failed to create source dir: %v", err)
	}
	writeEnvFile(t, srcDir, ".env", "API_KEY=secret\n")

	ctx, _ := testContextAt(t, berlin)

	cmd := newAssignCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--source-root", srcDir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	want := "API_KEY=secret\nAPP_PORT=4390\n"
	if got := readEnvFile(t, filepath.Join(berlin, ".env")); got != want {
		t.Errorf("env = %q, want %q", got, want)
	}
}

// TestAssign_EnvSourceRoot seeds from the source root given via
// WTP_SOURCE_ROOT.
//
// Scenario: WTP_SOURCE_ROOT points at a directory with an env file
// Expected: The worktree is seeded from it, same as with --source-root
func TestAssign_EnvSourceRoot(t *testing.T) {
	// Not parallel: swaps the package-level source root read at startup.
	tmp := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmp, "test-repo")
	berlin := filepath.Join(tmp, "berlin")
	setupWorktree(t, repoPath, berlin, "feature-b")

	srcDir := filepath.Join(tmp, "golden")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		t.Fatalf("failed to create source dir: %v", err)
	}
	writeEnvFile(t, srcDir, ".env", "API_KEY=secret\n")

	old := envSourceRoot
	envSourceRoot = srcDir
	t.Cleanup(func() { envSourceRoot = old })

	ctx, _ := testContextAt(t, berlin)

	cmd := newAssignCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	want := "API_KEY=secret\nAPP_PORT=4390\n"
	if got := readEnvFile(t, filepath.Join(berlin, ".env")); got != want {
		t.Errorf("env = %q, want %q", got, want)
	}
}

// TestAssign_SecondRunIsSilent verifies the fixed point: a repeated run
// without a source changes nothing and prints nothing.
//
// Scenario: User runs `wtp assign` twice in the same worktree
// Expected: Second run leaves the file byte-identical and stdout empty
func TestAssign_SecondRunIsSilent(t *testing.T) {
	t.Parallel()

	tmp := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmp, "test-repo")
	tokyo := filepath.Join(tmp, "tokyo")
	setupWorktree(t, repoPath, tokyo, "feature-t")
	envPath := writeEnvFile(t, tokyo, ".env", "DB=sqlite\n")

	ctx, _ := testContextAt(t, tokyo)
	cmd := newAssignCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}
	first := readEnvFile(t, envPath)

	ctx2, out2 := testContextAt(t, tokyo)
	cmd2 := newAssignCmd()
	cmd2.SetContext(ctx2)
	cmd2.SetArgs([]string{})
	if err := cmd2.Execute(); err != nil {
		t.Fatalf("second assign failed: %v", err)
	}

	if got := readEnvFile(t, envPath); got != first {
		t.Errorf("second run changed the file: %q -> %q", first, got)
	}
	if out2.String() != "" {
		t.Errorf("second run output = %q, want empty", out2.String())
	}
}

// TestAssign_All assigns ports across every worktree of the repo.
//
// Scenario: User runs `wtp assign --all` with a mix of worktrees
// Expected: Worktrees with env files get their ports, others are skipped
func TestAssign_All(t *testing.T) {
	t.Parallel()

	tmp := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmp, "test-repo")
	writeEnvFile(t, repoPath, ".env", "X=1\n")
	tokyo := filepath.Join(tmp, "tokyo")
	setupWorktree(t, repoPath, tokyo, "feature-t")
	writeEnvFile(t, tokyo, ".env", "")
	berlin := filepath.Join(tmp, "berlin")
	setupWorktree(t, repoPath, berlin, "feature-b")

	ctx, out := testContextAt(t, tokyo)

	cmd := newAssignCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--all"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("assign --all failed: %v", err)
	}

	if got := readEnvFile(t, filepath.Join(repoPath, ".env")); got != "X=1\nAPP_PORT=4419\n" {
		t.Errorf("test-repo env = %q, want %q", got, "X=1\nAPP_PORT=4419\n")
	}
	if got := readEnvFile(t, filepath.Join(tokyo, ".env")); got != "APP_PORT=4797\n" {
		t.Errorf("tokyo env = %q, want %q", got, "APP_PORT=4797\n")
	}
	if _, err := os.Stat(filepath.Join(berlin, ".env")); !errors.Is(err, os.ErrNotExist) {
		t.Error("berlin: env file was created for a skipped worktree")
	}
	if !strings.Contains(out.String(), "berlin: skipped (no env file)") {
		t.Errorf("output = %q, want berlin reported as skipped", out.String())
	}
}

// TestAssign_LocalConfigKey honors a per-worktree port key.
//
// Scenario: The worktree's .wtp.toml sets port_key = "SERVICE_PORT"
// Expected: The env file gets SERVICE_PORT instead of APP_PORT
func TestAssign_LocalConfigKey(t *testing.T) {
	t.Parallel()

	tmp := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmp, "test-repo")
	tokyo := filepath.Join(tmp, "tokyo")
	setupWorktree(t, repoPath, tokyo, "feature-t")
	envPath := writeEnvFile(t, tokyo, ".env", "")
	writeEnvFile(t, tokyo, ".wtp.toml", "port_key = \"SERVICE_PORT\"\n")

	ctx, _ := testContextAt(t, tokyo)

	cmd := newAssignCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if got := readEnvFile(t, envPath); got != "SERVICE_PORT=4797\n" {
		t.Errorf("env = %q, want %q", got, "SERVICE_PORT=4797\n")
	}
}
