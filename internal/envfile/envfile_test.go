package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read env file: %v", err)
	}
	return string(data)
}

func TestExists(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "A=1\n")
	if !Exists(path) {
		t.Errorf("Exists(%q) = false, want true", path)
	}
	if Exists(filepath.Join(t.TempDir(), "missing")) {
		t.Error("Exists(missing) = true, want false")
	}
	if Exists(t.TempDir()) {
		t.Error("Exists(directory) = true, want false")
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("Load(missing) = nil, want error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want to wrap os.ErrNotExist", err)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	f, err := Load(writeFile(t, "# comment\nAPP_PORT=4797\nAPI_KEY=secret\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, ok := f.Get("APP_PORT"); !ok || v != "4797" {
		t.Errorf("Get(APP_PORT) = %q, %v, want 4797, true", v, ok)
	}
	if v, ok := f.Get("API_KEY"); !ok || v != "secret" {
		t.Errorf("Get(API_KEY) = %q, %v, want secret, true", v, ok)
	}
	if _, ok := f.Get("MISSING"); ok {
		t.Error("Get(MISSING) = true, want false")
	}
}

func TestGet_FirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	f, err := Load(writeFile(t, "KEY=first\nKEY=second\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := f.Get("KEY"); v != "first" {
		t.Errorf("Get(KEY) = %q, want first", v)
	}
}

func TestGet_NoPrefixFalseMatch(t *testing.T) {
	t.Parallel()

	f, err := Load(writeFile(t, "APP_PORT_EXT=9000\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := f.Get("APP_PORT"); ok {
		t.Error("Get(APP_PORT) matched APP_PORT_EXT line")
	}
}

func TestUpsert_AppendsToFreshFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if changed := f.Upsert("APP_PORT", "4797"); !changed {
		t.Error("Upsert on empty file = unchanged, want changed")
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if got := readFile(t, path); got != "APP_PORT=4797\n" {
		t.Errorf("file = %q, want %q", got, "APP_PORT=4797\n")
	}
}

func TestUpsert_PreservesUnrelatedLines(t *testing.T) {
	t.Parallel()

	content := "# dev settings\nAPI_KEY=secret\n\nDEBUG=true\n"
	path := writeFile(t, content)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	f.Upsert("APP_PORT", "4390")
	if err := f.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	want := "# dev settings\nAPI_KEY=secret\n\nDEBUG=true\nAPP_PORT=4390\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestUpsert_ReplacesInPlace(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "A=1\nAPP_PORT=1234\nB=2\n")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if changed := f.Upsert("APP_PORT", "4797"); !changed {
		t.Error("Upsert with new value = unchanged, want changed")
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	want := "A=1\nAPP_PORT=4797\nB=2\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestUpsert_CollapsesDuplicates(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "APP_PORT=1\nA=1\nAPP_PORT=2\nAPP_PORT=3\n")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if changed := f.Upsert("APP_PORT", "4797"); !changed {
		t.Error("Upsert over duplicates = unchanged, want changed")
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	want := "APP_PORT=4797\nA=1\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestUpsert_SameValueUnchanged(t *testing.T) {
	t.Parallel()

	f, err := Load(writeFile(t, "APP_PORT=4797\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if changed := f.Upsert("APP_PORT", "4797"); changed {
		t.Error("Upsert with identical value = changed, want unchanged")
	}
}

func TestUpsert_DuplicateWithSameValueStillChanges(t *testing.T) {
	t.Parallel()

	f, err := Load(writeFile(t, "APP_PORT=4797\nAPP_PORT=4797\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// Collapsing the duplicate line is a content change
	if changed := f.Upsert("APP_PORT", "4797"); !changed {
		t.Error("Upsert collapsing duplicate = unchanged, want changed")
	}
}

func TestUpsert_NoFalsePrefixMatch(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "APP_PORT_EXT=9000\n")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	f.Upsert("APP_PORT", "4797")
	if err := f.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	want := "APP_PORT_EXT=9000\nAPP_PORT=4797\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestUpsert_AddsTerminatingNewline(t *testing.T) {
	t.Parallel()

	// Input without trailing newline still appends a proper line
	path := writeFile(t, "A=1")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	f.Upsert("B", "2")
	if err := f.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	want := "A=1\nB=2\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "# header\nAPI_KEY=secret\n")
	for i := 0; i < 3; i++ {
		f, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if f.Upsert("APP_PORT", "4797") {
			if err := f.Save(); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
		}
	}

	want := "# header\nAPI_KEY=secret\nAPP_PORT=4797\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file after repeated upserts = %q, want %q", got, want)
	}
}

func TestDuplicates(t *testing.T) {
	t.Parallel()

	f, err := Load(writeFile(t, "# A=1 comment\nA=1\nB=2\nA=3\nnot a pair\nC=4\nB=5\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := f.Duplicates()
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Duplicates() = %v, want %v", got, want)
	}
}

func TestDuplicates_None(t *testing.T) {
	t.Parallel()

	f, err := Load(writeFile(t, "A=1\nB=2\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := f.Duplicates(); got != nil {
		t.Errorf("Duplicates() = %v, want nil", got)
	}
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "A=1\n")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	f.Upsert("B", "2")
	if err := f.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file still present after Save: %v", err)
	}
}

func TestSave_EmptyFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "")
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got := readFile(t, path); got != "" {
		t.Errorf("file = %q, want empty", got)
	}
}
