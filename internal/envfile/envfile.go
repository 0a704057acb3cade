// Package envfile reads and rewrites flat KEY=VALUE env files.
//
// Files are handled as ordered lists of verbatim lines: comments, blank
// lines, and unrelated entries survive a rewrite byte-for-byte, in their
// original order. The whole file is read, transformed in memory, and
// written back atomically, so a crashed rewrite leaves the original
// content intact.
//
// Key matching is the literal prefix "KEY=" at the start of a line.
// There is no tolerance for "export KEY=" or surrounding whitespace,
// matching how shell tooling greps these files.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

// File is an env file loaded into memory as logical lines.
type File struct {
	path  string
	lines []string
}

// Exists reports whether an env file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads the env file at path. The error wraps os.ErrNotExist when
// the file is missing (caller should handle).
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &File{path: path, lines: splitLines(string(data))}, nil
}

// splitLines converts file content to logical lines. A terminating
// newline is not a line of its own; Save always writes one back.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Path returns the file path this File was loaded from.
func (f *File) Path() string {
	return f.path
}

// Get returns the value of the first KEY= line.
func (f *File) Get(key string) (string, bool) {
	prefix := key + "="
	for _, line := range f.lines {
		if strings.HasPrefix(line, prefix) {
			return line[len(prefix):], true
		}
	}
	return "", false
}

// Upsert sets key to value. An existing first KEY= line is replaced in
// place; any later duplicates are dropped; a missing key is appended as
// a new final line. Exactly one KEY= line exists afterwards. Reports
// whether the content changed.
func (f *File) Upsert(key, value string) bool {
	prefix := key + "="
	entry := prefix + value

	replaced := false
	changed := false
	kept := f.lines[:0]
	for _, line := range f.lines {
		if !strings.HasPrefix(line, prefix) {
			kept = append(kept, line)
			continue
		}
		if replaced {
			// Duplicate entry, collapse it
			changed = true
			continue
		}
		replaced = true
		if line != entry {
			changed = true
		}
		kept = append(kept, entry)
	}
	f.lines = kept

	if !replaced {
		f.lines = append(f.lines, entry)
		changed = true
	}
	return changed
}

// Duplicates returns keys that appear on more than one line, in first
// occurrence order. Comments and lines without = are ignored.
func (f *File) Duplicates() []string {
	counts := make(map[string]int)
	var order []string
	for _, line := range f.lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := line[:idx]
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	var dups []string
	for _, key := range order {
		if counts[key] > 1 {
			dups = append(dups, key)
		}
	}
	return dups
}

// Save writes the file back atomically: content goes to a temp file in
// the same directory, then renames over the original. Output is always
// newline-terminated.
func (f *File) Save() error {
	content := ""
	if len(f.lines) > 0 {
		content = strings.Join(f.lines, "\n") + "\n"
	}

	tempPath := f.path + ".tmp"
	if err := os.WriteFile(tempPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
