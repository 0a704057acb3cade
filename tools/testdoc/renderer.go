package main

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"
)

// RenderMarkdown writes the test documentation as markdown.
func RenderMarkdown(w io.Writer, packages []TestPackage) error {
	// Header
	fmt.Fprintf(w, "# Test Documentation\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", time.Now().Format("2006-01-02"))

	// Collect all tests and group by command
	commandMap := make(map[string][]TestFunc)

	for _, pkg := range packages {
		for _, file := range pkg.Files {
			for _, test := range file.Tests {
				cmd := extractCommand(test.Name)
				commandMap[cmd] = append(commandMap[cmd], test)
			}
		}
	}

	// Sort commands
	var commands []string
	for cmd := range commandMap {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)

	// Summary
	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Command | Tests |\n")
	fmt.Fprintf(w, "|---------|-------|\n")

	totalTests := 0
	for _, cmd := range commands {
		tests := commandMap[cmd]
		fmt.Fprintf(w, "| [%s](#%s) | %d |\n", cmd, toAnchor(cmd), len(tests))
		totalTests += len(tests)
	}
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", totalTests)

	// Render each command section
	for _, cmd := range commands {
		renderCommandSection(w, cmd, commandMap[cmd])
	}

	return nil
}

func renderCommandSection(w io.Writer, cmd string, tests []TestFunc) {
	fmt.Fprintf(w, "## %s\n\n", cmd)
	fmt.Fprintf(w, "| Test | Scenario | Expected |\n")
	fmt.Fprintf(w, "|------|----------|----------|\n")

	for _, test := range tests {
		scenario := test.Scenario
		if scenario == "" {
			// Fall back to the summary line for tests without the
			// Scenario/Expected convention
			scenario = extractDescription(test.Doc, test.Name)
		}
		fmt.Fprintf(w, "| `%s` | %s | %s |\n",
			test.Name, escapeCell(scenario), escapeCell(test.Expected))
	}
	fmt.Fprintf(w, "\n")
}

// escapeCell makes a doc-comment fragment safe inside a markdown table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// extractCommand extracts the command name from a test function name.
// Examples:
//   - TestAssign_EmptyEnvFile -> wtp assign
//   - TestPort_Export -> wtp port
//   - TestConfigShow_Local -> wtp config
//   - TestUpsert_ReplacesFirst -> other
func extractCommand(testName string) string {
	// Remove "Test" prefix
	name := strings.TrimPrefix(testName, "Test")

	// Find the command part (before first underscore)
	parts := strings.SplitN(name, "_", 2)
	if len(parts) == 0 {
		return "other"
	}

	cmd := parts[0]

	// Map test prefixes to commands
	cmdMap := map[string]string{
		"Assign":                "wtp assign",
		"Port":                  "wtp port",
		"List":                  "wtp list",
		"Pick":                  "wtp pick",
		"PickWorktree":          "wtp pick",
		"PickModel":             "wtp pick",
		"Doctor":                "wtp doctor",
		"ConfigInit":            "wtp config",
		"ConfigInitLocal":       "wtp config",
		"ConfigShow":            "wtp config",
		"Completion":            "wtp completion",
		"CompleteWorktreeNames": "wtp completion",
	}

	if mapped, ok := cmdMap[cmd]; ok {
		return mapped
	}

	return "other"
}

// extractDescription gets the first line of the doc comment as description.
// It strips the test function name from the beginning if present.
func extractDescription(doc string, testName string) string {
	if doc == "" {
		return "_No documentation_"
	}

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			// Strip test name prefix if present
			line = strings.TrimPrefix(line, testName+" ")
			// Capitalize first letter
			if len(line) > 0 {
				line = strings.ToUpper(line[:1]) + line[1:]
			}
			return line
		}
	}

	return "_No documentation_"
}

// toAnchor converts a command name to a markdown anchor.
func toAnchor(cmd string) string {
	// Replace spaces with hyphens and lowercase
	anchor := strings.ReplaceAll(cmd, " ", "-")
	// Remove special characters
	re := regexp.MustCompile(`[^a-zA-Z0-9-]`)
	anchor = re.ReplaceAllString(anchor, "")
	return strings.ToLower(anchor)
}
