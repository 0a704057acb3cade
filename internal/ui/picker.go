package ui

import (
	"os"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"

	"github.com/kevinmaes/worktree-ports/internal/ui/styles"
	"github.com/kevinmaes/worktree-ports/internal/worktree"
)

// PickResult holds the outcome of the worktree picker.
type PickResult struct {
	Info      worktree.Info
	Cancelled bool
}

// infoSource implements fuzzy.Source over worktree names.
type infoSource []worktree.Info

func (s infoSource) String(i int) string { return s[i].Name }
func (s infoSource) Len() int            { return len(s) }

type pickModel struct {
	input     textinput.Model
	infos     []worktree.Info
	filtered  []fuzzy.Match // matches with scores and indices
	cursor    int           // position in filtered list
	selected  int           // index into infos; -1 when none
	done      bool
	cancelled bool
}

func newPickModel(infos []worktree.Info) pickModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Focus()
	ti.SetWidth(40)

	m := pickModel{
		input:    ti,
		infos:    infos,
		selected: -1,
	}
	m.applyFilter()
	return m
}

func (m pickModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				m.selected = m.filtered[m.cursor].Index
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m pickModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString("Pick a worktree:\n")
	b.WriteString(m.input.View() + "\n\n")

	// Show filtered list with scroll
	maxVisible := 10
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	if start > 0 {
		b.WriteString(styles.MutedStyle.Render("  ↑ more above") + "\n")
	}

	for i := start; i < end; i++ {
		match := m.filtered[i]
		info := m.infos[match.Index]

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		name := m.renderName(info.Name, match, i == m.cursor)
		port := styles.MutedStyle.Render(strconv.Itoa(info.Port))
		b.WriteString(cursor + name + "  " + port + "\n")
	}

	if end < len(m.filtered) {
		b.WriteString(styles.MutedStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching worktrees") + "\n")
	}

	b.WriteString("\n" + styles.MutedStyle.Render("↑/↓ select • type to filter • enter confirm • esc cancel") + "\n")

	return tea.NewView(b.String())
}

// renderName renders a worktree name with matched characters
// highlighted while filtering.
func (m pickModel) renderName(name string, match fuzzy.Match, isSelected bool) string {
	if m.input.Value() == "" || len(match.MatchedIndexes) == 0 {
		if isSelected {
			return styles.AccentStyle.Render(name)
		}
		return name
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var result strings.Builder
	for i, r := range []rune(name) {
		char := string(r)
		switch {
		case matchSet[i]:
			result.WriteString(styles.HighlightStyle.Render(char))
		case isSelected:
			result.WriteString(styles.AccentStyle.Render(char))
		default:
			result.WriteString(char)
		}
	}
	return result.String()
}

// applyFilter recomputes the filtered list from the current input.
func (m *pickModel) applyFilter() {
	filter := m.input.Value()
	if filter == "" {
		// No filter, show all worktrees in listing order
		m.filtered = make([]fuzzy.Match, len(m.infos))
		for i := range m.infos {
			m.filtered[i] = fuzzy.Match{Str: m.infos[i].Name, Index: i}
		}
	} else {
		// Results are sorted by score, best first
		m.filtered = fuzzy.FindFrom(filter, infoSource(m.infos))
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// PickWorktree runs the interactive picker over the given worktrees.
// The UI renders to stderr so the selection can be piped from stdout.
func PickWorktree(infos []worktree.Info) (PickResult, error) {
	if len(infos) == 0 {
		return PickResult{Cancelled: true}, nil
	}

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(newPickModel(infos),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	finalModel, err := p.Run()
	if err != nil {
		return PickResult{}, err
	}
	m := finalModel.(pickModel)

	if m.cancelled || m.selected < 0 || m.selected >= len(m.infos) {
		return PickResult{Cancelled: true}, nil
	}
	return PickResult{Info: m.infos[m.selected]}, nil
}
