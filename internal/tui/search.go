// Package tui is the interactive library search screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kaitj/nmind-proceedings/contract"
	"github.com/kaitj/nmind-proceedings/search"
)

const (
	nameInput = iota
	tagsInput
	inputCount
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	focusBoxStyle = boxStyle.BorderForeground(lipgloss.Color("63"))
	nameStyle     = lipgloss.NewStyle().Bold(true)
	tagStyle      = lipgloss.NewStyle().Faint(true)
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// Model is the search screen. Every keystroke re-runs the filter.
type Model struct {
	catalog contract.Catalog
	tiers   []string

	inputs [inputCount]textinput.Model
	focus  int

	results []search.Listing
	total   int
	err     error
}

// New builds the search screen over catalog. tiers are section-tier tokens
// applied to every search.
func New(catalog contract.Catalog, tiers []string) Model {
	name := textinput.New()
	name.Prompt = "Name: "
	name.Placeholder = "library name..."
	name.CharLimit = 100
	name.Width = 40
	name.Focus()

	tags := textinput.New()
	tags.Prompt = "Tags: "
	tags.Placeholder = "python, mri (end with a comma for exact tags)"
	tags.CharLimit = 200
	tags.Width = 40

	m := Model{
		catalog: catalog,
		tiers:   tiers,
		inputs:  [inputCount]textinput.Model{name, tags},
	}
	if libs, err := catalog.List(); err == nil {
		m.total = len(libs)
	}
	m.refresh()
	return m
}

// Query returns the search the inputs currently describe.
func (m Model) Query() search.Query {
	return search.Query{
		Text:         m.inputs[nameInput].Value(),
		Tags:         m.inputs[tagsInput].Value(),
		SectionTiers: m.tiers,
	}
}

// Results returns the libraries matching the current query.
func (m Model) Results() []search.Listing { return m.results }

// Err returns the error from the last search, if any.
func (m Model) Err() error { return m.err }

func (m *Model) refresh() {
	libs, err := search.FilterLibraryData(m.catalog, m.Query())
	m.err = err
	if err != nil {
		m.results = nil
		return
	}
	m.results = search.NewListings(libs)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.inputs[m.focus].Blur()
			if msg.String() == "tab" {
				m.focus = (m.focus + 1) % inputCount
			} else {
				m.focus = (m.focus + inputCount - 1) % inputCount
			}
			return m, m.inputs[m.focus].Focus()
		}
	}

	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.refresh()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("NMIND evaluated libraries"))
	sb.WriteString("\n\n")
	for i := range m.inputs {
		style := boxStyle
		if i == m.focus {
			style = focusBoxStyle
		}
		sb.WriteString(style.Render(m.inputs[i].View()))
		sb.WriteString("\n")
	}
	if len(m.tiers) > 0 {
		sb.WriteString(tagStyle.Render("Tiers: " + strings.Join(m.tiers, ", ")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		sb.WriteString("\n")
	} else {
		fmt.Fprintf(&sb, "%d of %d libraries\n\n", len(m.results), m.total)
		for _, l := range m.results {
			sb.WriteString("  " + nameStyle.Render(l.Name))
			if len(l.Tags) > 0 {
				sb.WriteString("  " + tagStyle.Render(strings.Join(l.Tags, ", ")))
			}
			if len(l.CompletedTiers) > 0 {
				sb.WriteString("  " + badgeStyle.Render(fmt.Sprintf("[%d tiers]", len(l.CompletedTiers))))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("tab: switch field • esc: quit"))
	sb.WriteString("\n")
	return sb.String()
}

// Run shows the search screen until the user quits.
func Run(catalog contract.Catalog, tiers []string) error {
	if _, err := tea.NewProgram(New(catalog, tiers), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running search screen: %w", err)
	}
	return nil
}
