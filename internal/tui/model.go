// Package tui provides the full-screen comparison interface built on bubbletea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/versus-rank/versus/internal/catalog"
	"github.com/versus-rank/versus/internal/engine"
	"github.com/versus-rank/versus/internal/model"
)

// State represents the current state of the TUI.
type State int

const (
	StateComparing State = iota
	StateRanking
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C792EA")).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2).
			Width(36)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	winsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))
)

// Model holds the TUI state for one comparison run.
type Model struct {
	lastError error
	catalog   *catalog.Catalog
	session   *engine.Session
	ranking   model.Ranking
	keymap    KeyMap
	width     int
	height    int
	offset    int
	state     State
	showHelp  bool
	abandoned bool
	quitting  bool
}

// New creates a model over a catalog and its session.
func New(cat *catalog.Catalog, session *engine.Session) Model {
	m := Model{
		catalog: cat,
		session: session,
		keymap:  DefaultKeyMap(),
		state:   StateComparing,
	}
	if session.IsComplete() {
		m.finish()
	}
	return m
}

// Abandoned reports whether the user quit before judging every pair.
func (m Model) Abandoned() bool {
	return m.abandoned
}

// Ranking returns the computed final ranking, nil until the run finishes.
func (m Model) Ranking() model.Ranking {
	return m.ranking
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.ForceQuit):
			m.markQuit()
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Quit):
			m.markQuit()
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}

		switch m.state {
		case StateComparing:
			return m.updateComparing(msg)
		case StateRanking:
			return m.updateRanking(msg)
		}
	}

	return m, nil
}

func (m Model) updateComparing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pair, ok := m.session.CurrentPair()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.PickLeft):
		m.lastError = m.session.RecordWinner(pair.I)
	case key.Matches(msg, m.keymap.PickRight):
		m.lastError = m.session.RecordWinner(pair.J)
	default:
		return m, nil
	}

	if m.session.IsComplete() {
		m.finish()
	}
	return m, nil
}

func (m Model) updateRanking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.offset > 0 {
			m.offset--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.offset < len(m.ranking)-1 {
			m.offset++
		}
	}
	return m, nil
}

// markQuit records whether the run ended early.
func (m *Model) markQuit() {
	m.quitting = true
	if !m.session.IsComplete() {
		m.abandoned = true
	}
}

// finish computes the final ranking and switches to the ranking view.
func (m *Model) finish() {
	ranking, err := m.session.FinalRanking(m.catalog.Items())
	if err != nil {
		m.lastError = err
		return
	}
	m.ranking = ranking
	m.state = StateRanking
	m.offset = 0
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateRanking:
		return m.viewRanking()
	default:
		return m.viewComparing()
	}
}

func (m Model) viewComparing() string {
	pair, ok := m.session.CurrentPair()
	if !ok {
		return titleStyle.Render("Nothing to compare") + "\n" +
			subtleStyle.Render("The catalog has fewer than two items.")
	}

	done, total := m.session.Progress()
	header := titleStyle.Render("Which one do you prefer?") + "\n" +
		subtleStyle.Render(fmt.Sprintf("Comparison %d of %d · %s", done+1, total, m.catalog.Name()))

	cards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderCard("1", m.catalog.Item(pair.I)),
		"  ",
		m.renderCard("2", m.catalog.Item(pair.J)),
	)

	view := header + "\n\n" + cards + "\n\n" + m.renderHelp()
	if m.lastError != nil {
		view += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render(m.lastError.Error())
	}
	return view
}

func (m Model) renderCard(label string, item model.Item) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("[" + label + "] " + item.Title))
	if item.Description != "" {
		b.WriteString("\n\n" + item.Description)
	}
	if item.Image != "" {
		b.WriteString("\n\n" + subtleStyle.Render("image: "+item.Image))
	}

	style := cardStyle
	if m.width > 0 && m.width < 80 {
		// Narrow terminals get whatever half the row allows.
		style = style.Width((m.width - 6) / 2)
	}
	return style.Render(b.String())
}

func (m Model) viewRanking() string {
	header := titleStyle.Render("Final ranking · " + m.catalog.Name())

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(m.ranking) {
		end = len(m.ranking)
	}

	var rows []string
	for pos := m.offset; pos < end; pos++ {
		ranked := m.ranking[pos]
		row := fmt.Sprintf("%3d. %s %s",
			pos+1,
			lipgloss.NewStyle().Bold(true).Render(ranked.Title),
			winsStyle.Render(fmt.Sprintf("(%d wins)", ranked.Wins)),
		)
		if ranked.Description != "" {
			row += "\n     " + subtleStyle.Render(ranked.Description)
		}
		rows = append(rows, row)
	}

	body := strings.Join(rows, "\n")
	if end < len(m.ranking) {
		body += "\n" + subtleStyle.Render(fmt.Sprintf("… %d more", len(m.ranking)-end))
	}

	return header + "\n" + body + "\n\n" + m.renderHelp()
}

// visibleRows computes how many ranking rows fit the terminal, leaving
// room for the header and help line.
func (m Model) visibleRows() int {
	if m.height <= 0 {
		return len(m.ranking)
	}
	visible := (m.height - 5) / 2
	if visible < 1 {
		visible = 1
	}
	return visible
}

func (m Model) renderHelp() string {
	if m.showHelp {
		var lines []string
		for _, group := range m.keymap.FullHelp() {
			var parts []string
			for _, b := range group {
				parts = append(parts, b.Help().Key+" "+b.Help().Desc)
			}
			lines = append(lines, strings.Join(parts, "  ·  "))
		}
		return subtleStyle.Render(strings.Join(lines, "\n"))
	}

	var parts []string
	for _, b := range m.keymap.ShortHelp() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return subtleStyle.Render(strings.Join(parts, "  ·  "))
}
