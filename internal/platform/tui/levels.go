package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pathquest/internal/level"
	"github.com/vovakirdan/pathquest/internal/session"
	"github.com/vovakirdan/pathquest/internal/storage"
)

// Level picker layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the best-results sidebar
	sidebarWidth       = 28
	maxResults         = 5
)

// LevelsKeyMap defines the key bindings for the level picker.
type LevelsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	PgUp   key.Binding
	PgDown key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LevelsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LevelsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PgUp, k.PgDown},
		{k.Select, k.Back, k.Quit},
	}
}

// DefaultLevelsKeyMap returns default key bindings.
func DefaultLevelsKeyMap() LevelsKeyMap {
	return LevelsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PgUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PgDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdn", "page down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "tab"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LevelsModel is the Bubble Tea model for the level picker. Locked levels
// are listed but cannot be selected.
type LevelsModel struct {
	sess        *session.Session
	store       *storage.Store // Optional; feeds the best-results sidebar
	progress    []level.Progress
	results     []storage.LevelResult
	table       table.Model
	help        help.Model
	keys        LevelsKeyMap
	width       int
	height      int
	selected    int // Chosen level ID, 0 while browsing
	message     string
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewLevelsModel creates a level picker positioned on the player's current level.
func NewLevelsModel(sess *session.Session, store *storage.Store, width, height int) LevelsModel {
	h := help.New()
	h.ShowAll = false

	m := LevelsModel{
		sess:        sess,
		store:       store,
		keys:        DefaultLevelsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.refresh()

	if cur := sess.State().CurrentLevelID; cur > 0 {
		m.table.SetCursor(cur - 1)
	}
	m.loadResults()
	return m
}

func (m *LevelsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Tier", Width: 10},
		{Title: "Size", Width: 6},
		{Title: "Stars", Width: 6},
		{Title: "Status", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// refresh rebuilds the rows from the repository flags.
func (m *LevelsModel) refresh() {
	gen := m.sess.Engine().Config().Generator
	m.progress = m.sess.Engine().Repository().Progress()

	rows := make([]table.Row, len(m.progress))
	for i, p := range m.progress {
		tierName, size := "?", 0
		if tier, err := gen.TierFor(p.ID); err == nil {
			tierName = tier.Name
			size = tier.GridSize(p.ID)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", p.ID),
			tierName,
			fmt.Sprintf("%dx%d", size, size),
			starString(p.Stars),
			statusString(p),
		}
	}
	m.table.SetRows(rows)
}

// loadResults loads the best results for the highlighted level.
func (m *LevelsModel) loadResults() {
	m.results = nil
	if m.store == nil {
		return
	}
	results, err := m.store.TopResults(m.table.Cursor()+1, maxResults)
	if err == nil {
		m.results = results
	}
}

// Init initializes the level picker.
func (m LevelsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the level picker.
func (m LevelsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Select):
			id := m.table.Cursor() + 1
			if id < 1 || id > len(m.progress) || !m.progress[id-1].Unlocked {
				m.message = fmt.Sprintf("Level %d is locked", id)
				return m, nil
			}
			m.selected = id
			return m, nil
		}

		m.message = ""
		m.table, cmd = m.table.Update(msg)
		m.loadResults()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.refresh()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the level picker.
func (m LevelsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	sum := m.sess.Summary()
	title := fmt.Sprintf("LEVELS  %d/%d complete  ★ %d", sum.Completed, sum.Levels, sum.TotalStars)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := boxStyle.Render(m.table.View())

	if m.showSidebar {
		sidebar := boxStyle.Width(sidebarWidth).Render(m.renderResults())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", sidebar))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Render(m.message))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderResults renders the best results of the highlighted level.
func (m LevelsModel) renderResults() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Best runs: level %d\n", m.table.Cursor()+1))
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")

	if len(m.results) == 0 {
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
		b.WriteString(empty.Render("No completions yet."))
		return b.String()
	}
	for i, r := range m.results {
		player := r.PlayerID
		if len(player) > 10 {
			player = player[:9] + "."
		}
		fmt.Fprintf(&b, "%d. %-10s %s %d/%d\n", i+1, player, starString(r.Stars), r.Moves, r.Budget)
	}
	return b.String()
}

// Selected returns the chosen level ID, or 0 if none was chosen.
func (m LevelsModel) Selected() int {
	return m.selected
}

// IsGoingBack returns true if the user left the picker without choosing.
func (m LevelsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LevelsModel) IsQuitting() bool {
	return m.quitting
}

func starString(stars int) string {
	stars = max(0, min(stars, level.MaxStars))
	return strings.Repeat("★", stars) + strings.Repeat("☆", level.MaxStars-stars)
}

func statusString(p level.Progress) string {
	switch {
	case p.Completed:
		return "done"
	case p.Unlocked:
		return "open"
	}
	return "locked"
}

// centerText centers text horizontally within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
