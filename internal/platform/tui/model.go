package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pathquest/internal/core"
	"github.com/vovakirdan/pathquest/internal/gameplay"
	"github.com/vovakirdan/pathquest/internal/level"
	"github.com/vovakirdan/pathquest/internal/progress"
	"github.com/vovakirdan/pathquest/internal/registry"
	"github.com/vovakirdan/pathquest/internal/session"
	"github.com/vovakirdan/pathquest/internal/storage"
)

// hudInterval is how often the elapsed-time readout refreshes.
const hudInterval = time.Second

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hudStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// Model is the Bubble Tea model for playing levels through a session.
type Model struct {
	sess    *session.Session
	store   *storage.Store
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	message string
	warn    bool

	// Power-up targeting
	aiming level.PowerUp
	cursor core.Position

	levels     *LevelsModel
	showLevels bool
	quitting   bool
}

// NewModel creates a play model. With no level in progress the level picker
// opens first.
func NewModel(sess *session.Session, store *storage.Store, cfg core.RuntimeConfig) Model {
	m := Model{
		sess:   sess,
		store:  store,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	if !sess.State().IsPlaying() {
		m.openLevels()
	}
	return m
}

// Init starts the HUD clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(hudInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		if m.showLevels {
			return m.updateLevels(msg)
		}
		return m, nil

	case TickMsg:
		return m, tickCmd(hudInterval)

	case tea.KeyMsg:
		if m.showLevels {
			return m.updateLevels(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) openLevels() {
	lm := NewLevelsModel(m.sess, m.store, m.config.ScreenW, m.config.ScreenH)
	m.levels = &lm
	m.showLevels = true
}

func (m Model) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levels.Update(msg)
	lm, ok := next.(LevelsModel)
	if !ok {
		return m, cmd
	}
	m.levels = &lm

	switch {
	case lm.IsQuitting():
		return m.quit()
	case lm.Selected() > 0:
		m.showLevels = false
		m.levels = nil
		m.setResult(m.sess.Start(lm.Selected()), fmt.Sprintf("Level %d", lm.Selected()))
	case lm.IsGoingBack():
		m.showLevels = false
		m.levels = nil
	}
	return m, cmd
}

// handleKey processes keyboard input on the play screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Levels):
		m.aiming = ""
		m.openLevels()
		return m, nil
	}

	if m.aiming != "" {
		return m.handleAim(msg), nil
	}

	if dir, ok := m.keys.Direction(msg); ok {
		m.applyMove(dir)
		return m, nil
	}
	if pu, ok := m.keys.PowerUp(msg); ok {
		m.startPowerUp(pu)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Hint):
		m.setResult(m.sess.Hint(), "Hint revealed")
	case key.Matches(msg, m.keys.Restart):
		m.setResult(m.sess.Restart(), "Restarted")
	case key.Matches(msg, m.keys.Next):
		if m.sess.State().CurrentLevelID == 0 {
			m.setResult(m.sess.Start(1), "Level 1")
		} else {
			m.setResult(m.sess.Next(), fmt.Sprintf("Level %d", m.sess.State().CurrentLevelID+1))
		}
	}
	return m, nil
}

// handleAim moves the target cursor until the power-up is confirmed or cancelled.
func (m Model) handleAim(msg tea.KeyMsg) Model {
	if dir, ok := m.keys.Direction(msg); ok {
		next := m.cursor.Step(dir)
		if m.sess.State().Board.InBounds(next) {
			m.cursor = next
		}
		return m
	}
	switch {
	case key.Matches(msg, m.keys.Confirm):
		pu := m.aiming
		m.aiming = ""
		m.setResult(m.sess.PowerUp(pu, m.cursor), powerUpLabel(pu)+" used")
	case key.Matches(msg, m.keys.Cancel):
		m.aiming = ""
		m.message = ""
	}
	return m
}

func (m *Model) startPowerUp(pu level.PowerUp) {
	st := m.sess.State()
	if pu == level.PowerUpExtraMoves || !st.IsPlaying() || st.PowerUps.Count(pu) == 0 {
		m.setResult(m.sess.PowerUp(pu, st.PlayerPos), powerUpLabel(pu)+" used")
		return
	}
	m.aiming = pu
	m.cursor = st.PlayerPos
	m.message = fmt.Sprintf("%s: pick a cell, enter to confirm, esc to cancel", powerUpLabel(pu))
	m.warn = false
}

func (m *Model) applyMove(dir core.Direction) {
	res := m.sess.Move(dir)
	m.warn = false
	switch {
	case res.Rejected:
		m.message, m.warn = rejectMessage(res.Reason), true
	case res.Completed:
		m.message = fmt.Sprintf("Level complete! %s  +%d coins  (n: next level)", starString(res.Stars), res.CoinsGained)
		if res.Improved {
			m.message += "  new best"
		}
	case res.Failed:
		m.message, m.warn = fmt.Sprintf("Out of moves. %d lives left (r: retry)", m.sess.State().Lives), true
	case res.Picked:
		m.message = "Picked up " + res.Collected.String()
	case res.Hurdle:
		m.message = "Hurdle"
	default:
		m.message = ""
	}
	if len(res.Unlocked) > 0 {
		m.message += "  Achievement: " + achievementTitles(res.Unlocked)
	}
}

// setResult shows ok on success or the error text on failure.
func (m *Model) setResult(err error, ok string) {
	if err != nil {
		m.message, m.warn = errorMessage(err), true
		return
	}
	m.message, m.warn = ok, false
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if err := m.sess.Save(); err != nil {
		m.message = errorMessage(err)
	}
	return m, tea.Quit
}

// View renders the play screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showLevels && m.levels != nil {
		return m.levels.View()
	}

	st := m.sess.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title(st)))
	b.WriteString("\n\n")

	if st.Board != nil {
		var cursor *core.Position
		if m.aiming != "" {
			cursor = &m.cursor
		}
		b.WriteString(boardStyle.Render(RenderCanvas(DrawBoard(st, cursor))))
		b.WriteString("\n")
	} else {
		b.WriteString(helpStyle.Render("No level in progress. Press n to play or tab to pick a level."))
		b.WriteString("\n")
	}

	b.WriteString(hudStyle.Render(m.hud(st)))
	b.WriteString("\n")

	if m.message != "" {
		style := infoStyle
		if m.warn {
			style = warnStyle
		}
		b.WriteString(style.Render(m.message))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) title(st gameplay.GameState) string {
	if st.CurrentLevelID == 0 {
		return "PATHQUEST"
	}
	tier := ""
	if band, err := m.sess.Engine().Config().Generator.TierFor(st.CurrentLevelID); err == nil {
		tier = " - " + band.Name
	}
	return fmt.Sprintf("PATHQUEST  Level %d%s  [%s]", st.CurrentLevelID, tier, st.Status)
}

func (m Model) hud(st gameplay.GameState) string {
	elapsed := st.Elapsed
	if st.IsPlaying() {
		elapsed = m.sess.Engine().Now().Sub(st.StartedAt)
	}
	lines := []string{
		fmt.Sprintf("Moves %d/%d   Coins %d   Lives %d   Hints %d   Time %s",
			st.MovesUsed, st.Budget(), st.Coins, st.Lives, st.Hints, elapsed.Truncate(time.Second)),
		fmt.Sprintf("Power-ups %d (teleport %d, wall-break %d, extra moves %d)   Daily streak %d",
			st.PowerUps.Total(), st.PowerUps.Teleport, st.PowerUps.WallBreak, st.PowerUps.ExtraMoves, st.Daily.Streak),
	}
	return strings.Join(lines, "\n")
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

func powerUpLabel(pu level.PowerUp) string {
	switch pu {
	case level.PowerUpTeleport:
		return "Teleport"
	case level.PowerUpWallBreak:
		return "Wall-break"
	case level.PowerUpExtraMoves:
		return "Extra moves"
	}
	return string(pu)
}

func rejectMessage(reason gameplay.RejectReason) string {
	switch reason {
	case gameplay.RejectObstacle:
		return "Blocked"
	case gameplay.RejectOutOfBounds:
		return "That's the edge of the map"
	case gameplay.RejectNotPlaying:
		return "No level in progress (n: play, r: retry)"
	}
	return string(reason)
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, gameplay.ErrLevelLocked):
		return "That level is still locked"
	case errors.Is(err, gameplay.ErrNoHints):
		return "No hints left"
	case errors.Is(err, gameplay.ErrNoPowerUp):
		return "You don't have that power-up"
	case errors.Is(err, gameplay.ErrInvalidTarget):
		return "Can't target that cell"
	case errors.Is(err, gameplay.ErrNotPlaying):
		return "No level in progress"
	case errors.Is(err, gameplay.ErrUnknownLevel):
		return "That was the last level"
	case errors.Is(err, gameplay.ErrInsufficientCoins):
		return "Not enough coins"
	}
	return err.Error()
}

func achievementTitles(unlocked []progress.AchievementProgress) string {
	titles := make([]string, 0, len(unlocked))
	for _, u := range unlocked {
		if a, err := registry.Lookup(u.ID); err == nil {
			titles = append(titles, a.Title)
		} else {
			titles = append(titles, u.ID)
		}
	}
	return strings.Join(titles, ", ")
}

// Run starts the Bubble Tea program for a local session.
func Run(sess *session.Session, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(sess, store, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
