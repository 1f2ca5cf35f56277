package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pathquest/internal/core"
	"github.com/vovakirdan/pathquest/internal/level"
)

// KeyMap defines the key bindings for the play screen.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Hint       key.Binding
	Restart    key.Binding
	Next       key.Binding
	Teleport   key.Binding
	WallBreak  key.Binding
	ExtraMoves key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Levels     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Hint, k.Restart, k.Levels, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Hint, k.Restart, k.Next, k.Levels},
		{k.Teleport, k.WallBreak, k.ExtraMoves, k.Confirm, k.Cancel},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Hint: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hint"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next level"),
		),
		Teleport: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "teleport"),
		),
		WallBreak: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "break wall"),
		),
		ExtraMoves: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "extra moves"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Levels: key.NewBinding(
			key.WithKeys("L", "tab"),
			key.WithHelp("tab", "levels"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Direction maps a movement key to a direction.
func (k KeyMap) Direction(msg tea.KeyMsg) (core.Direction, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return core.DirUp, true
	case key.Matches(msg, k.Down):
		return core.DirDown, true
	case key.Matches(msg, k.Left):
		return core.DirLeft, true
	case key.Matches(msg, k.Right):
		return core.DirRight, true
	}
	return 0, false
}

// PowerUp maps a power-up key to its kind.
func (k KeyMap) PowerUp(msg tea.KeyMsg) (level.PowerUp, bool) {
	switch {
	case key.Matches(msg, k.Teleport):
		return level.PowerUpTeleport, true
	case key.Matches(msg, k.WallBreak):
		return level.PowerUpWallBreak, true
	case key.Matches(msg, k.ExtraMoves):
		return level.PowerUpExtraMoves, true
	}
	return "", false
}
