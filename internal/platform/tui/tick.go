// Package tui is the Bubble Tea front end: the play screen, the level picker
// and the Wish SSH server that hosts both for remote players.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg refreshes the HUD clock while a level is being played.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a TickMsg after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
