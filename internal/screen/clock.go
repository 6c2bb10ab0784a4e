package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// TickMsg is the once-a-second countdown tick of one session. The app
// drops ticks whose SessionID is not the current session.
type TickMsg struct {
	SessionID string
	At        time.Time
}

// SessionEndedMsg tells the active screen that the countdown expired the
// current session.
type SessionEndedMsg struct{}

// Tick schedules the next countdown tick for a session.
func Tick(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{SessionID: sessionID, At: t}
	})
}
