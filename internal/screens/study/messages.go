package study

import tea "charm.land/bubbletea/v2"

// sessionChangedMsg is sent whenever the conversation session mutates.
// gen identifies the waiter that produced it.
type sessionChangedMsg struct {
	gen int
}

// sessionClosedMsg is sent once the session's change channel is closed.
type sessionClosedMsg struct{}

// waitForChange blocks on the session's change channel. The screen re-arms
// it after every sessionChangedMsg of the current generation, so one live
// waiter is outstanding. A resumed screen starts a new generation because
// the previous waiter's message may have gone to a covering screen.
func waitForChange(changes <-chan struct{}, gen int) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return sessionClosedMsg{}
		}
		return sessionChangedMsg{gen: gen}
	}
}
