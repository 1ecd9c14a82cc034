package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/discstack/discstack/internal/backend"
	"github.com/discstack/discstack/internal/logging"
)

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// waitForBackendEvent blocks on the watcher's event channel and converts
// whatever arrives into a message. It reschedules itself from the handler so
// exactly one reader exists at a time.
func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: event}
	}
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	evt, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	var cmds []tea.Cmd
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	event := evt.event
	switch {
	case event.Err != nil:
		m.backendLastErr = event.Err.Error()
		logging.Error(event.Err)
	case event.Kind == backend.KindDatabase:
		if m.verbose {
			m.setInfo("Catalog updated, reloading albums")
		}
		cmds = append(cmds, m.submitInit(), m.submitQueueLen())
	case event.Kind == backend.KindQueue:
		cmds = append(cmds, m.submitQueueLen())
	case event.Kind == backend.KindReconnect:
		m.backendLastErr = ""
		if m.verbose {
			m.setInfo("Reconnected to server")
		}
		cmds = append(cmds, m.submitInit(), m.submitQueueLen())
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}
