package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/discstack/discstack/internal/browser"
	"github.com/discstack/discstack/internal/logging"
	"github.com/discstack/discstack/internal/logging/events"
	"github.com/discstack/discstack/internal/query"
)

// Payload variants carried inside query.Done. Each one is applied by
// handleQueryDoneMsg after the result has passed the staleness checks.
type (
	rootLoaded struct {
		names []string
	}
	levelLoaded struct {
		items []browser.Item
	}
	previewLoaded struct {
		preview *browser.Preview
	}
	queueLenLoaded struct {
		length int
	}
)

// handleQueryDoneMsg routes an asynchronous completion. Results are vetted in
// order: owner, then slot generation, then (for path-sensitive payloads) the
// origin path recorded at submission. A result that fails any check is dropped
// without touching pane state.
func (m *Model) handleQueryDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(query.Done)
	if !ok {
		return nil
	}
	if done.Owner != m.correlator.Owner() {
		return nil
	}
	if !m.correlator.Current(done.Slot, done.Gen) {
		events.Query.DroppedSuperseded(string(done.ID), string(done.Slot), done.Gen, m.correlator.Generation(done.Slot))
		return nil
	}
	if done.Slot == slotInit || done.Slot == slotOpen {
		m.loading = false
	}
	if done.Err != nil {
		m.errMsg = done.Err.Error()
		logging.Error(done.Err)
		return nil
	}
	m.errMsg = ""

	switch payload := done.Payload.(type) {
	case rootLoaded:
		root := browser.NewLevel(rootTitle, browser.DirsFromNames(payload.names))
		m.stack = browser.NewStack(root)
		m.filterInput = false
		m.syncViewport(root)
		return m.preparePreview()
	case levelLoaded:
		if !browser.PathEqual(done.Origin, m.stack.Path()) {
			events.Query.DroppedPath(string(done.ID), done.Origin, m.stack.Path())
			return nil
		}
		m.stack.ReplaceCurrent(payload.items)
		m.syncViewport(m.currentLevel())
		return m.preparePreview()
	case previewLoaded:
		if !m.stack.SetPreview(payload.preview) {
			events.Query.DroppedPath(string(done.ID), payload.preview.Origin, m.stack.Path())
		}
		return nil
	case queueLenLoaded:
		m.queueLen = payload.length
		return nil
	default:
		return nil
	}
}
