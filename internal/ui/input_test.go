package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSlashEntersFilterModeAndTypingNarrows(t *testing.T) {
	m, h := startedModel(newFakeCatalog())
	h.Send(keyRunes("/"))
	if !m.filterInput {
		t.Fatalf("expected filter input mode after /")
	}
	for _, r := range "har" {
		h.Send(keyRunes(string(r)))
	}

	level := m.currentLevel()
	if level.Filter != "har" {
		t.Fatalf("expected filter %q, got %q", "har", level.Filter)
	}
	if len(level.Items) != 1 || level.Items[0].Name != "Harvest" {
		t.Fatalf("expected filtered listing [Harvest], got %#v", level.Items)
	}
	prompt, _ := m.filterPrompt()
	if !strings.Contains(prompt, "har") {
		t.Fatalf("expected prompt to echo the filter, got %q", prompt)
	}
}

func TestFilterPreviewFollowsBestMatch(t *testing.T) {
	m, h := startedModel(newFakeCatalog())
	h.Send(keyRunes("/"))
	for _, r := range "kind" {
		h.Send(keyRunes(string(r)))
	}

	preview := m.stack.Preview()
	if preview == nil || preview.Title != "Kind of Blue" {
		t.Fatalf("expected preview to follow the match, got %#v", preview)
	}
}

func TestEnterAcceptsFilterAndLeavesInputMode(t *testing.T) {
	m, h := startedModel(newFakeCatalog())
	h.Send(keyRunes("/"))
	h.Send(keyRunes("h"))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	if m.filterInput {
		t.Fatalf("expected input mode to end on enter")
	}
	if m.currentLevel().Filter != "h" {
		t.Fatalf("expected filter to survive enter, got %q", m.currentLevel().Filter)
	}
}

func TestEscInFilterModeClearsFilter(t *testing.T) {
	m, h := startedModel(newFakeCatalog())
	h.Send(keyRunes("/"))
	h.Send(keyRunes("h"))
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})

	if m.filterInput {
		t.Fatalf("expected input mode to end on esc")
	}
	if m.currentLevel().Filter != "" {
		t.Fatalf("expected filter cleared, got %q", m.currentLevel().Filter)
	}
	if len(m.currentLevel().Items) != 2 {
		t.Fatalf("expected full listing restored, got %d items", len(m.currentLevel().Items))
	}
}

func TestBackspaceEditsFilter(t *testing.T) {
	m, h := startedModel(newFakeCatalog())
	h.Send(keyRunes("/"))
	for _, r := range "kin" {
		h.Send(keyRunes(string(r)))
	}
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})

	if got := m.currentLevel().Filter; got != "ki" {
		t.Fatalf("expected filter %q, got %q", "ki", got)
	}
}

func TestEscOnFilteredLevelClearsBeforePopping(t *testing.T) {
	m, h := startedModel(newFakeCatalog())
	h.Send(keyRunes("/"))
	h.Send(keyRunes("h"))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter}) // accept filter, leave input mode
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})   // first esc clears the filter

	if m.currentLevel().Filter != "" {
		t.Fatalf("expected filter cleared, got %q", m.currentLevel().Filter)
	}
	if m.stack.Depth() != 1 {
		t.Fatalf("expected to stay on the root level")
	}
}

func TestEscAtRootQuits(t *testing.T) {
	m, _ := startedModel(newFakeCatalog())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestCursorWrapsAtListEdges(t *testing.T) {
	m, h := startedModel(newFakeCatalog())
	h.Send(tea.KeyMsg{Type: tea.KeyUp})
	if sel, _ := m.currentLevel().Selected(); sel.Name != "Kind of Blue" {
		t.Fatalf("expected wrap to last album, got %q", sel.Name)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if sel, _ := m.currentLevel().Selected(); sel.Name != "Harvest" {
		t.Fatalf("expected wrap to first album, got %q", sel.Name)
	}
}
