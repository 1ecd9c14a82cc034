package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/discstack/discstack/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.filterInput {
		return m.handleFilterKey(key)
	}
	return m.handleBrowseKey(key)
}

func (m *Model) handleBrowseKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		if m.currentLevel().Filter != "" {
			m.clearFilter()
			return m.preparePreview()
		}
		if m.stack.Depth() == 1 {
			return tea.Quit
		}
		return m.navigateBack()
	case "left", "h":
		return m.navigateBack()
	case "enter":
		m.forceClearInfo()
		return m.openOrPlay(true)
	case "right", "l":
		m.forceClearInfo()
		return m.openOrPlay(false)
	case "a":
		m.forceClearInfo()
		return m.enqueueSelected()
	case "A":
		m.forceClearInfo()
		return m.enqueueAll()
	case "up", "k":
		return m.afterCursorMove(m.currentLevel().MoveCursorUp())
	case "down", "j":
		return m.afterCursorMove(m.currentLevel().MoveCursorDown())
	case "home", "g":
		return m.afterCursorMove(m.currentLevel().MoveCursorHome())
	case "end", "G":
		return m.afterCursorMove(m.currentLevel().MoveCursorEnd())
	case "pgup", "ctrl+b":
		return m.afterCursorMove(m.currentLevel().MoveCursorPageUp(m.maxVisibleItems()))
	case "pgdown", "ctrl+f":
		return m.afterCursorMove(m.currentLevel().MoveCursorPageDown(m.maxVisibleItems()))
	case "/":
		m.filterInput = true
		m.filterCursorDirty = true
		events.Filter.Active(true)
		return nil
	}
	return nil
}

func (m *Model) handleFilterKey(key tea.KeyMsg) tea.Cmd {
	level := m.currentLevel()
	depth := m.stack.Depth() - 1
	switch key.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.clearFilter()
		m.filterInput = false
		events.Filter.Active(false)
		return m.preparePreview()
	case "enter":
		m.filterInput = false
		events.Filter.Active(false)
		return nil
	case "backspace":
		if level.DeleteFilterRuneBackward() {
			events.Filter.Backspace(depth, level.Filter)
			m.filterCursorDirty = true
			m.syncViewport(level)
			return m.preparePreview()
		}
		return nil
	case "ctrl+w":
		if level.DeleteFilterWordBackward() {
			events.Filter.WordBackspace(depth, level.Filter)
			m.filterCursorDirty = true
			m.syncViewport(level)
			return m.preparePreview()
		}
		return nil
	case "ctrl+u":
		if level.Filter != "" {
			m.clearFilter()
			m.syncViewport(level)
			return m.preparePreview()
		}
		return nil
	case "ctrl+a", "home":
		if level.MoveFilterCursorStart() {
			events.Filter.Cursor(depth, level.FilterCursorPos())
			m.filterCursorDirty = true
		}
		return nil
	case "ctrl+e", "end":
		if level.MoveFilterCursorEnd() {
			events.Filter.Cursor(depth, level.FilterCursorPos())
			m.filterCursorDirty = true
		}
		return nil
	case "left":
		if level.MoveFilterCursorRuneBackward() {
			events.Filter.Cursor(depth, level.FilterCursorPos())
			m.filterCursorDirty = true
		}
		return nil
	case "right":
		if level.MoveFilterCursorRuneForward() {
			events.Filter.Cursor(depth, level.FilterCursorPos())
			m.filterCursorDirty = true
		}
		return nil
	case "up":
		return m.afterCursorMove(m.currentLevel().MoveCursorUp())
	case "down":
		return m.afterCursorMove(m.currentLevel().MoveCursorDown())
	}
	switch key.Type {
	case tea.KeySpace:
		return m.insertFilterText(" ")
	case tea.KeyRunes:
		if key.Alt {
			return nil
		}
		return m.insertFilterText(string(key.Runes))
	}
	return nil
}

func (m *Model) insertFilterText(text string) tea.Cmd {
	level := m.currentLevel()
	if !level.InsertFilterText(text) {
		return nil
	}
	events.Filter.Append(m.stack.Depth()-1, level.Filter)
	m.filterCursorDirty = true
	m.syncViewport(level)
	return m.preparePreview()
}

func (m *Model) clearFilter() {
	level := m.currentLevel()
	if level.Filter == "" {
		return
	}
	level.SetFilter("", 0)
	events.Filter.Cleared(m.stack.Depth() - 1)
	m.filterCursorDirty = true
	m.syncViewport(level)
}

// navigateBack pops one level, restoring the parent's cursor, and schedules a
// fresh preview for the selection the user lands on.
func (m *Model) navigateBack() tea.Cmd {
	if !m.stack.Pop() {
		return nil
	}
	m.loading = false
	m.filterInput = false
	m.errMsg = ""
	level := m.currentLevel()
	m.syncViewport(level)
	events.UI.Back(m.stack.Path())
	return m.preparePreview()
}

// afterCursorMove clamps the viewport and schedules the preview for the new
// selection once a cursor movement actually changed it.
func (m *Model) afterCursorMove(moved bool) tea.Cmd {
	if !moved {
		return nil
	}
	level := m.currentLevel()
	m.syncViewport(level)
	events.UI.Cursor(m.stack.Depth()-1, level.Cursor)
	return m.preparePreview()
}

// filterPrompt renders the bottom filter line: a passive hint or the stored
// filter outside input mode, the editable query with a cursor inside it.
func (m *Model) filterPrompt() (string, *lipgloss.Style) {
	current := m.currentLevel()
	if current == nil {
		return "/", styles.Filter
	}
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "/ "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if !m.filterInput {
		if current.Filter == "" {
			return render(styles.FilterPlaceholder, "press / to filter"), nil
		}
		return prompt + render(styles.Filter, current.Filter), nil
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = *styles.Filter
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	text := current.Filter
	if text == "" {
		placeholder := "(type to search)"
		runes := []rune(placeholder)
		caretRune := string(runes[0])
		rest := string(runes[1:])
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = *styles.FilterPlaceholder
		}
		caret := m.renderFilterCursor(caretRune)
		return prompt + caret + render(styles.FilterPlaceholder, rest), nil
	}
	runes := []rune(text)
	pos := current.FilterCursorPos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	caret := m.renderFilterCursor(caretRune)
	return prompt + before + caret + after, nil
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}

// updateFilterCursorModel forwards non-key messages (blink ticks) to the
// embedded cursor model.
func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	if _, isKey := msg.(tea.KeyMsg); isKey {
		return nil
	}
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}
