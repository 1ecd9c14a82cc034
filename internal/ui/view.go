package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/discstack/discstack/internal/browser"
)

const (
	previewMaxDisplayLines = 20  // inline (vertical) preview only
	previewPanelMinWidth   = 40  // minimum cols for the preview panel; below this no split
	previewPanelFraction   = 0.5 // fraction of total width given to the preview panel
)

var (
	previewBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	previewScrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// hasSidePreview reports whether the preview should be rendered as a panel on
// the right rather than inline below the items.
func (m *Model) hasSidePreview() bool {
	return m.previewPanelWidth() > 0
}

// previewPanelWidth returns the width in columns for the right-hand preview
// panel. Returns 0 when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) listColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.breadcrumb()
	if m.hasSidePreview() {
		return m.viewSideBySide(header)
	}
	return m.viewVertical(header)
}

// viewVertical is the single-column layout with the preview inline below the
// items, used when the terminal is too narrow for side-by-side.
func (m *Model) viewVertical(header string) string {
	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	lines = append(lines, m.itemLines(m.width)...)
	if preview := m.stack.Preview(); preview != nil || m.previewPending() {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: previewTitleText(preview), style: styles.PreviewTitle})
		body := previewBodyLines(preview)
		if len(body) > previewMaxDisplayLines {
			body = body[:previewMaxDisplayLines]
		}
		lines = append(lines, body...)
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerText, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	bottomLines := applyWidth(m.bottomBarLines(), m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

// viewSideBySide renders the item list on the left and the preview panel on
// the right, with the status bar and filter prompt spanning the full width
// beneath both columns.
func (m *Model) viewSideBySide(header string) string {
	listW := m.listColumnWidth()
	prevW := m.previewPanelWidth()
	const bottomBarRows = 2

	contentLines := make([]styledLine, 0, 16)
	if header != "" {
		contentLines = append(contentLines, styledLine{text: header, style: styles.Header})
	}
	contentLines = append(contentLines, m.itemLines(listW)...)
	if info := m.currentInfo(); info != "" {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: footerText, style: styles.Footer})
	}

	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = 1
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	contentLines = applyWidth(contentLines, listW)
	leftStr := renderLines(contentLines)

	// Pad every rendered row to exactly listW visible columns so
	// JoinHorizontal keeps the preview panel flush to the right edge.
	leftRows := strings.Split(leftStr, "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > listW {
			leftRows[i] = truncate.StringWithTail(row, uint(listW-1), "…")
		} else if w < listW {
			leftRows[i] = row + strings.Repeat(" ", listW-w)
		}
	}
	leftStr = strings.Join(leftRows, "\n")

	rightStr := m.renderPreviewPanel(m.stack.Preview(), prevW, panelH)
	topSection := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)

	bottomStr := renderLines(applyWidth(m.bottomBarLines(), m.width))
	return topSection + "\n" + bottomStr
}

const footerText = "↑/↓ move  enter play  →/l open  a add  A add all  / filter  esc back  q quit"

// itemLines builds the styled lines for the visible slice of the current
// level's items.
func (m *Model) itemLines(width int) []styledLine {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	m.syncViewport(current)
	lines := make([]styledLine, 0, len(current.Items)+1)
	start := 0
	displayItems := current.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
		start = current.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(displayItems) {
			start = len(displayItems) - maxItems
			if start < 0 {
				start = 0
			}
			current.ViewportOffset = start
		}
		displayItems = displayItems[start : start+maxItems]
	}
	if len(current.Items) == 0 {
		msg := "(no entries)"
		if m.loading {
			msg = "Loading…"
		} else if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		style := styles.Info
		if m.loading {
			style = styles.Loading
		}
		return append(lines, styledLine{text: msg, style: style})
	}
	for i, item := range displayItems {
		lines = append(lines, m.buildItemLine(item, start+i, current, width))
	}
	return lines
}

func (m *Model) bottomBarLines() []styledLine {
	var statusLine styledLine
	switch {
	case m.errMsg != "":
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.backendLastErr != "":
		statusLine = styledLine{text: fmt.Sprintf("Server: %s", m.backendLastErr), style: styles.Error}
	}
	promptText, _ := m.filterPrompt()
	return []styledLine{
		statusLine,
		{text: promptText},
	}
}

// buildItemLine constructs a single styledLine for a list entry. Directories
// and songs differ only in style; when width > 0 the text is padded so the
// selected item's background spans the full column.
func (m *Model) buildItemLine(item browser.Item, idx int, current *browser.Level, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	if item.Kind == browser.KindDir {
		lineStyle = styles.Dir
	}
	indicatorStyle := styles.ItemIndicator
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + item.Label()
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// renderPreviewPanel builds the bordered preview box as a string with exactly
// height rows and totalWidth columns.
func (m *Model) renderPreviewPanel(preview *browser.Preview, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleLabel := "Preview"
	scrollInfo := ""
	var contentLines []styledLine

	if preview != nil {
		if title := strings.TrimSpace(previewTitle(preview)); title != "" {
			titleLabel = "Preview: " + title
		}
		all := previewBodyLines(preview)
		if len(all) > 0 {
			maxOffset := len(all) - innerH
			if maxOffset < 0 {
				maxOffset = 0
			}
			if m.previewScroll > maxOffset {
				m.previewScroll = maxOffset
			}
			if m.previewScroll < 0 {
				m.previewScroll = 0
			}
			end := m.previewScroll + innerH
			if end > len(all) {
				end = len(all)
			}
			contentLines = all[m.previewScroll:end]
			lastVisible := m.previewScroll + len(contentLines)
			scrollInfo = fmt.Sprintf(" %d/%d ", lastVisible, len(all))
		}
	} else if m.previewPending() {
		contentLines = []styledLine{{text: "Loading…", style: styles.PreviewBody}}
	}

	// Top border: ╭─ title ──────────── scrollInfo ─╮
	titleSeg := " " + titleLabel + " "
	scrollSeg := scrollInfo
	dashes := totalWidth - 4 - len([]rune(titleSeg)) - len([]rune(scrollSeg))
	if dashes < 0 {
		scrollSeg = ""
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := previewBorderStyle.Render(tlc+hz) +
		styles.PreviewTitle.Render(titleSeg) +
		previewBorderStyle.Render(strings.Repeat(hz, dashes)) +
		previewScrollStyle.Render(scrollSeg) +
		previewBorderStyle.Render(hz+trc)
	bottomLine := previewBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var line styledLine
		if i < len(contentLines) {
			line = contentLines[i]
		}
		content := line.text
		if w := len([]rune(content)); w > innerW {
			content = truncateText(content, innerW)
		} else if w < innerW {
			content += strings.Repeat(" ", innerW-w)
		}
		line.text = content
		rows = append(rows, previewBorderStyle.Render(vt)+renderStyledText(line)+previewBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

// handleMouseMsg scrolls the side preview panel with the wheel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if !m.hasSidePreview() {
		return nil
	}
	preview := m.stack.Preview()
	if preview == nil {
		return nil
	}
	innerH := m.height - 4
	if innerH < 1 {
		innerH = 1
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.previewScroll -= 3
		if m.previewScroll < 0 {
			m.previewScroll = 0
		}
	case tea.MouseButtonWheelDown:
		maxOffset := len(previewBodyLines(preview)) - innerH
		if maxOffset < 0 {
			maxOffset = 0
		}
		m.previewScroll += 3
		if m.previewScroll > maxOffset {
			m.previewScroll = maxOffset
		}
	}
	return nil
}

// breadcrumb renders the navigation path: the root title followed by the
// selected directory of each ancestor level.
func (m *Model) breadcrumb() string {
	segments := []string{rootTitle}
	segments = append(segments, m.stack.Path()...)
	return strings.Join(segments, " › ")
}

// previewPending reports whether a selection exists with no preview on
// display yet.
func (m *Model) previewPending() bool {
	if m.stack.Preview() != nil {
		return false
	}
	_, ok := m.currentLevel().Selected()
	return ok
}

func previewTitle(p *browser.Preview) string {
	if p == nil {
		return ""
	}
	if p.Song != nil {
		return p.Song.DisplayTitle()
	}
	return p.Title
}

// previewBodyLines flattens a preview into display lines: the track listing
// for an album, the tag table for a song with the tag labels styled
// separately from their values.
func previewBodyLines(p *browser.Preview) []styledLine {
	if p == nil {
		return []styledLine{{text: "Loading…", style: styles.PreviewBody}}
	}
	if p.Song != nil {
		meta := p.Song.Metadata()
		lines := make([]styledLine, 0, len(meta))
		for _, pair := range meta {
			lines = append(lines, styledLine{
				text:          fmt.Sprintf("%-12s %s", pair[0]+":", pair[1]),
				style:         styles.PreviewBody,
				prefixStyle:   styles.PreviewLabel,
				highlightFrom: 12, // the padded label column
			})
		}
		return lines
	}
	if len(p.List) == 0 {
		return []styledLine{{text: "(empty album)", style: styles.PreviewBody}}
	}
	lines := make([]styledLine, 0, len(p.List))
	for _, entry := range p.List {
		lines = append(lines, styledLine{text: entry, style: styles.PreviewBody})
	}
	return lines
}

func previewTitleText(p *browser.Preview) string {
	title := strings.TrimSpace(previewTitle(p))
	if title == "" {
		return "Preview (loading…)"
	}
	return "Preview: " + title
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // header + bottom bar (error/status + filter prompt)
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	if !m.hasSidePreview() {
		if preview := m.stack.Preview(); preview != nil {
			body := previewBodyLines(preview)
			if len(body) > previewMaxDisplayLines {
				body = body[:previewMaxDisplayLines]
			}
			used += 2 + len(body) // blank separator + title + body
		} else if m.previewPending() {
			used += 3 // blank + title + "Loading…"
		}
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = line
		result[i].text = truncateText(line.text, width)
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = renderStyledText(line)
	}
	return strings.Join(out, "\n")
}

func renderStyledText(line styledLine) string {
	text := line.text
	runes := []rune(text)
	if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
		head := string(runes[:line.highlightFrom])
		tail := string(runes[line.highlightFrom:])
		if line.prefixStyle != nil {
			head = line.prefixStyle.Render(head)
		}
		if line.style != nil {
			tail = line.style.Render(tail)
		}
		return head + tail
	}
	if line.style != nil {
		return line.style.Render(text)
	}
	return text
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
