package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/discstack/discstack/internal/browser"
	"github.com/discstack/discstack/internal/mpd"
)

func TestViewShowsAlbumsAndPreviewPanel(t *testing.T) {
	_, h := startedModel(newFakeCatalog())
	view := h.View()

	for _, want := range []string{"Harvest", "Kind of Blue", "Preview: Harvest", "Out on the Weekend"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q\n%s", want, view)
		}
	}
}

func TestViewNarrowTerminalRendersInlinePreview(t *testing.T) {
	f := newFakeCatalog()
	m := NewModel(f, mpd.SortByTrack, 36, 24, false, false, nil)
	h := NewHarness(m)
	h.Start()
	view := h.View()

	if m.hasSidePreview() {
		t.Fatalf("expected no side preview at width 36")
	}
	if !strings.Contains(view, "Preview: Harvest") {
		t.Fatalf("expected inline preview title\n%s", view)
	}
}

func TestViewShowsErrorLine(t *testing.T) {
	m, h := startedModel(newFakeCatalog())
	m.errMsg = "connection refused"
	if !strings.Contains(h.View(), "Error: connection refused") {
		t.Fatalf("expected error line in view")
	}
}

func TestBreadcrumbTracksPath(t *testing.T) {
	m, h := startedModel(newFakeCatalog())
	if got := m.breadcrumb(); got != "albums" {
		t.Fatalf("expected root breadcrumb, got %q", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.breadcrumb(); got != "albums › Harvest" {
		t.Fatalf("expected breadcrumb with album, got %q", got)
	}
}

func TestFooterShownWhenEnabled(t *testing.T) {
	f := newFakeCatalog()
	m := NewModel(f, mpd.SortByTrack, 100, 30, true, false, nil)
	h := NewHarness(m)
	h.Start()
	if !strings.Contains(h.View(), "enter play") {
		t.Fatalf("expected footer hints in view")
	}
	_ = m
}

func TestSongPreviewPanelShowsTagTable(t *testing.T) {
	_, h := startedModel(newFakeCatalog())
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	view := h.View()

	for _, want := range []string{"Artist:", "Neil Young", "Track:", "4:34"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected song preview to contain %q\n%s", want, view)
		}
	}
}

func TestSongPreviewLinesStyleTagLabels(t *testing.T) {
	song := mpd.Song{
		File:   "harvest/01.flac",
		Title:  "Out on the Weekend",
		Artist: "Neil Young",
		Album:  "Harvest",
	}
	preview := browser.SongPreview([]string{"Harvest"}, song)

	lines := previewBodyLines(preview)
	if len(lines) == 0 {
		t.Fatal("expected body lines for a song preview")
	}
	for _, line := range lines {
		if line.prefixStyle != styles.PreviewLabel {
			t.Fatalf("expected tag label style on %q", line.text)
		}
		if line.highlightFrom != 12 {
			t.Fatalf("expected label column width 12 on %q, got %d", line.text, line.highlightFrom)
		}
		if !strings.HasSuffix(strings.TrimRight(string([]rune(line.text)[:12]), " "), ":") {
			t.Fatalf("expected a label ending in a colon in %q", line.text)
		}
	}
}
