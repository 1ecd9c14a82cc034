package browser

import (
	"reflect"
	"testing"

	"github.com/discstack/discstack/internal/mpd"
)

func TestPathLengthIsAlwaysDepthMinusOne(t *testing.T) {
	root := newTestLevel("A", "B")
	root.Cursor = 0
	s := NewStack(root)

	if got := s.Path(); len(got) != 0 {
		t.Fatalf("expected empty path at root, got %v", got)
	}

	s.Push(NewLevel("A", nil))
	path := s.Path()
	if len(path) != s.Depth()-1 {
		t.Fatalf("path length %d, depth %d", len(path), s.Depth())
	}
	if !reflect.DeepEqual(path, []string{"A"}) {
		t.Fatalf("expected path [A], got %v", path)
	}
}

func TestNextPathExtendsWithSelection(t *testing.T) {
	root := newTestLevel("A", "B")
	root.Cursor = 1
	s := NewStack(root)

	next, ok := s.NextPath()
	if !ok {
		t.Fatalf("expected a next path")
	}
	if !reflect.DeepEqual(next, []string{"B"}) {
		t.Fatalf("expected [B], got %v", next)
	}

	empty := NewStack(newTestLevel())
	if _, ok := empty.NextPath(); ok {
		t.Fatalf("expected no next path without a selection")
	}
}

func TestReplaceCurrentFillsPlaceholderLevel(t *testing.T) {
	root := newTestLevel("A")
	root.Cursor = 0
	s := NewStack(root)
	s.Push(NewLevel("A", nil))

	songs := []mpd.Song{
		{File: "a/1.flac", Title: "e1"},
		{File: "a/2.flac", Title: "e2"},
		{File: "a/3.flac", Title: "e3"},
	}
	s.ReplaceCurrent(ItemsFromSongs(songs))

	current := s.Current()
	if len(current.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(current.Items))
	}
	for i, want := range []string{"e1", "e2", "e3"} {
		if current.Items[i].Label() != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, current.Items[i].Label())
		}
	}
	if !reflect.DeepEqual(s.Path(), []string{"A"}) {
		t.Fatalf("expected path [A], got %v", s.Path())
	}
}

func TestPopDropsLevelAndPreview(t *testing.T) {
	root := newTestLevel("A")
	root.Cursor = 0
	s := NewStack(root)
	s.Push(NewLevel("A", nil))
	s.SetPreview(&Preview{Origin: []string{"A"}, Title: "p"})

	if !s.Pop() {
		t.Fatalf("expected pop to succeed")
	}
	if s.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", s.Depth())
	}
	if s.Preview() != nil {
		t.Fatalf("expected preview dropped on pop")
	}
	if s.Pop() {
		t.Fatalf("expected pop at root to fail")
	}
}

func TestSetPreviewRejectsStaleOrigin(t *testing.T) {
	root := newTestLevel("A", "B")
	root.Cursor = 0
	s := NewStack(root)

	// Preview computed for ["A"] while the live path is the root.
	if s.SetPreview(&Preview{Origin: []string{"A"}, Title: "stale"}) {
		t.Fatalf("expected stale preview to be rejected")
	}
	if s.Preview() != nil {
		t.Fatalf("expected no preview after stale set")
	}

	if !s.SetPreview(&Preview{Origin: nil, Title: "fresh"}) {
		t.Fatalf("expected matching preview to be accepted")
	}
	if s.Preview() == nil {
		t.Fatalf("expected preview available")
	}
}

func TestPreviewRevalidatesOnRead(t *testing.T) {
	root := newTestLevel("A")
	root.Cursor = 0
	s := NewStack(root)
	s.Push(NewLevel("A", nil))
	s.SetPreview(&Preview{Origin: []string{"A"}, Title: "p"})

	if s.Preview() == nil {
		t.Fatalf("expected preview while path matches")
	}

	// Navigating back invalidates the origin even if the slot were kept.
	s.levels = s.levels[:1]
	if s.Preview() != nil {
		t.Fatalf("expected stale preview discarded on read")
	}
}

func TestPathEqual(t *testing.T) {
	if !PathEqual(nil, nil) {
		t.Fatalf("nil paths should match")
	}
	if PathEqual([]string{"A"}, nil) {
		t.Fatalf("different lengths should not match")
	}
	if PathEqual([]string{"A"}, []string{"B"}) {
		t.Fatalf("different segments should not match")
	}
	if !PathEqual([]string{"A", "b"}, []string{"A", "b"}) {
		t.Fatalf("equal paths should match")
	}
}
