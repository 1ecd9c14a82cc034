package browser

import "testing"

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	level := newTestLevel("one", "two", "three")
	level.Cursor = 2
	level.SetFilter("two", len("two"))

	if level.Filter != "two" {
		t.Fatalf("expected filter persisted, got %q", level.Filter)
	}
	if level.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", level.Cursor)
	}
	if len(level.Items) != 1 || level.Items[0].Name != "two" {
		t.Fatalf("expected filtered items to contain only 'two', got %#v", level.Items)
	}

	level.SetFilter("", 0)
	if level.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", level.Cursor)
	}
	if level.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", level.LastCursor)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	level := newTestLevel("alpha")

	if !level.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if level.Filter != "ab" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}

	if !level.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if level.Filter != "a" || level.FilterCursor != 1 {
		t.Fatalf("unexpected filter state after delete %q/%d", level.Filter, level.FilterCursor)
	}

	level.SetFilter("abc def", len("abc def"))
	if !level.DeleteFilterWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if level.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", level.Filter)
	}

	level.SetFilter("abc", 0)
	if level.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
}

func TestFilterItemsFallsBackToSubstringMatch(t *testing.T) {
	items := []Item{Dir("Abbey Road"), Dir("The Wall"), Dir("Animals")}
	got := FilterItems(items, "wall")
	if len(got) != 1 || got[0].Name != "The Wall" {
		t.Fatalf("expected substring match on The Wall, got %#v", got)
	}
	if n := len(FilterItems(items, "")); n != 3 {
		t.Fatalf("expected empty filter to keep all items, got %d", n)
	}
}

func TestBestMatchIndexPrefersExactThenPrefix(t *testing.T) {
	items := []Item{Dir("abcd"), Dir("abc"), Dir("zabc")}
	if idx := BestMatchIndex(items, "abc"); idx != 1 {
		t.Fatalf("expected exact match at 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "ab"); idx != 0 {
		t.Fatalf("expected prefix match at 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "abc"); idx != -1 {
		t.Fatalf("expected -1 for empty items, got %d", idx)
	}
}
