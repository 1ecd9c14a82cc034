package browser

// Level encapsulates the state of one browse depth: its items, cursor
// position, filter, and viewport. Items holds the filtered view of Full.
type Level struct {
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level with the provided items.
func NewLevel(title string, items []Item) *Level {
	l := &Level{
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// Selected returns the item under the cursor, when one exists.
func (l *Level) Selected() (Item, bool) {
	if len(l.Items) == 0 || l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// IndexOf returns the index of the item with the given entry name.
func (l *Level) IndexOf(name string) int {
	if name == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.EntryName() == name {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the level contents wholesale. The cursor and viewport
// are clamped so no operation leaves the selection out of bounds.
func (l *Level) UpdateItems(items []Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
